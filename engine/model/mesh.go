package model

import (
	"fmt"

	"github.com/Carmen-Shannon/baryon-go/engine/resource"
	"github.com/cogentcore/webgpu/wgpu"
)

// VertexStream locates one attribute stream inside a mesh buffer.
type VertexStream struct {
	Kind   StreamKind
	Offset uint64
	Stride uint64
}

// IndexStream locates the index data inside a mesh buffer.
type IndexStream struct {
	Offset uint64
	Format wgpu.IndexFormat
	Count  uint32
}

// Mesh is GPU-resident geometry: one buffer holding every vertex stream followed by the optional index data.
type Mesh struct {
	Buffer      *wgpu.Buffer
	VertexCount uint32
	Streams     []VertexStream
	Index       *IndexStream
	Radius      float32
}

// MeshRef addresses a Mesh owned by the renderer context.
type MeshRef = resource.Handle[Mesh]

// VertexStream returns the stream of the given kind.
//
// Parameters:
//   - kind: the stream kind to find
//
// Returns:
//   - VertexStream: the stream descriptor
//   - bool: false if the mesh has no such stream
func (m *Mesh) VertexStream(kind StreamKind) (VertexStream, bool) {
	for _, s := range m.Streams {
		if s.Kind == kind {
			return s, true
		}
	}
	return VertexStream{}, false
}

// StreamSet returns the markers for every stream the mesh carries.
func (m *Mesh) StreamSet() StreamSet {
	var set StreamSet
	for _, s := range m.Streams {
		set = set.With(s.Kind)
	}
	return set
}

// Release frees the mesh buffer.
func (m *Mesh) Release() {
	if m.Buffer != nil {
		m.Buffer.Release()
		m.Buffer = nil
	}
}

// Prototype is a baked mesh plus the stream markers attached to every entity created from it.
type Prototype struct {
	Mesh    MeshRef
	Streams StreamSet
	Radius  float32
}

// MeshLayout accumulates vertex and index data into a single blob before upload.
// Streams are appended in call order, each aligned to 4 bytes.
type MeshLayout struct {
	data        []byte
	streams     []VertexStream
	index       *IndexStream
	vertexCount uint32
	radius      float32
}

// NewMeshLayout creates an empty MeshLayout.
func NewMeshLayout() *MeshLayout {
	return &MeshLayout{}
}

func (l *MeshLayout) appendBlob(blob []byte) uint64 {
	for len(l.data)%4 != 0 {
		l.data = append(l.data, 0)
	}
	offset := uint64(len(l.data))
	l.data = append(l.data, blob...)
	return offset
}

func (l *MeshLayout) addStream(kind StreamKind, blob []byte, count int) {
	for _, s := range l.streams {
		if s.Kind == kind {
			panic(fmt.Sprintf("model: duplicate %s stream", kind))
		}
	}
	if len(l.streams) > 0 && uint32(count) != l.vertexCount {
		panic(fmt.Sprintf("model: %s stream has %d vertices, expected %d", kind, count, l.vertexCount))
	}
	l.vertexCount = uint32(count)
	l.streams = append(l.streams, VertexStream{
		Kind:   kind,
		Offset: l.appendBlob(blob),
		Stride: kind.Stride(),
	})
}

// Positions appends the position stream.
//
// Parameters:
//   - positions: one position per vertex
//
// Returns:
//   - *MeshLayout: the layout for chaining
func (l *MeshLayout) Positions(positions [][3]float32) *MeshLayout {
	l.addStream(StreamPosition, MarshalVec3s(positions), len(positions))
	return l
}

// Normals appends the normal stream.
//
// Parameters:
//   - normals: one normal per vertex
//
// Returns:
//   - *MeshLayout: the layout for chaining
func (l *MeshLayout) Normals(normals [][3]float32) *MeshLayout {
	l.addStream(StreamNormal, MarshalVec3s(normals), len(normals))
	return l
}

// TexCoords appends the texture coordinate stream.
//
// Parameters:
//   - uvs: one texture coordinate per vertex
//
// Returns:
//   - *MeshLayout: the layout for chaining
func (l *MeshLayout) TexCoords(uvs [][2]float32) *MeshLayout {
	l.addStream(StreamTexCoord, MarshalVec2s(uvs), len(uvs))
	return l
}

// Indices appends 16-bit triangle list indices. Only one index stream is allowed.
//
// Parameters:
//   - indices: the triangle indices
//
// Returns:
//   - *MeshLayout: the layout for chaining
func (l *MeshLayout) Indices(indices []uint16) *MeshLayout {
	if l.index != nil {
		panic("model: index stream already set")
	}
	l.index = &IndexStream{
		Offset: l.appendBlob(MarshalIndices(indices)),
		Format: wgpu.IndexFormatUint16,
		Count:  uint32(len(indices)),
	}
	return l
}

// Radius sets the bounding sphere radius used for light selection.
//
// Parameters:
//   - radius: the bounding radius in model space
//
// Returns:
//   - *MeshLayout: the layout for chaining
func (l *MeshLayout) Radius(radius float32) *MeshLayout {
	l.radius = radius
	return l
}

// Geometry appends every stream the geometry carries and takes its radius.
//
// Parameters:
//   - g: the generated geometry
//
// Returns:
//   - *MeshLayout: the layout for chaining
func (l *MeshLayout) Geometry(g *Geometry) *MeshLayout {
	l.Positions(g.Positions)
	if g.Normals != nil {
		l.Normals(g.Normals)
	}
	if g.TexCoords != nil {
		l.TexCoords(g.TexCoords)
	}
	if g.Indices != nil {
		l.Indices(g.Indices)
	}
	return l.Radius(g.Radius)
}

// Bytes returns the accumulated blob, padded to a multiple of 4 bytes for upload.
func (l *MeshLayout) Bytes() []byte {
	l.appendBlob(nil)
	return l.data
}

// Mesh returns the mesh description for the blob once it lives in buffer.
//
// Parameters:
//   - buffer: the GPU buffer holding Bytes()
//
// Returns:
//   - Mesh: the mesh referencing buffer
func (l *MeshLayout) Mesh(buffer *wgpu.Buffer) Mesh {
	var index *IndexStream
	if l.index != nil {
		ix := *l.index
		index = &ix
	}
	return Mesh{
		Buffer:      buffer,
		VertexCount: l.vertexCount,
		Streams:     append([]VertexStream(nil), l.streams...),
		Index:       index,
		Radius:      l.radius,
	}
}
