package renderer

import (
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// MeshBuilder collects vertex streams and indices and uploads them as a single buffer.
type MeshBuilder struct {
	ctx    *gpuContext
	layout *model.MeshLayout
	label  string
}

func newMeshBuilder(c *gpuContext) *MeshBuilder {
	return &MeshBuilder{ctx: c, layout: model.NewMeshLayout(), label: "mesh"}
}

// Label sets the debug label of the mesh buffer.
func (b *MeshBuilder) Label(label string) *MeshBuilder {
	b.label = label
	return b
}

// Positions adds the position stream.
func (b *MeshBuilder) Positions(positions [][3]float32) *MeshBuilder {
	b.layout.Positions(positions)
	return b
}

// Normals adds the normal stream.
func (b *MeshBuilder) Normals(normals [][3]float32) *MeshBuilder {
	b.layout.Normals(normals)
	return b
}

// TexCoords adds the texture coordinate stream.
func (b *MeshBuilder) TexCoords(uvs [][2]float32) *MeshBuilder {
	b.layout.TexCoords(uvs)
	return b
}

// Indices adds 16-bit triangle list indices.
func (b *MeshBuilder) Indices(indices []uint16) *MeshBuilder {
	b.layout.Indices(indices)
	return b
}

// Radius sets the bounding radius used for light selection.
func (b *MeshBuilder) Radius(radius float32) *MeshBuilder {
	b.layout.Radius(radius)
	return b
}

// Geometry adds every stream of a generated shape along with its radius.
func (b *MeshBuilder) Geometry(g *model.Geometry) *MeshBuilder {
	b.layout.Geometry(g)
	return b
}

// Build uploads the mesh and registers it with the context.
//
// Returns:
//   - model.Prototype: the mesh reference and stream markers to create entities from
//   - error: error if the buffer cannot be created
func (b *MeshBuilder) Build() (model.Prototype, error) {
	data := b.layout.Bytes()
	if len(data) == 0 {
		return model.Prototype{}, errors.Errorf("mesh %q has no data", b.label)
	}
	buf, err := b.ctx.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    b.label,
		Contents: data,
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return model.Prototype{}, errors.Wrapf(err, "failed to upload mesh %q", b.label)
	}
	mesh := b.layout.Mesh(buf)
	ref := b.ctx.addMesh(mesh)
	return model.Prototype{
		Mesh:    ref,
		Streams: mesh.StreamSet(),
		Radius:  mesh.Radius,
	}, nil
}
