package model

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Geometry is CPU-side mesh data produced by the shape generators.
// Normals, TexCoords and Indices are nil when the shape does not carry them.
type Geometry struct {
	Positions [][3]float32
	Normals   [][3]float32
	TexCoords [][2]float32
	Indices   []uint16
	Radius    float32
}

// Streams returns the stream markers the geometry will produce once baked.
func (g *Geometry) Streams() StreamSet {
	set := Streams(StreamPosition)
	if g.Normals != nil {
		set = set.With(StreamNormal)
	}
	if g.TexCoords != nil {
		set = set.With(StreamTexCoord)
	}
	return set
}

// cuboid corners per face: top, bottom, right, left, front, back.
var cuboidFaces = [6]struct {
	normal  [3]float32
	corners [4][3]float32
}{
	{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{[3]float32{0, 0, -1}, [4][3]float32{{-1, 1, -1}, {1, 1, -1}, {1, -1, -1}, {-1, -1, -1}}},
	{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}, {-1, -1, -1}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{1, 1, -1}, {-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{1, -1, 1}, {-1, -1, 1}, {-1, -1, -1}, {1, -1, -1}}},
}

// indices over the first eight corners (top and bottom faces) of cuboidFaces.
var cuboidCornerIndices = []uint16{
	0, 1, 2, 2, 3, 0,
	4, 5, 6, 6, 7, 4,
	6, 5, 2, 2, 1, 6,
	0, 3, 4, 4, 7, 0,
	5, 4, 3, 3, 2, 5,
	1, 0, 7, 7, 6, 1,
}

// Cuboid generates an axis-aligned box centered at the origin.
// With a normal stream requested every face gets its own four vertices; otherwise the eight corners are shared.
//
// Parameters:
//   - streams: the optional streams to generate (StreamNormal)
//   - halfExtent: half the box size along each axis
//
// Returns:
//   - *Geometry: the generated box
func Cuboid(streams StreamSet, halfExtent [3]float32) *Geometry {
	g := &Geometry{Radius: length(halfExtent)}
	scaled := func(c [3]float32) [3]float32 {
		return [3]float32{c[0] * halfExtent[0], c[1] * halfExtent[1], c[2] * halfExtent[2]}
	}

	if !streams.Has(StreamNormal) {
		for _, face := range cuboidFaces[:2] {
			for _, c := range face.corners {
				g.Positions = append(g.Positions, scaled(c))
			}
		}
		g.Indices = append([]uint16(nil), cuboidCornerIndices...)
		return g
	}

	g.Positions = make([][3]float32, 0, 24)
	g.Normals = make([][3]float32, 0, 24)
	g.Indices = make([]uint16, 0, 36)
	for i, face := range cuboidFaces {
		base := uint16(i * 4)
		for _, c := range face.corners {
			g.Positions = append(g.Positions, scaled(c))
			g.Normals = append(g.Normals, face.normal)
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return g
}

// golden ratio used for the icosahedron vertices.
const phi = 1.618034

var icosahedronPositions = [12][3]float32{
	{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
	{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
	{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
}

var icosahedronFaces = [20][3]uint16{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{11, 10, 2}, {5, 11, 4}, {1, 5, 9}, {7, 1, 8}, {10, 7, 6},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{9, 8, 1}, {4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7},
}

// MaxSphereDetail is the highest detail level whose vertex count fits 16-bit indices.
const MaxSphereDetail = 7

// Sphere generates an icosphere. Detail 1 is the plain icosahedron and every further level
// splits each triangle into four, sharing edge midpoints between neighbours.
//
// Parameters:
//   - streams: the optional streams to generate (StreamNormal)
//   - radius: the sphere radius
//   - detail: the refinement level, 1 through MaxSphereDetail
//
// Returns:
//   - *Geometry: the generated sphere
func Sphere(streams StreamSet, radius float32, detail int) *Geometry {
	if detail > MaxSphereDetail {
		panic(fmt.Sprintf("model: sphere detail %d exceeds %d", detail, MaxSphereDetail))
	}
	vertices := append([][3]float32(nil), icosahedronPositions[:]...)
	faces := append([][3]uint16(nil), icosahedronFaces[:]...)

	type edge struct{ a, b uint16 }
	midpoints := make(map[edge]uint16)
	for level := 1; level < detail; level++ {
		clear(midpoints)
		prev := faces
		faces = make([][3]uint16, 0, len(prev)*4)
		for _, f := range prev {
			var mid [3]uint16
			for i := range 3 {
				e := edge{f[i], f[(i+1)%3]}
				ix, ok := midpoints[e]
				if !ok {
					ix = uint16(len(vertices))
					midpoints[e] = ix
					midpoints[edge{e.b, e.a}] = ix
					va, vb := vertices[e.a], vertices[e.b]
					vertices = append(vertices, [3]float32{
						0.5 * (va[0] + vb[0]),
						0.5 * (va[1] + vb[1]),
						0.5 * (va[2] + vb[2]),
					})
				}
				mid[i] = ix
			}
			faces = append(faces,
				[3]uint16{f[0], mid[0], mid[2]},
				[3]uint16{f[1], mid[1], mid[0]},
				[3]uint16{f[2], mid[2], mid[1]},
				mid,
			)
		}
	}

	g := &Geometry{
		Positions: make([][3]float32, len(vertices)),
		Indices:   make([]uint16, 0, len(faces)*3),
		Radius:    radius,
	}
	if streams.Has(StreamNormal) {
		g.Normals = make([][3]float32, len(vertices))
	}
	for i, v := range vertices {
		l := length(v)
		n := [3]float32{v[0] / l, v[1] / l, v[2] / l}
		g.Positions[i] = [3]float32{n[0] * radius, n[1] * radius, n[2] * radius}
		if g.Normals != nil {
			g.Normals[i] = n
		}
	}
	for _, f := range faces {
		g.Indices = append(g.Indices, f[:]...)
	}
	return g
}

// Plane generates a square in the XZ plane facing +Y, with normals and texture coordinates.
//
// Parameters:
//   - size: the edge length
//
// Returns:
//   - *Geometry: the generated plane
func Plane(size float32) *Geometry {
	e := size / 2
	up := [3]float32{0, 1, 0}
	return &Geometry{
		Positions: [][3]float32{{e, 0, -e}, {e, 0, e}, {-e, 0, e}, {-e, 0, -e}},
		Normals:   [][3]float32{up, up, up, up},
		TexCoords: [][2]float32{{1, 1}, {1, 0}, {0, 0}, {0, 1}},
		Indices:   []uint16{0, 2, 1, 0, 3, 2},
		Radius:    math32.Sqrt(2 * e * e),
	}
}

func length(v [3]float32) float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
