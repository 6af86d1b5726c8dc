package scene

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/light"
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/material"
	"github.com/Carmen-Shannon/baryon-go/engine/resource"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrototype(streams model.StreamSet) model.Prototype {
	meshes := resource.NewTable[model.Mesh]()
	return model.Prototype{Mesh: meshes.Insert(model.Mesh{}), Streams: streams, Radius: 1}
}

func TestAddNodeAlwaysCreates(t *testing.T) {
	s := NewScene()
	a := s.AddNode().Build()
	b := s.AddNode().Parent(a).Build()
	assert.Equal(t, space.NodeRef(1), a)
	assert.Equal(t, space.NodeRef(2), b)
	assert.Equal(t, 3, s.NodeCount())
	assert.Equal(t, a, s.Node(b).Parent())
	assert.Panics(t, func() { s.Node(space.Root) })
}

func TestIdentityElision(t *testing.T) {
	s := NewScene()
	parent := s.AddNode().Position(mgl32.Vec3{1, 0, 0}).Build()
	proto := testPrototype(model.Streams(model.StreamPosition))

	ref := s.AddEntity(proto).Parent(parent).Build()
	e, ok := s.Entity(ref)
	require.True(t, ok)
	assert.Equal(t, parent, e.Node, "identity entity reuses the parent node")
	assert.Equal(t, 2, s.NodeCount())

	ref = s.AddEntity(proto).Parent(parent).Scale(2).Build()
	e, _ = s.Entity(ref)
	assert.NotEqual(t, parent, e.Node)
	assert.Equal(t, parent, s.Node(e.Node).Parent())
	assert.Equal(t, 3, s.NodeCount())

	lref := s.AddPointLight().Build()
	l, ok := s.Light(lref)
	require.True(t, ok)
	assert.Equal(t, space.Root, l.Node)

	sref := s.AddSprite(model.ImageRef{}).Parent(parent).Build()
	sp, ok := s.Sprite(sref)
	require.True(t, ok)
	assert.Equal(t, parent, sp.Node)
}

func TestThreeLevelHierarchyBake(t *testing.T) {
	s := NewScene()
	a := s.AddNode().Position(mgl32.Vec3{1, 0, 0}).Build()
	b := s.AddNode().Parent(a).Scale(2).Build()
	c := s.AddNode().Parent(b).Position(mgl32.Vec3{0, 1, 0}).Build()

	baked := s.Bake()
	got := baked.Space(c)
	assert.InDelta(t, 1, got.Position[0], 1e-6)
	assert.InDelta(t, 2, got.Position[1], 1e-6)
	assert.InDelta(t, 0, got.Position[2], 1e-6)
	assert.Equal(t, float32(2), got.Scale)
}

func TestComponents(t *testing.T) {
	s := NewScene()
	proto := testPrototype(model.Streams(model.StreamPosition, model.StreamNormal))
	ref := s.AddEntity(proto).
		Component(common.ColorRed).
		Component(material.Phong(8)).
		Build()

	e, _ := s.Entity(ref)
	color, ok := e.Color()
	assert.True(t, ok)
	assert.Equal(t, common.ColorRed, color)
	shader, ok := e.Shader()
	assert.True(t, ok)
	assert.Equal(t, material.Phong(8), shader)
	_, ok = e.Material()
	assert.False(t, ok)

	assert.PanicsWithValue(t, "scene: unsupported component type string", func() {
		s.AddEntity(proto).Component("nope")
	})
}

func TestEntitiesFilterByStreams(t *testing.T) {
	s := NewScene()
	posOnly := testPrototype(model.Streams(model.StreamPosition))
	lit := testPrototype(model.Streams(model.StreamPosition, model.StreamNormal))
	s.AddEntity(posOnly).Build()
	litRef := s.AddEntity(lit).Build()
	s.AddEntity(posOnly).Build()

	count := 0
	for range s.Entities(model.Streams(model.StreamPosition)) {
		count++
	}
	assert.Equal(t, 3, count)

	var refs []EntityRef
	for ref := range s.Entities(model.Streams(model.StreamPosition, model.StreamNormal)) {
		refs = append(refs, ref)
	}
	assert.Equal(t, []EntityRef{litRef}, refs)
}

func TestRemoveEntityInvalidatesHandle(t *testing.T) {
	s := NewScene()
	proto := testPrototype(model.Streams(model.StreamPosition))
	ref := s.AddEntity(proto).Build()
	assert.True(t, s.RemoveEntity(ref))
	assert.False(t, s.RemoveEntity(ref))
	_, ok := s.Entity(ref)
	assert.False(t, ok)

	next := s.AddEntity(proto).Build()
	assert.Equal(t, ref.Index(), next.Index())
	_, ok = s.Entity(ref)
	assert.False(t, ok, "a reused slot does not revive the old handle")
	assert.Equal(t, 1, s.EntityCount())
}

func TestLightsInInsertionOrder(t *testing.T) {
	s := NewScene()
	s.AddDirectionalLight().Intensity(2).Build()
	s.AddPointLight().Color(common.ColorBlue).Position(mgl32.Vec3{0, 3, 0}).Build()

	var lights []light.Light
	for _, l := range s.Lights() {
		lights = append(lights, l)
	}
	require.Len(t, lights, 2)
	assert.Equal(t, light.KindDirectional, lights[0].Kind)
	assert.Equal(t, float32(2), lights[0].Intensity)
	assert.Equal(t, common.ColorWhite, lights[0].Color)
	assert.Equal(t, light.KindPoint, lights[1].Kind)
	assert.Equal(t, common.ColorBlue, lights[1].Color)
	assert.NotEqual(t, space.Root, lights[1].Node)
	assert.Equal(t, 2, s.LightCount())
}

func TestSpriteUVAndLookAt(t *testing.T) {
	s := NewScene()
	ref := s.AddSprite(model.ImageRef{}).
		UV(image.Rect(0, 0, 16, 32)).
		Position(mgl32.Vec3{0, 0, 5}).
		LookAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}).
		Build()
	sp, _ := s.Sprite(ref)
	assert.Equal(t, image.Rect(0, 0, 16, 32), sp.UV)

	world := s.Bake().Space(sp.Node)
	forward := world.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, -1, forward[2], 1e-5)
	assert.Equal(t, 1, s.SpriteCount())
}
