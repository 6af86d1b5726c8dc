package scene

import (
	"image"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/light"
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
	"github.com/go-gl/mathgl/mgl32"
)

// ObjectBuilder holds the placement shared by every scene object builder: a parent node
// and a local transform. B is the concrete builder returned by the chained setters.
type ObjectBuilder[B any] struct {
	self   B
	scene  *Scene
	parent space.NodeRef
	local  space.Space
}

func newObjectBuilder[B any](s *Scene, self B) ObjectBuilder[B] {
	return ObjectBuilder[B]{self: self, scene: s, parent: space.Root, local: space.Identity()}
}

// Parent sets the parent node. Defaults to the root.
func (o *ObjectBuilder[B]) Parent(parent space.NodeRef) B {
	o.parent = parent
	return o.self
}

// Position sets the parent-relative position.
func (o *ObjectBuilder[B]) Position(position mgl32.Vec3) B {
	o.local.Position = position
	return o.self
}

// Scale sets the uniform scale.
func (o *ObjectBuilder[B]) Scale(scale float32) B {
	o.local.Scale = scale
	return o.self
}

// Orientation sets the orientation quaternion.
func (o *ObjectBuilder[B]) Orientation(q mgl32.Quat) B {
	o.local.Orientation = q
	return o.self
}

// OrientationAround sets the orientation as a rotation of angleDeg degrees around axis.
func (o *ObjectBuilder[B]) OrientationAround(axis mgl32.Vec3, angleDeg float32) B {
	o.local.Orientation = space.AxisAngle(axis, angleDeg)
	return o.self
}

// LookAt orients the object so its -Z axis points from the current position to target.
// Set the position first.
//
// Parameters:
//   - target: the parent-relative point to look at
//   - up: the up reference direction
//
// Returns:
//   - B: the builder for chaining
func (o *ObjectBuilder[B]) LookAt(target, up mgl32.Vec3) B {
	o.local.Orientation = space.LookAt(o.local.Position, target, up)
	return o.self
}

// node resolves the node for an object. An identity transform reuses the parent instead of
// creating a redundant node.
func (o *ObjectBuilder[B]) node() space.NodeRef {
	if o.local.IsIdentity() {
		return o.parent
	}
	return o.scene.nodes.Add(o.parent, o.local)
}

// NodeBuilder builds a bare transform node.
type NodeBuilder struct {
	ObjectBuilder[*NodeBuilder]
}

// AddNode starts building a transform node.
//
// Returns:
//   - *NodeBuilder: the builder
func (s *Scene) AddNode() *NodeBuilder {
	b := &NodeBuilder{}
	b.ObjectBuilder = newObjectBuilder(s, b)
	return b
}

// Build creates the node. A node is always created, even with an identity transform.
//
// Returns:
//   - space.NodeRef: the new node
func (b *NodeBuilder) Build() space.NodeRef {
	return b.scene.nodes.Add(b.parent, b.local)
}

// EntityBuilder builds an entity from a prototype.
type EntityBuilder struct {
	ObjectBuilder[*EntityBuilder]
	entity Entity
}

// AddEntity starts building an entity that draws the prototype's mesh.
//
// Parameters:
//   - prototype: the baked mesh and its stream markers
//
// Returns:
//   - *EntityBuilder: the builder
func (s *Scene) AddEntity(prototype model.Prototype) *EntityBuilder {
	b := &EntityBuilder{
		entity: Entity{Mesh: prototype.Mesh, Streams: prototype.Streams},
	}
	b.ObjectBuilder = newObjectBuilder(s, b)
	return b
}

// Component attaches a component. See Components.Set for the accepted types.
func (b *EntityBuilder) Component(c any) *EntityBuilder {
	b.entity.Set(c)
	return b
}

// Build creates the entity.
//
// Returns:
//   - EntityRef: the entity handle
func (b *EntityBuilder) Build() EntityRef {
	e := b.entity
	e.Node = b.node()
	return b.scene.entities.Insert(e)
}

// SpriteBuilder builds a sprite from an image.
type SpriteBuilder struct {
	ObjectBuilder[*SpriteBuilder]
	sprite Sprite
}

// AddSprite starts building a sprite showing an image.
//
// Parameters:
//   - img: the image to show
//
// Returns:
//   - *SpriteBuilder: the builder
func (s *Scene) AddSprite(img model.ImageRef) *SpriteBuilder {
	b := &SpriteBuilder{sprite: Sprite{Image: img}}
	b.ObjectBuilder = newObjectBuilder(s, b)
	return b
}

// UV restricts the sprite to a pixel-space sub-rectangle of the image.
func (b *SpriteBuilder) UV(uv image.Rectangle) *SpriteBuilder {
	b.sprite.UV = uv
	return b
}

// Component attaches a component. See Components.Set for the accepted types.
func (b *SpriteBuilder) Component(c any) *SpriteBuilder {
	b.sprite.Set(c)
	return b
}

// Build creates the sprite.
//
// Returns:
//   - SpriteRef: the sprite handle
func (b *SpriteBuilder) Build() SpriteRef {
	sp := b.sprite
	sp.Node = b.node()
	return b.scene.sprites.Insert(sp)
}

// LightBuilder builds a light.
type LightBuilder struct {
	ObjectBuilder[*LightBuilder]
	light light.Light
}

// AddLight starts building a white light of unit intensity.
//
// Parameters:
//   - kind: the light type
//
// Returns:
//   - *LightBuilder: the builder
func (s *Scene) AddLight(kind light.Kind) *LightBuilder {
	b := &LightBuilder{light: light.NewLight(kind)}
	b.ObjectBuilder = newObjectBuilder(s, b)
	return b
}

// AddDirectionalLight starts building a directional light.
func (s *Scene) AddDirectionalLight() *LightBuilder {
	return s.AddLight(light.KindDirectional)
}

// AddPointLight starts building a point light.
func (s *Scene) AddPointLight() *LightBuilder {
	return s.AddLight(light.KindPoint)
}

// Color sets the light color.
func (b *LightBuilder) Color(color common.Color) *LightBuilder {
	light.WithColor(color)(&b.light)
	return b
}

// Intensity sets the light intensity.
func (b *LightBuilder) Intensity(intensity float32) *LightBuilder {
	light.WithIntensity(intensity)(&b.light)
	return b
}

// Build creates the light.
//
// Returns:
//   - LightRef: the light handle
func (b *LightBuilder) Build() LightRef {
	light.WithNode(b.node())(&b.light)
	return b.scene.lights.Insert(b.light)
}
