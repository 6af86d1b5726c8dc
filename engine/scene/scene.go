package scene

import (
	"iter"

	"github.com/Carmen-Shannon/baryon-go/engine/light"
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/Carmen-Shannon/baryon-go/engine/resource"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
)

// LightRef is a generation-checked light handle.
type LightRef = resource.Handle[light.Light]

// Scene owns the transform hierarchy and everything placed in it: entities, sprites and lights.
// A Scene is not safe for concurrent mutation; render passes only read it.
type Scene struct {
	nodes    *space.Nodes
	entities *resource.Table[Entity]
	sprites  *resource.Table[Sprite]
	lights   *resource.Table[light.Light]
}

// NewScene creates an empty scene containing only the root node.
//
// Returns:
//   - *Scene: the new scene
func NewScene() *Scene {
	return &Scene{
		nodes:    space.NewNodes(),
		entities: resource.NewTable[Entity](),
		sprites:  resource.NewTable[Sprite](),
		lights:   resource.NewTable[light.Light](),
	}
}

// Node returns a node for mutation, typically to animate it between frames.
// Panics for the root node, which always stays the identity, and for unknown nodes.
//
// Parameters:
//   - ref: the node reference
//
// Returns:
//   - *space.Node: the node; the pointer is invalidated by the next node creation
func (s *Scene) Node(ref space.NodeRef) *space.Node {
	if ref == space.Root {
		panic("scene: the root node cannot be modified")
	}
	return s.nodes.Get(ref)
}

// NodeCount returns the number of nodes, including the root.
func (s *Scene) NodeCount() int {
	return s.nodes.Len()
}

// Bake resolves every node into world space.
//
// Returns:
//   - *space.BakedScene: the world transform of every node
func (s *Scene) Bake() *space.BakedScene {
	return s.nodes.Bake()
}

// Entity looks up an entity.
//
// Parameters:
//   - ref: the entity handle
//
// Returns:
//   - *Entity: the entity, or nil
//   - bool: false if the handle is stale or unknown
func (s *Scene) Entity(ref EntityRef) (*Entity, bool) {
	return s.entities.Lookup(ref)
}

// RemoveEntity removes an entity. Its node stays in the hierarchy.
//
// Parameters:
//   - ref: the entity handle
//
// Returns:
//   - bool: false if the handle was already stale
func (s *Scene) RemoveEntity(ref EntityRef) bool {
	_, ok := s.entities.Remove(ref)
	return ok
}

// Entities enumerates the entities whose mesh carries every stream in required.
//
// Parameters:
//   - required: the vertex streams the caller needs
//
// Returns:
//   - iter.Seq2[EntityRef, *Entity]: the matching entities in slot order
func (s *Scene) Entities(required model.StreamSet) iter.Seq2[EntityRef, *Entity] {
	return func(yield func(EntityRef, *Entity) bool) {
		for ref, e := range s.entities.All() {
			if !e.Streams.Contains(required) {
				continue
			}
			if !yield(ref, e) {
				return
			}
		}
	}
}

// EntityCount returns the number of live entities.
func (s *Scene) EntityCount() int {
	return s.entities.Len()
}

// Sprite looks up a sprite.
//
// Parameters:
//   - ref: the sprite handle
//
// Returns:
//   - *Sprite: the sprite, or nil
//   - bool: false if the handle is stale or unknown
func (s *Scene) Sprite(ref SpriteRef) (*Sprite, bool) {
	return s.sprites.Lookup(ref)
}

// RemoveSprite removes a sprite. Its node stays in the hierarchy.
func (s *Scene) RemoveSprite(ref SpriteRef) bool {
	_, ok := s.sprites.Remove(ref)
	return ok
}

// Sprites enumerates every sprite.
func (s *Scene) Sprites() iter.Seq2[SpriteRef, *Sprite] {
	return s.sprites.All()
}

// SpriteCount returns the number of live sprites.
func (s *Scene) SpriteCount() int {
	return s.sprites.Len()
}

// Light looks up a light for modification.
//
// Parameters:
//   - ref: the light handle
//
// Returns:
//   - *light.Light: the light, or nil
//   - bool: false if the handle is unknown
func (s *Scene) Light(ref LightRef) (*light.Light, bool) {
	return s.lights.Lookup(ref)
}

// Lights enumerates the lights in insertion order.
// Render passes index their light buffers in this order.
func (s *Scene) Lights() iter.Seq2[LightRef, light.Light] {
	return func(yield func(LightRef, light.Light) bool) {
		for ref, l := range s.lights.All() {
			if !yield(ref, *l) {
				return
			}
		}
	}
}

// LightCount returns the number of lights.
func (s *Scene) LightCount() int {
	return s.lights.Len()
}
