package scene

import (
	"fmt"
	"image"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/Carmen-Shannon/baryon-go/engine/model"
	"github.com/Carmen-Shannon/baryon-go/engine/renderer/material"
	"github.com/Carmen-Shannon/baryon-go/engine/resource"
	"github.com/Carmen-Shannon/baryon-go/engine/space"
)

// Components is the closed set of optional data attached to entities and sprites.
// Each component is queried by type and reports whether it is present.
type Components struct {
	color       common.Color
	shader      material.Shader
	material    material.Material
	hasColor    bool
	hasShader   bool
	hasMaterial bool
}

// Set attaches a component, replacing any previous one of the same type.
// Accepted types are common.Color, material.Shader and material.Material; anything else panics.
//
// Parameters:
//   - c: the component value
func (cs *Components) Set(c any) {
	switch v := c.(type) {
	case common.Color:
		cs.color, cs.hasColor = v, true
	case material.Shader:
		cs.shader, cs.hasShader = v, true
	case material.Material:
		cs.material, cs.hasMaterial = v, true
	default:
		panic(fmt.Sprintf("scene: unsupported component type %T", c))
	}
}

// Color returns the color component.
func (cs *Components) Color() (common.Color, bool) {
	return cs.color, cs.hasColor
}

// Shader returns the shading model component.
func (cs *Components) Shader() (material.Shader, bool) {
	return cs.shader, cs.hasShader
}

// Material returns the PBR material component.
func (cs *Components) Material() (material.Material, bool) {
	return cs.material, cs.hasMaterial
}

// Entity is a renderable mesh placed by a node.
type Entity struct {
	Components
	Node space.NodeRef
	Mesh model.MeshRef
	// Streams are the vertex streams of the mesh, copied from the prototype.
	Streams model.StreamSet
}

// EntityRef is a generation-checked entity handle.
type EntityRef = resource.Handle[Entity]

// Sprite is a textured quad placed by a node.
type Sprite struct {
	Components
	Node  space.NodeRef
	Image model.ImageRef
	// UV is the pixel-space sub-rectangle of the image to show. An empty rectangle shows the whole image.
	UV image.Rectangle
}

// SpriteRef is a generation-checked sprite handle.
type SpriteRef = resource.Handle[Sprite]
