package shader

import (
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// shader is the implementation of the Shader interface.
// It holds the reflected module data required for pipeline creation and bind group wiring.
type shader struct {
	key                        string
	source                     string
	vertexEntryPoints          []string
	fragmentEntryPoints        []string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              map[string][]wgpu.VertexBufferLayout
	vertexLocations            map[string][]uint32
	annotations                []Annotation
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is a WGSL render module holding at least one vertex and one fragment entry point, together with
// the layouts reflected from its source. Every binding is visible to both stages.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for labels and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// Module returns the descriptor used to create the GPU shader module.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// VertexEntryPoint returns the name of the first @vertex function.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the first @fragment function.
	FragmentEntryPoint() string

	// HasEntryPoint reports whether a @vertex or @fragment function with the given name exists.
	//
	// Parameters:
	//   - name: the function name
	//
	// Returns:
	//   - bool: true if the module declares the entry point
	HasEntryPoint(name string) bool

	// BindGroupCount returns one more than the highest group index declared, which is the
	// number of layouts a pipeline layout for this shader needs.
	BindGroupCount() int

	// BindGroupLayoutDescriptor retrieves the layout descriptor of a group.
	//
	// Parameters:
	//   - group: the group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if the group is not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves every reflected descriptor keyed by group index.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name bound at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if not found
	BindGroupVarName(group, binding int) string

	// BindingFromVarName retrieves the binding index of a variable within a group.
	//
	// Parameters:
	//   - group: the bind group index
	//   - varName: the variable name within the group
	//
	// Returns:
	//   - int: the binding index, or -1 if not found
	//   - bool: true if the variable name was found
	BindingFromVarName(group int, varName string) (int, bool)

	// VertexLayouts returns one buffer layout per input of a vertex entry point, in ascending location order.
	//
	// Parameters:
	//   - entry: the vertex entry point name
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts, or nil if entry is not a vertex entry point
	VertexLayouts(entry string) []wgpu.VertexBufferLayout

	// VertexLocations returns the shader location fed by each vertex buffer slot of a vertex entry point.
	VertexLocations(entry string) []uint32

	// Annotations returns the //@baryon: annotations found in the source.
	Annotations() []Annotation
}

var _ Shader = &shader{}

// NewShader reflects a WGSL module containing vertex and fragment entry points.
// Panics if either stage has no entry point or an annotation is malformed.
//
// Parameters:
//   - key: a unique identifier used for labels
//   - source: the WGSL source code
//
// Returns:
//   - Shader: the reflected shader
func NewShader(key, source string) Shader {
	if source == "" {
		panic(fmt.Sprintf("shader: %s has no source", key))
	}
	s := &shader{
		key:    key,
		source: source,
	}
	s.parse()
	return s
}

func (s *shader) parse() {
	annotations, err := parseAnnotations(s.source)
	if err != nil {
		panic(fmt.Sprintf("shader: %s: %v", s.key, err))
	}
	s.annotations = annotations

	cleaned := stripComments(s.source)
	structs := parseStructBlocks(cleaned)

	vertexEntries := parseEntryPoints(cleaned, stageVertex)
	if len(vertexEntries) == 0 {
		panic(fmt.Sprintf("shader: %s has no @vertex entry point", s.key))
	}
	fragmentEntries := parseEntryPoints(cleaned, stageFragment)
	if len(fragmentEntries) == 0 {
		panic(fmt.Sprintf("shader: %s has no @fragment entry point", s.key))
	}

	s.vertexLayouts = make(map[string][]wgpu.VertexBufferLayout, len(vertexEntries))
	s.vertexLocations = make(map[string][]uint32, len(vertexEntries))
	for _, ep := range vertexEntries {
		s.vertexEntryPoints = append(s.vertexEntryPoints, ep.name)
		s.vertexLayouts[ep.name], s.vertexLocations[ep.name] = parseVertexLayouts(ep.params, structs)
	}
	for _, ep := range fragmentEntries {
		s.fragmentEntryPoints = append(s.fragmentEntryPoints, ep.name)
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(
		cleaned, structs, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, annotations)

	for _, a := range annotations {
		if s.BindGroupVarName(a.Group, a.Binding) == "" {
			panic(fmt.Sprintf("shader: %s: annotation %v names an undeclared binding", s.key, a))
		}
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoints[0]
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoints[0]
}

func (s *shader) HasEntryPoint(name string) bool {
	return slices.Contains(s.vertexEntryPoints, name) || slices.Contains(s.fragmentEntryPoints, name)
}

func (s *shader) BindGroupCount() int {
	n := 0
	for g := range s.bindGroupLayoutDescriptors {
		n = max(n, g+1)
	}
	return n
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindingFromVarName(group int, varName string) (int, bool) {
	for binding, name := range s.bindingVarNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) VertexLayouts(entry string) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[entry]
}

func (s *shader) VertexLocations(entry string) []uint32 {
	return slices.Clone(s.vertexLocations[entry])
}

func (s *shader) Annotations() []Annotation {
	return s.annotations
}
