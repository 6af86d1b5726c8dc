package shader

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// structBlockRegex captures a struct name and its body.
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex  = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches "name: type" after any leading attributes.
	fieldRegex = regexp.MustCompile(`^(?:@\w+(?:\([^)]*\))?\s*)*(\w+)\s*:\s*(.+)$`)

	// bindGroupDeclRegex matches declarations such as
	// @group(0) @binding(0) var<uniform> globals: Globals;
	// and handle types such as @group(2) @binding(1) var image: texture_2d<f32>;
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// stage is the entry point attribute searched for by parseEntryPoints.
type stage string

const (
	stageVertex   stage = "vertex"
	stageFragment stage = "fragment"
)

type entryPoint struct {
	name   string
	params string
}

// parseEntryPoints returns every function tagged with the stage attribute in source order,
// together with the raw text of its parameter list.
func parseEntryPoints(source string, st stage) []entryPoint {
	re := regexp.MustCompile(`@` + string(st) + `\b[^{]*?\bfn\s+(\w+)\s*\(`)
	var result []entryPoint
	for _, loc := range re.FindAllStringSubmatchIndex(source, -1) {
		ep := entryPoint{name: source[loc[2]:loc[3]]}
		depth := 1
		start := loc[1]
		ep.params = source[start:]
		for i := start; i < len(source); i++ {
			if source[i] == '(' {
				depth++
			} else if source[i] == ')' {
				depth--
				if depth == 0 {
					ep.params = source[start:i]
					break
				}
			}
		}
		result = append(result, ep)
	}
	return result
}

func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))
	for _, m := range matches {
		structs = append(structs, parsedStruct{name: m[1], fields: parseFields(m[2])})
	}
	return structs
}

// parseFields splits a comma separated field or parameter list.
func parseFields(body string) []parsedField {
	var fields []parsedField
	for _, part := range splitAtTopLevelCommas(body) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := fieldRegex.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		f := parsedField{
			name:      m[1],
			typeName:  strings.TrimSpace(m[2]),
			location:  -1,
			isBuiltin: builtinRegex.MatchString(part),
		}
		if lm := locationRegex.FindStringSubmatch(part); lm != nil {
			f.location, _ = strconv.Atoi(lm[1])
		}
		fields = append(fields, f)
	}
	return fields
}

// parseVertexLayouts collects every @location input of the vertex entry point, either declared
// directly as a parameter or as a field of a struct parameter, and returns one single-attribute
// buffer layout per location, ordered by location. Vertex streams live at separate offsets of
// the mesh buffer, so each location is bound to its own vertex buffer slot.
//
// Parameters:
//   - params: the parameter list of the vertex entry point
//   - structs: every struct in the module
//
// Returns:
//   - []wgpu.VertexBufferLayout: the layouts; slot i feeds the i-th lowest location
//   - []uint32: the shader location of each slot
func parseVertexLayouts(params string, structs []parsedStruct) ([]wgpu.VertexBufferLayout, []uint32) {
	byName := make(map[string]parsedStruct, len(structs))
	for _, ps := range structs {
		byName[ps.name] = ps
	}

	var inputs []parsedField
	for _, p := range parseFields(params) {
		if p.location >= 0 {
			inputs = append(inputs, p)
			continue
		}
		if ps, ok := byName[p.typeName]; ok {
			for _, f := range ps.fields {
				if f.location >= 0 {
					inputs = append(inputs, f)
				}
			}
		}
	}
	slices.SortFunc(inputs, func(a, b parsedField) int {
		return a.location - b.location
	})

	layouts := make([]wgpu.VertexBufferLayout, 0, len(inputs))
	locations := make([]uint32, 0, len(inputs))
	for _, in := range inputs {
		info, ok := wgslVertexFormats[in.typeName]
		if !ok {
			continue
		}
		layouts = append(layouts, wgpu.VertexBufferLayout{
			ArrayStride: info.size,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{{
				Format:         info.format,
				Offset:         0,
				ShaderLocation: uint32(in.location),
			}},
		})
		locations = append(locations, uint32(in.location))
	}
	return layouts, locations
}

// parseBindGroupLayouts extracts every @group/@binding declaration into layout descriptors keyed by group.
// Entries are sorted by binding and share the given visibility. Buffer entries get a MinBindingSize
// resolved from the bound type, and entries named by a dynamic annotation get HasDynamicOffset.
//
// Parameters:
//   - source: WGSL source with comments stripped
//   - structs: every struct in the module
//   - visibility: the stages that can see each binding
//   - annotations: the parsed annotations of the module
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
//   - map[int]map[int]string: variable names keyed by group and binding
func parseBindGroupLayouts(source string, structs []parsedStruct, visibility wgpu.ShaderStage, annotations []Annotation) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string) {
	known := structLayouts(structs)
	dynamic := make(map[[2]int]bool)
	for _, a := range annotations {
		if a.Type == AnnotationTypeDynamic {
			dynamic[[2]int{a.Group, a.Binding}] = true
		}
	}

	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	names := make(map[int]map[int]string)
	for _, m := range bindGroupDeclRegex.FindAllStringSubmatch(source, -1) {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		addressSpace := strings.TrimSpace(m[3])
		typeName := strings.TrimSpace(m[5])

		entry := classifyResource(uint32(binding), visibility, addressSpace, typeName)
		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			if l, ok := resolveTypeLayout(typeName, known); ok {
				entry.Buffer.MinBindingSize = l.size
			}
			entry.Buffer.HasDynamicOffset = dynamic[[2]int{group, binding}]
		}
		groups[group] = append(groups[group], entry)

		if names[group] == nil {
			names[group] = make(map[int]string)
		}
		names[group][binding] = m[4]
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		slices.SortFunc(entries, func(a, b wgpu.BindGroupLayoutEntry) int {
			return int(a.Binding) - int(b.Binding)
		})
		result[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}
	return result, names
}

// classifyResource fills in the buffer, sampler or texture half of a layout entry.
func classifyResource(binding uint32, visibility wgpu.ShaderStage, addressSpace, typeName string) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
	}

	switch {
	case addressSpace == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case strings.HasPrefix(addressSpace, "storage"):
		if strings.Contains(addressSpace, "read_write") {
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		} else {
			entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		}
	case typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case typeName == "sampler_comparison":
		entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
	case strings.HasPrefix(typeName, "texture_depth_"):
		entry.Texture.SampleType = wgpu.TextureSampleTypeDepth
		entry.Texture.ViewDimension = wgslTextureDimensions["texture_"+strings.TrimPrefix(typeName, "texture_depth_")]
	case strings.HasPrefix(typeName, "texture_"):
		base, param, _ := strings.Cut(typeName, "<")
		entry.Texture.ViewDimension = wgslTextureDimensions[base]
		entry.Texture.SampleType = wgslSampleTypes[strings.TrimSpace(strings.TrimSuffix(param, ">"))]
	}
	return entry
}

// stripComments removes line comments and nested block comments.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch {
			case source[i] == '/' && source[i+1] == '*':
				depth++
				i++
				continue
			case source[i] == '*' && source[i+1] == '/' && depth > 0:
				depth--
				i++
				continue
			case source[i] == '/' && source[i+1] == '/' && depth == 0:
				for i < len(source) && source[i] != '\n' {
					i++
				}
				if i < len(source) {
					sb.WriteByte('\n')
				}
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}

// splitAtTopLevelCommas splits s at commas outside angle brackets and parentheses,
// so array<T, N> and @location(0) survive intact.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(':
			depth++
		case '>', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
