package shader

import (
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/baryon-go/common"
)

// resolveTypeLayout returns the size and alignment of a WGSL type.
// Runtime-sized arrays resolve to a single element stride so the result can serve as a MinBindingSize.
//
// Parameters:
//   - typeName: a primitive, a struct name already in known, or an array of either
//   - known: struct layouts resolved so far
//
// Returns:
//   - wgslTypeLayout: the layout
//   - bool: false if the type is unknown
func resolveTypeLayout(typeName string, known map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	if l, ok := wgslPrimitiveLayouts[typeName]; ok {
		return l, true
	}
	if l, ok := known[typeName]; ok {
		return l, true
	}

	inner, ok := strings.CutPrefix(typeName, "array<")
	if !ok || !strings.HasSuffix(inner, ">") {
		return wgslTypeLayout{}, false
	}
	elemName, countText, sized := strings.Cut(inner[:len(inner)-1], ",")
	elem, ok := resolveTypeLayout(strings.TrimSpace(elemName), known)
	if !ok {
		return wgslTypeLayout{}, false
	}
	stride := common.AlignUp(elem.size, elem.align)
	if !sized {
		return wgslTypeLayout{stride, elem.align}, true
	}
	count, err := strconv.ParseUint(strings.TrimSpace(countText), 10, 64)
	if err != nil {
		return wgslTypeLayout{}, false
	}
	return wgslTypeLayout{count * stride, elem.align}, true
}

// structLayout lays the fields of ps out in order at their natural alignment.
// A trailing runtime-sized array contributes nothing to the size.
func structLayout(ps parsedStruct, known map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	var offset uint64
	align := uint64(1)

	for i, f := range ps.fields {
		if f.isBuiltin {
			continue
		}
		runtimeArray := strings.HasPrefix(f.typeName, "array<") && !strings.Contains(f.typeName, ",")
		l, ok := resolveTypeLayout(f.typeName, known)
		if !ok {
			return wgslTypeLayout{}, false
		}
		align = max(align, l.align)
		if runtimeArray && i == len(ps.fields)-1 {
			if offset == 0 {
				return l, true
			}
			break
		}
		offset = common.AlignUp(offset, l.align) + l.size
	}
	return wgslTypeLayout{common.AlignUp(offset, align), align}, true
}

// structLayouts resolves every struct, repeating until nested struct references settle.
func structLayouts(structs []parsedStruct) map[string]wgslTypeLayout {
	resolved := make(map[string]wgslTypeLayout, len(structs))
	pending := structs
	for len(pending) > 0 {
		var next []parsedStruct
		for _, ps := range pending {
			if l, ok := structLayout(ps, resolved); ok {
				resolved[ps.name] = l
			} else {
				next = append(next, ps)
			}
		}
		if len(next) == len(pending) {
			break
		}
		pending = next
	}
	return resolved
}
