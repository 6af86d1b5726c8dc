package shader

import (
	"fmt"
	"strconv"
	"strings"
)

// annotationPrefix marks a baryon annotation inside a WGSL line comment.
const annotationPrefix = "@baryon:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// AnnotationTypeDynamic marks a buffer binding as taking a dynamic offset at draw time.
	// Per-draw uniform data is packed into a shared arena, so the bind group layout entry
	// for that binding must be created with HasDynamicOffset.
	//
	// Syntax: //@baryon:dynamic <group> <binding>
	//
	// Example: //@baryon:dynamic 1 0
	AnnotationTypeDynamic AnnotationType = "dynamic"
)

// Annotation is a single parsed //@baryon: comment.
type Annotation struct {
	Type    AnnotationType
	Group   int
	Binding int
	// Line is the 1-based source line, kept for error messages.
	Line int
}

// String implements fmt.Stringer for debugging output.
func (a Annotation) String() string {
	return fmt.Sprintf("%s %d %d (line %d)", a.Type, a.Group, a.Binding, a.Line)
}

// parseAnnotations scans every line comment for the annotation prefix.
//
// Parameters:
//   - source: the raw WGSL source
//
// Returns:
//   - []Annotation: the annotations in source order
//   - error: a descriptive error for the first malformed annotation
func parseAnnotations(source string) ([]Annotation, error) {
	var result []Annotation
	lineNum := 0
	for line := range strings.SplitSeq(source, "\n") {
		lineNum++
		a, err := parseAnnotation(line, lineNum)
		if err != nil {
			return nil, err
		}
		if a != nil {
			result = append(result, *a)
		}
	}
	return result, nil
}

// parseAnnotation parses a single source line.
// Returns nil without error when the line carries no annotation.
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	_, comment, ok := strings.Cut(line, "//")
	if !ok {
		return nil, nil
	}
	_, after, ok := strings.Cut(strings.TrimSpace(comment), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @baryon annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case AnnotationTypeDynamic:
		if len(args) != 3 {
			return nil, fmt.Errorf("line %d: @baryon dynamic annotation requires a group and a binding", lineNum)
		}
		group, err := strconv.Atoi(args[1])
		if err != nil || group < 0 {
			return nil, fmt.Errorf("line %d: invalid group number %q in @baryon dynamic annotation", lineNum, args[1])
		}
		binding, err := strconv.Atoi(args[2])
		if err != nil || binding < 0 {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @baryon dynamic annotation", lineNum, args[2])
		}
		return &Annotation{Type: AnnotationTypeDynamic, Group: group, Binding: binding, Line: lineNum}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @baryon annotation type %q", lineNum, args[0])
	}
}
