package model

import "strings"

// StreamKind identifies a typed vertex attribute stream.
type StreamKind uint8

const (
	// StreamPosition is a [3]float32 position per vertex.
	StreamPosition StreamKind = iota
	// StreamNormal is a [3]float32 normal per vertex.
	StreamNormal
	// StreamTexCoord is a [2]float32 texture coordinate per vertex.
	StreamTexCoord

	streamKindCount
)

// String implements fmt.Stringer.
func (k StreamKind) String() string {
	switch k {
	case StreamPosition:
		return "Position"
	case StreamNormal:
		return "Normal"
	case StreamTexCoord:
		return "TexCoord"
	default:
		return "Unknown"
	}
}

// Stride returns the tightly packed byte size of one element of the stream.
func (k StreamKind) Stride() uint64 {
	switch k {
	case StreamPosition, StreamNormal:
		return 12
	case StreamTexCoord:
		return 8
	default:
		return 0
	}
}

// StreamSet is a bit set of StreamKind markers.
// Entities carry the set of their mesh so passes can query by required streams.
type StreamSet uint8

// Streams builds a StreamSet from the given kinds.
//
// Parameters:
//   - kinds: the stream kinds to include
//
// Returns:
//   - StreamSet: the combined set
func Streams(kinds ...StreamKind) StreamSet {
	var s StreamSet
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

// With returns the set with kind added.
func (s StreamSet) With(kind StreamKind) StreamSet {
	return s | 1<<kind
}

// Has reports whether kind is a member of the set.
func (s StreamSet) Has(kind StreamKind) bool {
	return s&(1<<kind) != 0
}

// Contains reports whether every member of required is also in s.
func (s StreamSet) Contains(required StreamSet) bool {
	return s&required == required
}

// String implements fmt.Stringer.
func (s StreamSet) String() string {
	names := make([]string, 0, streamKindCount)
	for k := StreamKind(0); k < streamKindCount; k++ {
		if s.Has(k) {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, "|") + "}"
}
