package resource

import (
	"fmt"
	"iter"
)

// Handle is a generation-checked reference into a Table[T].
// The zero Handle never refers to a live entry.
type Handle[T any] struct {
	index      uint32
	generation uint32
}

// Index returns the slot index of the handle.
func (h Handle[T]) Index() int {
	return int(h.index)
}

// Generation returns the generation the handle was issued with.
func (h Handle[T]) Generation() uint32 {
	return h.generation
}

// IsZero reports whether the handle is the zero value.
func (h Handle[T]) IsZero() bool {
	return h.generation == 0
}

// String implements fmt.Stringer for debugging output.
func (h Handle[T]) String() string {
	return fmt.Sprintf("%d@%d", h.index, h.generation)
}

type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// Table is a slot map: an arena of values addressed by generation-checked handles.
// Removing an entry bumps its slot generation, so handles issued before the removal are detected as stale.
type Table[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// NewTable creates an empty Table.
//
// Returns:
//   - *Table[T]: the new table
func NewTable[T any]() *Table[T] {
	return &Table[T]{}
}

// Insert stores a value, reusing a freed slot when one is available.
//
// Parameters:
//   - value: the value to store
//
// Returns:
//   - Handle[T]: the handle addressing the stored value
func (t *Table[T]) Insert(value T) Handle[T] {
	t.count++
	if n := len(t.free); n > 0 {
		index := t.free[n-1]
		t.free = t.free[:n-1]
		s := &t.slots[index]
		s.value = value
		s.occupied = true
		return Handle[T]{index: index, generation: s.generation}
	}
	t.slots = append(t.slots, slot[T]{value: value, generation: 1, occupied: true})
	return Handle[T]{index: uint32(len(t.slots) - 1), generation: 1}
}

// Lookup returns a pointer to the value addressed by h.
// The pointer is invalidated by the next Insert.
//
// Parameters:
//   - h: the handle to resolve
//
// Returns:
//   - *T: the value, or nil when the handle is stale or unknown
//   - bool: true if the handle is live
func (t *Table[T]) Lookup(h Handle[T]) (*T, bool) {
	if int(h.index) >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return nil, false
	}
	return &s.value, true
}

// Get returns a pointer to the value addressed by h.
// Panics when the handle is stale or unknown; use Lookup to test liveness.
//
// Parameters:
//   - h: the handle to resolve
//
// Returns:
//   - *T: the value
func (t *Table[T]) Get(h Handle[T]) *T {
	v, ok := t.Lookup(h)
	if !ok {
		panic(fmt.Sprintf("resource: stale or unknown handle %s", h))
	}
	return v
}

// Contains reports whether h addresses a live entry.
func (t *Table[T]) Contains(h Handle[T]) bool {
	_, ok := t.Lookup(h)
	return ok
}

// Remove deletes the value addressed by h and invalidates every handle to it.
//
// Parameters:
//   - h: the handle of the value to remove
//
// Returns:
//   - T: the removed value
//   - bool: false if the handle was already stale
func (t *Table[T]) Remove(h Handle[T]) (T, bool) {
	var zero T
	if _, ok := t.Lookup(h); !ok {
		return zero, false
	}
	s := &t.slots[h.index]
	value := s.value
	s.value = zero
	s.occupied = false
	s.generation++
	t.free = append(t.free, h.index)
	t.count--
	return value, true
}

// Len returns the number of live entries.
func (t *Table[T]) Len() int {
	return t.count
}

// All iterates live entries in slot order.
//
// Returns:
//   - iter.Seq2[Handle[T], *T]: the live handles and their values
func (t *Table[T]) All() iter.Seq2[Handle[T], *T] {
	return func(yield func(Handle[T], *T) bool) {
		for i := range t.slots {
			s := &t.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(Handle[T]{index: uint32(i), generation: s.generation}, &s.value) {
				return
			}
		}
	}
}
