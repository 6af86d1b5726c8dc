package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndGet(t *testing.T) {
	table := NewTable[string]()
	a := table.Insert("a")
	b := table.Insert("b")

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "a", *table.Get(a))
	assert.Equal(t, "b", *table.Get(b))
	assert.False(t, a.IsZero())
	assert.NotEqual(t, a, b)
}

func TestZeroHandleIsNeverLive(t *testing.T) {
	table := NewTable[int]()
	table.Insert(1)
	var zero Handle[int]
	assert.True(t, zero.IsZero())
	assert.False(t, table.Contains(zero))
}

func TestRemoveInvalidatesHandle(t *testing.T) {
	table := NewTable[int]()
	h := table.Insert(42)

	v, ok := table.Remove(h)
	require.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 0, table.Len())

	_, ok = table.Lookup(h)
	assert.False(t, ok)
	assert.Panics(t, func() { table.Get(h) })

	_, ok = table.Remove(h)
	assert.False(t, ok)
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	table := NewTable[int]()
	old := table.Insert(1)
	table.Remove(old)
	fresh := table.Insert(2)

	assert.Equal(t, old.Index(), fresh.Index())
	assert.Equal(t, old.Generation()+1, fresh.Generation())
	assert.False(t, table.Contains(old))
	assert.Equal(t, 2, *table.Get(fresh))
}

func TestAllSkipsRemoved(t *testing.T) {
	table := NewTable[int]()
	a := table.Insert(1)
	table.Insert(2)
	table.Insert(3)
	table.Remove(a)

	var seen []int
	for _, v := range table.All() {
		seen = append(seen, *v)
	}
	assert.Equal(t, []int{2, 3}, seen)

	count := 0
	for range table.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestLookupOutOfRange(t *testing.T) {
	table := NewTable[int]()
	_, ok := table.Lookup(Handle[int]{index: 3, generation: 1})
	assert.False(t, ok)
}
