package provenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetMapping_PutMergesContiguousRuns(t *testing.T) {
	var m OffsetMapping
	m.Put(NewRange(Provenance{n: 1}, 4))
	m.Put(NewRange(Provenance{n: 5}, 6))

	// Buffer-contiguous and provenance-contiguous entries must merge.
	assert.Equal(t, 1, m.Entries())
	assert.Equal(t, 10, m.SizeInBytes())

	// A gap in provenance starts a new entry.
	m.Put(NewRange(Provenance{n: 100}, 2))
	assert.Equal(t, 2, m.Entries())
	assert.Equal(t, 12, m.SizeInBytes())
}

func TestOffsetMapping_CompressionIdempotent(t *testing.T) {
	var m OffsetMapping
	for i := 0; i < 10; i++ {
		m.Put(NewRange(Provenance{n: 1 + i}, 1))
	}
	require.Equal(t, 1, m.Entries())

	// Re-applying the same construction over the compressed entries is a
	// no-op on the shape of the mapping.
	var again OffsetMapping
	again.PutMapping(&m)
	assert.Equal(t, m.Entries(), again.Entries())
	assert.Equal(t, m.SizeInBytes(), again.SizeInBytes())
	assert.Equal(t, m.Map(0), again.Map(0))
}

func TestOffsetMapping_Map(t *testing.T) {
	var m OffsetMapping
	m.Put(NewRange(Provenance{n: 1}, 4))   // bytes 0..3
	m.Put(NewRange(Provenance{n: 100}, 3)) // bytes 4..6

	assert.Equal(t, Provenance{n: 1}, m.Map(0).Start())
	assert.Equal(t, Provenance{n: 3}, m.Map(2).Start())
	// Map extends through the end of the entry only.
	assert.Equal(t, 2, m.Map(2).Size())
	assert.Equal(t, Provenance{n: 100}, m.Map(4).Start())
	assert.Equal(t, Provenance{n: 102}, m.Map(6).Start())
}

func TestOffsetMapping_MapOutOfRange(t *testing.T) {
	var m OffsetMapping
	m.Put(NewRange(Provenance{n: 1}, 2))

	assert.Panics(t, func() { m.Map(-1) })
	assert.Panics(t, func() { m.Map(2) })
}

func TestOffsetMapping_RemoveLastBytes(t *testing.T) {
	var m OffsetMapping
	m.Put(NewRange(Provenance{n: 1}, 4))
	m.Put(NewRange(Provenance{n: 100}, 3))

	// Shrink within the last entry.
	m.RemoveLastBytes(2)
	assert.Equal(t, 5, m.SizeInBytes())
	assert.Equal(t, 2, m.Entries())
	assert.Equal(t, Provenance{n: 100}, m.Map(4).Start())

	// Removing across an entry boundary drops the tail entry.
	m.RemoveLastBytes(3)
	assert.Equal(t, 2, m.SizeInBytes())
	assert.Equal(t, 1, m.Entries())
	assert.Equal(t, Provenance{n: 2}, m.Map(1).Start())

	assert.Panics(t, func() { m.RemoveLastBytes(3) })
}

func TestOffsetMapping_Prepend(t *testing.T) {
	var m OffsetMapping
	m.Put(NewRange(Provenance{n: 10}, 5))

	// Provenance-contiguous prepend is absorbed by the first entry.
	m.Prepend(NewRange(Provenance{n: 7}, 3))
	assert.Equal(t, 1, m.Entries())
	assert.Equal(t, 8, m.SizeInBytes())
	assert.Equal(t, Provenance{n: 7}, m.Map(0).Start())
	assert.Equal(t, Provenance{n: 14}, m.Map(7).Start())

	// Non-contiguous prepend inserts a fresh entry and shifts the rest.
	m.Prepend(NewRange(Provenance{n: 100}, 2))
	assert.Equal(t, 2, m.Entries())
	assert.Equal(t, 10, m.SizeInBytes())
	assert.Equal(t, Provenance{n: 100}, m.Map(0).Start())
	assert.Equal(t, Provenance{n: 7}, m.Map(2).Start())
}
