package provenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_HalfOpen(t *testing.T) {
	// A Range is [Start, Start+Size) - half-open interval.
	// This test documents the semantic meaning.
	start := Provenance{n: 10}
	r := NewRange(start, 5)

	assert.Equal(t, start, r.Start())
	assert.Equal(t, 5, r.Size())
	assert.Equal(t, start.Add(5), r.End())

	// Coordinates 10..14 are in; 15 (the End) is not.
	assert.True(t, r.Contains(start))
	assert.True(t, r.Contains(start.Add(4)))
	assert.False(t, r.Contains(start.Add(5)))
	assert.False(t, r.Contains(start.Add(-1)))
}

func TestRange_Empty(t *testing.T) {
	r := NewRange(Provenance{n: 3}, 0)
	assert.True(t, r.IsEmpty())
	assert.False(t, r.Contains(Provenance{n: 3}))

	assert.False(t, NewRange(Provenance{n: 3}, 1).IsEmpty())
}

func TestRange_ContainsRange(t *testing.T) {
	r := NewRange(Provenance{n: 10}, 10)

	assert.True(t, r.ContainsRange(NewRange(Provenance{n: 10}, 10)))
	assert.True(t, r.ContainsRange(NewRange(Provenance{n: 12}, 3)))
	assert.True(t, r.ContainsRange(NewRange(Provenance{n: 15}, 5)))
	assert.False(t, r.ContainsRange(NewRange(Provenance{n: 15}, 6)))
	assert.False(t, r.ContainsRange(NewRange(Provenance{n: 9}, 2)))

	// The empty range is inside everything.
	assert.True(t, r.ContainsRange(Range{}))
}

func TestRange_SuffixPrefix(t *testing.T) {
	r := NewRange(Provenance{n: 100}, 8)

	s := r.Suffix(3)
	assert.Equal(t, Provenance{n: 103}, s.Start())
	assert.Equal(t, 5, s.Size())

	p := r.Prefix(3)
	assert.Equal(t, Provenance{n: 100}, p.Start())
	assert.Equal(t, 3, p.Size())

	// Prefix longer than the range is the whole range.
	assert.Equal(t, r, r.Prefix(100))
}

func TestRange_OffsetOf(t *testing.T) {
	r := NewRange(Provenance{n: 20}, 5)
	assert.Equal(t, 0, r.OffsetOf(Provenance{n: 20}))
	assert.Equal(t, 4, r.OffsetOf(Provenance{n: 24}))

	assert.Panics(t, func() { r.OffsetOf(Provenance{n: 25}) })
}

func TestRange_ExtendToCover(t *testing.T) {
	r := NewRange(Provenance{n: 1}, 4)
	next := NewRange(Provenance{n: 5}, 6)
	require.True(t, r.ImmediatelyPrecedes(next))

	r.ExtendToCover(next)
	assert.Equal(t, 10, r.Size())
	assert.Equal(t, Provenance{n: 1}, r.Start())

	// Non-adjacent extension is a fault.
	assert.Panics(t, func() {
		q := NewRange(Provenance{n: 1}, 4)
		q.ExtendToCover(NewRange(Provenance{n: 99}, 1))
	})
}

func TestBetween(t *testing.T) {
	r := Between(Provenance{n: 7}, Provenance{n: 12})
	assert.Equal(t, Provenance{n: 7}, r.Start())
	assert.Equal(t, 5, r.Size())

	assert.True(t, Between(Provenance{n: 7}, Provenance{n: 7}).IsEmpty())
	assert.Panics(t, func() { Between(Provenance{n: 7}, Provenance{n: 6}) })
}

func TestProvenance_Ordering(t *testing.T) {
	p := Provenance{n: 5}
	assert.True(t, p.Less(p.Add(1)))
	assert.False(t, p.Less(p))
	assert.True(t, p.Okay())
	assert.False(t, Provenance{}.Okay())
}
