// Package provenance records the origin of every character that reaches the
// later phases of compilation. All original source material — included files
// and macro expansions alike — is laid out in one append-only coordinate
// space per compiled unit, and buffers that are edited after lexing keep a
// compressed mapping from their byte offsets back into that space.
package provenance

import (
	"fmt"

	"github.com/fortlang/shape/pkg/common"
)

// Provenance identifies one character's origin as an ordered coordinate in a
// Space. The zero value is invalid; the first coordinate issued by a Space
// is 1. Arithmetic on coordinates is limited to offsets within a Range.
type Provenance struct {
	n int
}

// Okay reports whether p is a valid coordinate.
func (p Provenance) Okay() bool { return p.n > 0 }

// Less reports whether p precedes q in the space.
func (p Provenance) Less(q Provenance) bool { return p.n < q.n }

// Add returns the coordinate k characters after p. Callers must only move
// within a Range known to contain the result.
func (p Provenance) Add(k int) Provenance { return Provenance{p.n + k} }

func (p Provenance) String() string { return fmt.Sprintf("%d", p.n) }

// Range is a half-open interval [Start, Start+Size) of coordinates.
type Range struct {
	start Provenance
	size  int
}

// NewRange creates the range [start, start+size).
func NewRange(start Provenance, size int) Range {
	if size < 0 {
		panic(common.Faultf("negative provenance range size %d", size))
	}
	return Range{start: start, size: size}
}

// Between returns the half-open range from start up to but excluding end.
func Between(start, end Provenance) Range {
	if end.n < start.n {
		panic(common.Faultf("provenance range end %v precedes start %v", end, start))
	}
	return Range{start: start, size: end.n - start.n}
}

// Start returns the first coordinate of the range.
func (r Range) Start() Provenance { return r.start }

// Size returns the number of coordinates covered.
func (r Range) Size() int { return r.size }

// End returns the coordinate one past the last in the range.
func (r Range) End() Provenance { return r.start.Add(r.size) }

// IsEmpty reports whether the range covers no coordinates.
func (r Range) IsEmpty() bool { return r.size == 0 }

// Contains reports whether p lies within the range.
func (r Range) Contains(p Provenance) bool {
	return r.start.n <= p.n && p.n < r.start.n+r.size
}

// ContainsRange reports whether s lies entirely within r.
func (r Range) ContainsRange(s Range) bool {
	return s.IsEmpty() ||
		(r.Contains(s.start) && s.start.n+s.size <= r.start.n+r.size)
}

// OffsetOf returns the offset of p within the range.
func (r Range) OffsetOf(p Provenance) int {
	if !r.Contains(p) {
		panic(common.Faultf("provenance %v not in range %v", p, r))
	}
	return p.n - r.start.n
}

// Suffix returns the subrange that skips the first skip coordinates.
func (r Range) Suffix(skip int) Range {
	if skip > r.size {
		panic(common.Faultf("suffix skip %d exceeds range size %d", skip, r.size))
	}
	return Range{start: r.start.Add(skip), size: r.size - skip}
}

// Prefix returns the subrange covering at most maxSize leading coordinates.
func (r Range) Prefix(maxSize int) Range {
	if maxSize >= r.size {
		return r
	}
	return Range{start: r.start, size: maxSize}
}

// ImmediatelyPrecedes reports whether next begins exactly where r ends.
func (r Range) ImmediatelyPrecedes(next Range) bool {
	return r.start.n+r.size == next.start.n
}

// ExtendToCover grows r so that it also covers next, which must begin
// exactly at r's end.
func (r *Range) ExtendToCover(next Range) {
	if !r.ImmediatelyPrecedes(next) {
		panic(common.Faultf("cannot extend %v to cover non-adjacent %v", *r, next))
	}
	r.size += next.size
}

func (r Range) String() string {
	return fmt.Sprintf("[%d..%d)", r.start.n, r.start.n+r.size)
}
