package provenance

import (
	"sort"

	"github.com/fortlang/shape/pkg/common"
)

type mappingEntry struct {
	offset int // buffer offset of the entry's first character
	r      Range
}

// OffsetMapping relates byte offsets within some character buffer to the
// provenance of the characters stored there. Entries are ordered,
// non-overlapping, and cover [0, SizeInBytes()). The mapping stays maximally
// run-length compressed: no two adjacent entries are both buffer-contiguous
// and provenance-contiguous.
type OffsetMapping struct {
	bytes   int
	entries []mappingEntry
}

// SizeInBytes returns the number of buffer bytes covered.
func (m *OffsetMapping) SizeInBytes() int { return m.bytes }

// Entries returns the number of compressed entries.
func (m *OffsetMapping) Entries() int { return len(m.entries) }

// Clear empties the mapping.
func (m *OffsetMapping) Clear() {
	m.bytes = 0
	m.entries = m.entries[:0]
}

// Put appends the provenance of r.Size() bytes at the end of the buffer,
// merging with the trailing entry when the new range continues it.
func (m *OffsetMapping) Put(r Range) {
	if r.IsEmpty() {
		return
	}
	if n := len(m.entries); n > 0 && m.entries[n-1].r.ImmediatelyPrecedes(r) {
		m.entries[n-1].r.ExtendToCover(r)
	} else {
		m.entries = append(m.entries, mappingEntry{offset: m.bytes, r: r})
	}
	m.bytes += r.Size()
}

// PutMapping appends another whole mapping, re-merging at the seam.
func (m *OffsetMapping) PutMapping(that *OffsetMapping) {
	for _, e := range that.entries {
		m.Put(e.r)
	}
}

// Prepend extends the mapping backward so that r covers bytes inserted at
// the front of the buffer. The first entry absorbs r when provenance-
// contiguous.
func (m *OffsetMapping) Prepend(r Range) {
	if r.IsEmpty() {
		return
	}
	if len(m.entries) > 0 && r.ImmediatelyPrecedes(m.entries[0].r) {
		m.entries[0].r = Between(r.Start(), m.entries[0].r.End())
		m.entries[0].offset = 0
	} else {
		m.entries = append([]mappingEntry{{offset: 0, r: r}}, m.entries...)
	}
	for i := 1; i < len(m.entries); i++ {
		m.entries[i].offset += r.Size()
	}
	m.bytes += r.Size()
}

// Map returns the provenance of the byte at offset, extended through the end
// of its entry. An offset outside [0, SizeInBytes()) is a bounds violation.
func (m *OffsetMapping) Map(offset int) Range {
	if offset < 0 || offset >= m.bytes {
		panic(common.Faultf("offset %d outside provenance mapping of %d bytes", offset, m.bytes))
	}
	// First entry beginning past offset, minus one, covers offset.
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].offset > offset
	})
	e := m.entries[i-1]
	return e.r.Suffix(offset - e.offset)
}

// RemoveLastBytes deletes the provenance of the trailing n buffer bytes.
func (m *OffsetMapping) RemoveLastBytes(n int) {
	if n > m.bytes {
		panic(common.Faultf("cannot remove %d provenance bytes from a mapping of %d", n, m.bytes))
	}
	m.bytes -= n
	for n > 0 {
		last := &m.entries[len(m.entries)-1]
		if size := last.r.Size(); size > n {
			last.r = last.r.Prefix(size - n)
			return
		}
		n -= last.r.Size()
		m.entries = m.entries[:len(m.entries)-1]
	}
}
