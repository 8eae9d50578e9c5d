package provenance

import (
	"sort"

	"github.com/fortlang/shape/pkg/common"
)

// Origin describes where one contiguous run of coordinates came from.
type Origin interface {
	Kind() string
	Name() string
}

// FileOrigin covers the content of one source file.
type FileOrigin struct {
	FileName string
	Content  []byte
}

// Kind returns "file".
func (f *FileOrigin) Kind() string { return "file" }

// Name returns the file path.
func (f *FileOrigin) Name() string { return f.FileName }

// MacroOrigin covers the replacement text of one macro expansion, and
// remembers where the expanded macro was defined.
type MacroOrigin struct {
	Text       []byte
	Definition Range
}

// Kind returns "macro".
func (m *MacroOrigin) Kind() string { return "macro" }

// Name returns an empty string; macro expansions have no file path of
// their own.
func (m *MacroOrigin) Name() string { return "" }

type spannedOrigin struct {
	covers Range
	origin Origin
}

// Space is the append-only coordinate space covering all original source
// material of one compiled unit. It grows only while lexing runs; Freeze
// makes it read-only, after which it is safe for unsynchronized concurrent
// reads by later phases.
type Space struct {
	origins []spannedOrigin
	next    int
	frozen  bool
}

// NewSpace creates an empty, growable space.
func NewSpace() *Space {
	return &Space{next: 1}
}

// Size returns the total number of coordinates issued so far.
func (s *Space) Size() int { return s.next - 1 }

// Frozen reports whether the space has been frozen.
func (s *Space) Frozen() bool { return s.frozen }

// Freeze makes the space read-only. Freezing twice is harmless.
func (s *Space) Freeze() { s.frozen = true }

// AddFile appends a file's content to the space and returns the range of
// coordinates covering it.
func (s *Space) AddFile(name string, content []byte) Range {
	return s.add(&FileOrigin{FileName: name, Content: content}, len(content))
}

// AddMacroExpansion appends the replacement text of a macro expansion and
// returns the range of coordinates covering it. definition is the range of
// the macro's definition in previously added material.
func (s *Space) AddMacroExpansion(text []byte, definition Range) Range {
	return s.add(&MacroOrigin{Text: text, Definition: definition}, len(text))
}

func (s *Space) add(o Origin, size int) Range {
	if s.frozen {
		panic(common.Faultf("cannot add %s origin %q to a frozen provenance space", o.Kind(), o.Name()))
	}
	r := NewRange(Provenance{s.next}, size)
	s.origins = append(s.origins, spannedOrigin{covers: r, origin: o})
	s.next += size
	return r
}

// OriginFor returns the origin covering p.
func (s *Space) OriginFor(p Provenance) Origin {
	return s.originAt(p).origin
}

// OffsetInOrigin returns the offset of p within its origin's content.
func (s *Space) OffsetInOrigin(p Provenance) int {
	return s.originAt(p).covers.OffsetOf(p)
}

// FileName returns the path of the file covering p, or an empty string when
// p originates in a macro expansion.
func (s *Space) FileName(p Provenance) string {
	return s.originAt(p).origin.Name()
}

func (s *Space) originAt(p Provenance) spannedOrigin {
	if !p.Okay() || p.n >= s.next {
		panic(common.Faultf("provenance %v outside space of size %d", p, s.Size()))
	}
	// First origin beginning after p, minus one, covers p.
	i := sort.Search(len(s.origins), func(i int) bool {
		return p.Less(s.origins[i].covers.Start())
	})
	return s.origins[i-1]
}
