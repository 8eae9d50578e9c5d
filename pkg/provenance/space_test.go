package provenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpace_AddFile(t *testing.T) {
	s := NewSpace()
	first := s.AddFile("a.f90", []byte("PROGRAM A\nEND\n"))
	second := s.AddFile("b.f90", []byte("MODULE B\n"))

	assert.Equal(t, 14, first.Size())
	assert.Equal(t, 9, second.Size())
	assert.True(t, first.End() == second.Start(), "origins are laid out back to back")
	assert.Equal(t, 23, s.Size())

	assert.Equal(t, "a.f90", s.FileName(first.Start()))
	assert.Equal(t, "b.f90", s.FileName(second.Start().Add(3)))
	assert.Equal(t, 3, s.OffsetInOrigin(second.Start().Add(3)))

	origin, ok := s.OriginFor(first.Start().Add(1)).(*FileOrigin)
	require.True(t, ok)
	assert.Equal(t, "file", origin.Kind())
	assert.Equal(t, []byte("PROGRAM A\nEND\n"), origin.Content)
}

func TestSpace_AddMacroExpansion(t *testing.T) {
	s := NewSpace()
	file := s.AddFile("m.f90", []byte("#define N 100\nX = N\n"))
	definition := NewRange(file.Start().Add(10), 3)

	expansion := s.AddMacroExpansion([]byte("100"), definition)
	assert.Equal(t, 3, expansion.Size())

	origin, ok := s.OriginFor(expansion.Start()).(*MacroOrigin)
	require.True(t, ok)
	assert.Equal(t, "macro", origin.Kind())
	assert.Equal(t, definition, origin.Definition)

	// Macro expansions have no file name of their own.
	assert.Equal(t, "", s.FileName(expansion.Start()))
}

func TestSpace_Freeze(t *testing.T) {
	s := NewSpace()
	s.AddFile("a.f90", []byte("X = 1\n"))

	require.False(t, s.Frozen())
	s.Freeze()
	assert.True(t, s.Frozen())

	// Growing a frozen space is an internal fault.
	assert.Panics(t, func() { s.AddFile("late.f90", []byte("Y = 2\n")) })

	// Freezing again is harmless; reads still work.
	s.Freeze()
	assert.Equal(t, 6, s.Size())
}

func TestSpace_OutOfRange(t *testing.T) {
	s := NewSpace()
	r := s.AddFile("a.f90", []byte("XY"))

	assert.Panics(t, func() { s.OriginFor(Provenance{}) })
	assert.Panics(t, func() { s.OriginFor(r.End()) })
}
