// Package tokenseq buffers a contiguous sequence of characters partitioned
// into lexical tokens, along with the provenance of every character. A
// sequence is built by the lexer through the Put/CloseToken interface and is
// then edited in place by later text passes; every edit keeps the buffer,
// the token boundaries, and the provenance mapping mutually consistent.
package tokenseq

import (
	"fmt"
	"io"

	"github.com/fortlang/shape/pkg/common"
	"github.com/fortlang/shape/pkg/provenance"
)

// TokenSequence owns a character buffer, a strictly increasing list of token
// start offsets (the last token implicitly ends at the buffer length), and
// the offset-to-provenance mapping for the buffer.
//
// Out-of-range token or character access is a bounds violation that panics
// with a *common.Fault: it means a pass is inconsistent with its own
// sequence, which no caller can recover from.
type TokenSequence struct {
	start       []int
	nextStart   int
	chars       []byte
	provenances provenance.OffsetMapping
}

// FromString creates a sequence holding s as a single token whose characters
// originate at p, p+1, ...
func FromString(s string, p provenance.Provenance) *TokenSequence {
	var t TokenSequence
	t.Put([]byte(s), p)
	t.CloseToken()
	return &t
}

// Empty reports whether the sequence has no tokens.
func (t *TokenSequence) Empty() bool { return len(t.start) == 0 }

// Clear resets the sequence to its initial empty state.
func (t *TokenSequence) Clear() {
	t.start = t.start[:0]
	t.nextStart = 0
	t.chars = t.chars[:0]
	t.provenances.Clear()
}

// SizeInTokens returns the number of closed tokens.
func (t *TokenSequence) SizeInTokens() int { return len(t.start) }

// SizeInChars returns the number of characters in the buffer.
func (t *TokenSequence) SizeInChars() int { return len(t.chars) }

// ToCharBlock returns a borrowed view of the whole buffer.
func (t *TokenSequence) ToCharBlock() CharBlock { return CharBlock{bytes: t.chars} }

func (t *TokenSequence) String() string { return string(t.chars) }

// TokenAt returns a borrowed view of token i.
func (t *TokenSequence) TokenAt(i int) CharBlock {
	n := t.tokenBytes(i)
	return CharBlock{bytes: t.chars[t.start[i] : t.start[i]+n]}
}

// CharAt returns the character at buffer offset j.
func (t *TokenSequence) CharAt(j int) byte {
	if j < 0 || j >= len(t.chars) {
		panic(common.Faultf("character offset %d outside buffer of %d chars", j, len(t.chars)))
	}
	return t.chars[j]
}

// CurrentOpenToken returns a borrowed view of the token being accumulated.
func (t *TokenSequence) CurrentOpenToken() CharBlock {
	return CharBlock{bytes: t.chars[t.nextStart:]}
}

// PutChar appends one character with a one-character provenance range.
func (t *TokenSequence) PutChar(ch byte, p provenance.Provenance) {
	t.chars = append(t.chars, ch)
	t.provenances.Put(provenance.NewRange(p, 1))
}

// Put appends a run of characters whose provenances are p, p+1, ...
// The mapping merges the run into an immediately preceding contiguous entry.
func (t *TokenSequence) Put(chars []byte, p provenance.Provenance) {
	t.chars = append(t.chars, chars...)
	t.provenances.Put(provenance.NewRange(p, len(chars)))
}

// PutTokens appends every token of another sequence.
func (t *TokenSequence) PutTokens(that *TokenSequence) {
	base := len(t.chars)
	for _, s := range that.start {
		t.start = append(t.start, base+s)
	}
	t.chars = append(t.chars, that.chars...)
	t.provenances.PutMapping(&that.provenances)
	t.nextStart = len(t.chars)
}

// PutTokenRange appends count tokens of another sequence starting at token
// index at, preserving their per-character provenances.
func (t *TokenSequence) PutTokenRange(that *TokenSequence, at, count int) {
	for i := at; i < at+count; i++ {
		n := that.tokenBytes(i)
		base := that.start[i]
		for j := base; j < base+n; {
			piece := that.provenances.Map(j).Prefix(base + n - j)
			t.chars = append(t.chars, that.chars[j:j+piece.Size()]...)
			t.provenances.Put(piece)
			j += piece.Size()
		}
		t.CloseToken()
	}
}

// CloseToken delimits the currently accumulating token.
func (t *TokenSequence) CloseToken() {
	t.start = append(t.start, t.nextStart)
	t.nextStart = len(t.chars)
}

// ReopenLastToken undoes the matching CloseToken, restoring the pre-close
// state exactly. It is only valid immediately after that CloseToken.
func (t *TokenSequence) ReopenLastToken() {
	if len(t.start) == 0 {
		panic(common.Faultf("ReopenLastToken on a sequence with no tokens"))
	}
	t.nextStart = t.start[len(t.start)-1]
	t.start = t.start[:len(t.start)-1]
}

// RemoveLastToken removes the most recently closed token, restoring the
// buffer length, token count, and provenance mapping to their prior values.
// The lexer uses this to backtrack.
func (t *TokenSequence) RemoveLastToken() {
	if len(t.start) == 0 {
		panic(common.Faultf("RemoveLastToken on a sequence with no tokens"))
	}
	if t.nextStart != len(t.chars) {
		panic(common.Faultf("RemoveLastToken while a token is open"))
	}
	last := t.start[len(t.start)-1]
	t.provenances.RemoveLastBytes(len(t.chars) - last)
	t.chars = t.chars[:last]
	t.start = t.start[:len(t.start)-1]
	t.nextStart = last
}

// SkipBlanks returns the offset of the first character at or after `at` that
// is not a space or tab, or SizeInChars when only blanks remain.
func (t *TokenSequence) SkipBlanks(at int) int {
	for ; at < len(t.chars); at++ {
		if t.chars[at] != ' ' && t.chars[at] != '\t' {
			return at
		}
	}
	return len(t.chars)
}

// HasBlanks reports whether any character at or after firstChar is a blank.
func (t *TokenSequence) HasBlanks(firstChar int) bool {
	for j := firstChar; j < len(t.chars); j++ {
		if isBlank(t.chars[j]) {
			return true
		}
	}
	return false
}

// HasRedundantBlanks reports whether any blank at or after firstChar
// directly follows another blank.
func (t *TokenSequence) HasRedundantBlanks(firstChar int) bool {
	for j := firstChar; j < len(t.chars); j++ {
		if j > 0 && isBlank(t.chars[j]) && isBlank(t.chars[j-1]) {
			return true
		}
	}
	return false
}

// TokenProvenance returns the provenance of the character at the given
// intra-token offset.
func (t *TokenSequence) TokenProvenance(token, offset int) provenance.Provenance {
	return t.TokenProvenanceRange(token, offset).Start()
}

// TokenProvenanceRange returns the provenance of the token's characters from
// the given intra-token offset onward, limited to one contiguous mapping
// entry and to the token's end.
func (t *TokenSequence) TokenProvenanceRange(token, offset int) provenance.Range {
	n := t.tokenBytes(token)
	if offset < 0 || offset >= n {
		panic(common.Faultf("offset %d outside token %d of %d chars", offset, token, n))
	}
	return t.provenances.Map(t.start[token] + offset).Prefix(n - offset)
}

// IntervalProvenanceRange returns the range from the first byte's provenance
// start to the last byte's provenance end over count tokens beginning at
// token. Callers must only query spans known to originate from one
// contiguous source region.
func (t *TokenSequence) IntervalProvenanceRange(token, count int) provenance.Range {
	if count < 1 {
		panic(common.Faultf("interval of %d tokens", count))
	}
	first := t.TokenProvenanceRange(token, 0)
	lastTok := token + count - 1
	lastN := t.tokenBytes(lastTok)
	last := t.provenances.Map(t.start[lastTok] + lastN - 1)
	return provenance.Between(first.Start(), last.Start().Add(1))
}

// ProvenanceRange returns the range covering the whole buffer, from the
// first byte's provenance start to the last byte's provenance end.
func (t *TokenSequence) ProvenanceRange() provenance.Range {
	if len(t.chars) == 0 {
		return provenance.Range{}
	}
	first := t.provenances.Map(0)
	last := t.provenances.Map(len(t.chars) - 1)
	return provenance.Between(first.Start(), last.Start().Add(1))
}

// ToLowerCase folds every ASCII letter in the buffer to lower case. The fold
// is length-preserving, so provenances are untouched.
func (t *TokenSequence) ToLowerCase() *TokenSequence {
	for j, ch := range t.chars {
		if ch >= 'A' && ch <= 'Z' {
			t.chars[j] = ch + ('a' - 'A')
		}
	}
	return t
}

// RemoveBlanks deletes every blank at or after firstChar, along with its
// provenance, re-compressing the mapping.
func (t *TokenSequence) RemoveBlanks(firstChar int) *TokenSequence {
	t.rebuild(func(at int, ch byte, afterBlank bool) bool {
		return !isBlank(ch) || at < firstChar
	})
	return t
}

// RemoveRedundantBlanks collapses every run of blanks at or after firstChar
// to a single blank, deleting the discarded characters' provenances.
func (t *TokenSequence) RemoveRedundantBlanks(firstChar int) *TokenSequence {
	t.rebuild(func(at int, ch byte, afterBlank bool) bool {
		return !isBlank(ch) || !afterBlank || at < firstChar
	})
	return t
}

// rebuild copies the sequence token by token, keeping only the characters
// the predicate accepts, and replaces the receiver with the result.
func (t *TokenSequence) rebuild(keep func(at int, ch byte, afterBlank bool) bool) {
	var result TokenSequence
	afterBlank := false
	for i := 0; i < len(t.start); i++ {
		base := t.start[i]
		n := t.tokenBytes(i)
		for j := 0; j < n; j++ {
			at := base + j
			ch := t.chars[at]
			if keep(at, ch, afterBlank) {
				result.PutChar(ch, t.provenances.Map(at).Start())
			}
			afterBlank = isBlank(ch)
		}
		result.CloseToken()
	}
	*t = result
}

// ClipComment truncates the buffer, tokens, and mapping from the first
// comment-introducer character ('!') onward. When skipFirst is set the
// leading character is exempt. The scan is deliberately unaware of character
// literals: any '!' starts a comment regardless of quoting context.
func (t *TokenSequence) ClipComment(skipFirst bool) *TokenSequence {
	from := 0
	if skipFirst {
		from = 1
	}
	for at := from; at < len(t.chars); at++ {
		if t.chars[at] == '!' {
			t.provenances.RemoveLastBytes(len(t.chars) - at)
			t.chars = t.chars[:at]
			for len(t.start) > 0 && t.start[len(t.start)-1] >= at {
				t.start = t.start[:len(t.start)-1]
			}
			if t.nextStart > at {
				t.nextStart = at
			}
			break
		}
	}
	return t
}

// Dump writes a debugging rendering of the sequence to w.
func (t *TokenSequence) Dump(w io.Writer) {
	fmt.Fprintf(w, "%d tokens, %d chars\n", len(t.start), len(t.chars))
	for i := range t.start {
		block := t.TokenAt(i)
		if block.Len() == 0 {
			fmt.Fprintf(w, "%3d: (empty)\n", i)
			continue
		}
		fmt.Fprintf(w, "%3d: %q %s\n", i, block.String(), t.IntervalProvenanceRange(i, 1))
	}
}

func (t *TokenSequence) tokenBytes(i int) int {
	if i < 0 || i >= len(t.start) {
		panic(common.Faultf("token index %d outside sequence of %d tokens", i, len(t.start)))
	}
	if i+1 >= len(t.start) {
		return len(t.chars) - t.start[i]
	}
	return t.start[i+1] - t.start[i]
}

func isBlank(ch byte) bool { return ch == ' ' || ch == '\t' }
