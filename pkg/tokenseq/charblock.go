package tokenseq

// CharBlock is a borrowed view of a run of characters inside a
// TokenSequence's buffer. It never owns its bytes and must not outlive the
// sequence it was taken from; edits to the sequence invalidate it.
type CharBlock struct {
	bytes []byte
}

// Len returns the number of characters in the block.
func (b CharBlock) Len() int { return len(b.bytes) }

// Bytes returns the borrowed bytes.
func (b CharBlock) Bytes() []byte { return b.bytes }

// String copies the block's characters into a new string.
func (b CharBlock) String() string { return string(b.bytes) }

// IsBlank reports whether the block contains only spaces and tabs.
func (b CharBlock) IsBlank() bool {
	for _, ch := range b.bytes {
		if ch != ' ' && ch != '\t' {
			return false
		}
	}
	return true
}
