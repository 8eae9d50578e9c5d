package syntax

import "github.com/fortlang/shape/pkg/common"

// Block is an ordered sequence of statements within one nesting level.
// Because elements are pointers, extracting or splicing a range never
// invalidates references held to statements outside that range.
type Block struct {
	Stmts []*Statement
}

func (*Block) node() {}

// Len returns the number of statements.
func (b *Block) Len() int { return len(b.Stmts) }

// Append adds statements at the end of the block.
func (b *Block) Append(stmts ...*Statement) {
	b.Stmts = append(b.Stmts, stmts...)
}

// ExtractRange moves statements [i, j) out of the block into a new Block,
// without copying the retained neighbors.
func (b *Block) ExtractRange(i, j int) *Block {
	b.checkRange(i, j)
	extracted := &Block{Stmts: append([]*Statement(nil), b.Stmts[i:j]...)}
	b.Stmts = append(b.Stmts[:i], b.Stmts[j:]...)
	return extracted
}

// ReplaceRange splices repl in place of statements [i, j).
func (b *Block) ReplaceRange(i, j int, repl ...*Statement) {
	b.checkRange(i, j)
	rest := append([]*Statement(nil), b.Stmts[j:]...)
	b.Stmts = append(append(b.Stmts[:i], repl...), rest...)
}

func (b *Block) checkRange(i, j int) {
	if i < 0 || j < i || j > len(b.Stmts) {
		panic(common.Faultf("statement range [%d,%d) outside block of %d statements", i, j, len(b.Stmts)))
	}
}
