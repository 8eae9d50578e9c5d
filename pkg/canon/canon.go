// Package canon rewrites legacy label-terminated DO loops into canonical
// block-structured DO constructs. After the pass runs, no LabelDoStmt
// remains anywhere in the tree; each one has been replaced by a DoConstruct
// whose body was spliced out of the enclosing block.
//
// The pass runs as a Post hook on every Block, so nested blocks are already
// canonical when their enclosing block is rewritten. Within one block a
// single linear scan suffices: a stack of pending label-DO positions tracks
// the open loops, and a statement carrying the label of the innermost
// pending loop closes it — repeatedly, for the legacy form in which several
// nested loops share one terminating label.
package canon

import (
	"github.com/fortlang/shape/pkg/common"
	"github.com/fortlang/shape/pkg/syntax"
)

// Pass is the label-DO canonicalization pass.
type Pass struct{}

// Name returns the pass name.
func (Pass) Name() string { return "canonicalize-do" }

// Run canonicalizes every block reachable from root.
func (Pass) Run(root *syntax.Block) error { return Canonicalize(root) }

// Canonicalize rewrites every label-DO under root into a block DO.
// A label-DO whose terminator is missing from its block is an
// internal-consistency fault: label resolution is validated upstream, so a
// leftover pending loop means an earlier phase broke its guarantee.
func Canonicalize(root *syntax.Block) error {
	c := &canonicalizer{}
	syntax.Walk(root, c)
	if c.fault != nil {
		return c.fault
	}
	return nil
}

type canonicalizer struct {
	fault *common.Fault
}

func (c *canonicalizer) Pre(syntax.Node) bool { return c.fault == nil }

func (c *canonicalizer) Post(n syntax.Node) {
	if b, ok := n.(*syntax.Block); ok && c.fault == nil {
		c.fault = canonicalizeBlock(b)
	}
}

// pendingDo records one open label-DO: its position in the block and the
// label that will terminate it. The most recently pushed entry is the
// innermost loop.
type pendingDo struct {
	index int
	label syntax.Label
}

func canonicalizeBlock(b *syntax.Block) *common.Fault {
	var pending []pendingDo
	for i := 0; i < len(b.Stmts); i++ {
		stmt := b.Stmts[i]
		if do, ok := stmt.Stmt.(*syntax.LabelDoStmt); ok {
			pending = append(pending, pendingDo{index: i, label: do.Terminal})
			continue
		}
		if _, ok := stmt.Stmt.(*syntax.EndDoStmt); ok {
			if !stmt.Label.Okay() {
				// Construct pairing attaches every END DO to its DoConstruct;
				// one left loose in a block must carry a label for an
				// ancestor label-DO to resolve.
				return common.Faultf("unlabeled END DO in block")
			}
			// A labeled END DO sits here because a label-DO in an ancestor
			// scope targets it. Keep the label alive for that ancestor on a
			// no-op statement.
			if len(pending) == 0 || pending[len(pending)-1].label != stmt.Label {
				return common.Faultf("labeled END DO %d does not terminate the innermost active label-DO", stmt.Label)
			}
			stmt.Stmt = &syntax.ContinueStmt{}
		}
		label := terminalLabel(stmt)
		if !label.Okay() {
			continue
		}
		// The statement is a terminator candidate: close every pending loop
		// that ends at this label, innermost first, nesting each newly
		// closed loop inside the next one out.
		for len(pending) > 0 && pending[len(pending)-1].label == label {
			top := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			i = closeLoop(b, top.index, i)
		}
	}
	if len(pending) > 0 {
		return common.Faultf("label-DO %d has no terminating statement in its block",
			pending[len(pending)-1].label)
	}
	return nil
}

// terminalLabel is the label stmt offers to a pending label-DO looking for
// its terminator: the statement's own label, or, when the statement is an
// already-canonical DO construct, the label on its END DO. The second form
// covers a nested block DO whose labeled END DO doubles as the legacy
// terminator of an enclosing label-DO.
func terminalLabel(stmt *syntax.Statement) syntax.Label {
	if do, ok := stmt.Stmt.(*syntax.DoConstruct); ok && do.End != nil && do.End.Label.Okay() {
		return do.End.Label
	}
	return stmt.Label
}

// closeLoop replaces the label-DO at doPos and the statements through
// termPos with one canonical DoConstruct. The run of statements strictly
// between the header and the position just after the terminator becomes the
// body; the construct keeps the header's name, loop control, statement
// label, and source range, and gains a synthetic unlabeled terminator.
// Returns the construct's position.
func closeLoop(b *syntax.Block, doPos, termPos int) int {
	header := b.Stmts[doPos]
	do := header.Stmt.(*syntax.LabelDoStmt)
	body := b.ExtractRange(doPos+1, termPos+1)
	b.Stmts[doPos] = &syntax.Statement{
		Label:  header.Label,
		Source: header.Source,
		Stmt: &syntax.DoConstruct{
			Header: &syntax.Statement{
				Source: header.Source,
				Stmt:   &syntax.NonlabelDoStmt{Name: do.Name, Control: do.Control},
			},
			Body: body,
			End:  &syntax.Statement{Stmt: &syntax.EndDoStmt{Name: do.Name}},
		},
	}
	return doPos
}
