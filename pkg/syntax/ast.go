// Package syntax defines the concrete parse tree the normalization passes
// operate on, and a generic depth-first walker over it. The tree is a
// tagged-variant structure: every statement and expression kind is its own
// node type behind the Stmt or Expr interface, and every block element is a
// *Statement carrying the variant along with its optional label and source
// range.
//
// The tree is built once by the parser and then owned and mutated by one
// pass at a time, strictly sequentially. It is acyclic except for label
// references, which are non-owning back-references, not structural edges.
package syntax

import "github.com/fortlang/shape/pkg/provenance"

// Node is implemented by every parse tree node kind.
type Node interface {
	node()
}

// Stmt is implemented by every statement variant.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression variant.
type Expr interface {
	Node
	exprNode()
}

// Label is a positive statement label. Zero means the statement is
// unlabeled. Uniqueness and validity are checked by the grammar phase.
type Label int

// Okay reports whether l is a real label.
func (l Label) Okay() bool { return l > 0 }

// Statement wraps a statement variant with its optional label and the
// provenance of its source text.
type Statement struct {
	Label  Label
	Source provenance.Range
	Stmt   Stmt
}

func (*Statement) node() {}

// AssignmentStmt is `lhs = rhs`.
type AssignmentStmt struct {
	LHS Expr
	RHS Expr
}

// ContinueStmt is the no-op CONTINUE statement. With a label on its wrapping
// Statement it serves as a loop terminator or branch target.
type ContinueStmt struct{}

// CallStmt is a subroutine call.
type CallStmt struct {
	Name string
	Args []Expr
}

// GotoStmt is an unconditional branch to a labeled statement. The target is
// a non-owning back-reference.
type GotoStmt struct {
	Target Label
}

// LabelDoStmt is the legacy loop header `DO label [control]` that runs up to
// a separately labeled terminating statement. Canonicalization removes every
// occurrence of this kind.
type LabelDoStmt struct {
	Name     string
	Terminal Label
	Control  *LoopControl
}

// NonlabelDoStmt is the canonical loop header, terminated by a matching
// EndDoStmt rather than a label.
type NonlabelDoStmt struct {
	Name    string
	Control *LoopControl
}

// EndDoStmt closes a canonical DO construct.
type EndDoStmt struct {
	Name string
}

// DoConstruct is the canonical block-structured loop: header, body, and
// explicit terminator.
type DoConstruct struct {
	Header *Statement // NonlabelDoStmt
	Body   *Block
	End    *Statement // EndDoStmt
}

// LogicalIfStmt is the single-statement conditional `IF (cond) statement`.
type LogicalIfStmt struct {
	Cond Expr
	Body *Statement
}

// IfConstruct is the block-structured conditional. Else may be nil.
type IfConstruct struct {
	Cond Expr
	Then *Block
	Else *Block
}

// LoopControl is the `var = lower, upper [, step]` loop control. Step may be
// nil. A nil LoopControl on a DO header means an unbounded loop.
type LoopControl struct {
	Var   *Ident
	Lower Expr
	Upper Expr
	Step  Expr
}

func (*LoopControl) node() {}

// Ident is a name reference.
type Ident struct {
	Name string
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

// BinaryExpr is `x op y`.
type BinaryExpr struct {
	Op string
	X  Expr
	Y  Expr
}

func (*AssignmentStmt) node() {}
func (*ContinueStmt) node()   {}
func (*CallStmt) node()       {}
func (*GotoStmt) node()       {}
func (*LabelDoStmt) node()    {}
func (*NonlabelDoStmt) node() {}
func (*EndDoStmt) node()      {}
func (*DoConstruct) node()    {}
func (*LogicalIfStmt) node()  {}
func (*IfConstruct) node()    {}
func (*Ident) node()          {}
func (*IntLit) node()         {}
func (*BinaryExpr) node()     {}

func (*AssignmentStmt) stmtNode() {}
func (*ContinueStmt) stmtNode()   {}
func (*CallStmt) stmtNode()       {}
func (*GotoStmt) stmtNode()       {}
func (*LabelDoStmt) stmtNode()    {}
func (*NonlabelDoStmt) stmtNode() {}
func (*EndDoStmt) stmtNode()      {}
func (*DoConstruct) stmtNode()    {}
func (*LogicalIfStmt) stmtNode()  {}
func (*IfConstruct) stmtNode()    {}

func (*Ident) exprNode()      {}
func (*IntLit) exprNode()     {}
func (*BinaryExpr) exprNode() {}
