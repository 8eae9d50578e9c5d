package syntax

// Visitor receives every node during a Walk. Pre runs before a node's
// children are visited; returning false claims the whole subtree, skipping
// both the children and the node's Post. Post runs only after every child's
// full traversal (Pre, children, Post) has completed.
//
// Walk holds no iterators across a Post call, so a Post hook on a Block may
// insert, remove, or splice that block's own statements; only the hook's own
// iteration has to survive the edit it performs. Because traversal completes
// bottom-up, every descendant Block is already in canonical form when an
// ancestor Block's Post runs.
type Visitor interface {
	Pre(n Node) bool
	Post(n Node)
}

// DefaultVisitor descends everywhere and does nothing. Embed it to override
// only the hooks a pass cares about.
type DefaultVisitor struct{}

// Pre returns true.
func (DefaultVisitor) Pre(Node) bool { return true }

// Post does nothing.
func (DefaultVisitor) Post(Node) {}

// Walk traverses the tree rooted at n depth-first, visiting the children of
// each node in declaration order (left to right, matching source order).
func Walk(n Node, v Visitor) {
	if n == nil || !v.Pre(n) {
		return
	}
	switch x := n.(type) {
	case *Block:
		for i := 0; i < len(x.Stmts); i++ {
			Walk(x.Stmts[i], v)
		}
	case *Statement:
		if x.Stmt != nil {
			Walk(x.Stmt, v)
		}
	case *AssignmentStmt:
		walkExpr(x.LHS, v)
		walkExpr(x.RHS, v)
	case *CallStmt:
		for _, arg := range x.Args {
			walkExpr(arg, v)
		}
	case *LabelDoStmt:
		if x.Control != nil {
			Walk(x.Control, v)
		}
	case *NonlabelDoStmt:
		if x.Control != nil {
			Walk(x.Control, v)
		}
	case *DoConstruct:
		if x.Header != nil {
			Walk(x.Header, v)
		}
		if x.Body != nil {
			Walk(x.Body, v)
		}
		if x.End != nil {
			Walk(x.End, v)
		}
	case *LogicalIfStmt:
		walkExpr(x.Cond, v)
		if x.Body != nil {
			Walk(x.Body, v)
		}
	case *IfConstruct:
		walkExpr(x.Cond, v)
		if x.Then != nil {
			Walk(x.Then, v)
		}
		if x.Else != nil {
			Walk(x.Else, v)
		}
	case *LoopControl:
		if x.Var != nil {
			Walk(x.Var, v)
		}
		walkExpr(x.Lower, v)
		walkExpr(x.Upper, v)
		walkExpr(x.Step, v)
	case *BinaryExpr:
		walkExpr(x.X, v)
		walkExpr(x.Y, v)
	case *ContinueStmt, *GotoStmt, *EndDoStmt, *Ident, *IntLit:
		// leaves
	}
	v.Post(n)
}

func walkExpr(e Expr, v Visitor) {
	if e != nil {
		Walk(e, v)
	}
}
