// Package check runs structural checks over the canonical parse tree.
// A checker inspects already-canonical node structure from a Post hook and
// reports context-sensitive rule violations as positioned diagnostics;
// traversal always continues, no matter how many diagnostics are emitted.
package check

import (
	"github.com/fortlang/shape/pkg/common"
	"github.com/fortlang/shape/pkg/diag"
	"github.com/fortlang/shape/pkg/provenance"
	"github.com/fortlang/shape/pkg/syntax"
)

// Checker is one structural rule.
type Checker interface {
	// Name identifies the checker in configuration.
	Name() string
	// DefaultSeverity is used unless configuration overrides it.
	DefaultSeverity() diag.Severity
	// Visitor returns the traversal hooks, bound to a sink and the
	// effective severity.
	Visitor(sink *diag.Sink, severity diag.Severity) syntax.Visitor
}

// Registry returns the built-in checkers in their fixed execution order.
func Registry() []Checker {
	return []Checker{
		NestedLogicalIf{},
		EmptyDoBody{},
	}
}

// Run executes every checker cfg enables in a single traversal of root,
// appending diagnostics to sink in traversal order. Rule violations are
// never errors; the error return carries only an internal fault a checker
// panicked with, such as a provenance bounds violation.
func Run(root *syntax.Block, cfg *Config, sink *diag.Sink) error {
	var visitors []syntax.Visitor
	for _, c := range Registry() {
		s := cfg.setting(c.Name())
		if !s.Enabled {
			continue
		}
		visitors = append(visitors, c.Visitor(sink, s.Severity))
	}
	return runVisitors(root, visitors)
}

func runVisitors(root *syntax.Block, visitors []syntax.Visitor) (err error) {
	if len(visitors) == 0 {
		return nil
	}
	defer common.Recover(&err)
	syntax.Walk(root, multiVisitor(visitors))
	return nil
}

// multiVisitor fans traversal hooks out to several visitors. A subtree is
// skipped only when every visitor declines it.
type multiVisitor []syntax.Visitor

func (m multiVisitor) Pre(n syntax.Node) bool {
	descend := false
	for _, v := range m {
		if v.Pre(n) {
			descend = true
		}
	}
	return descend
}

func (m multiVisitor) Post(n syntax.Node) {
	for _, v := range m {
		v.Post(n)
	}
}

// NestedLogicalIf forbids a single-statement IF whose body statement is
// itself a single-statement IF.
type NestedLogicalIf struct{}

// Name returns "nested-logical-if".
func (NestedLogicalIf) Name() string { return "nested-logical-if" }

// DefaultSeverity returns error severity.
func (NestedLogicalIf) DefaultSeverity() diag.Severity { return diag.SeverityError }

// Visitor returns the checker's traversal hooks.
func (NestedLogicalIf) Visitor(sink *diag.Sink, severity diag.Severity) syntax.Visitor {
	return &nestedLogicalIf{sink: sink, severity: severity}
}

type nestedLogicalIf struct {
	syntax.DefaultVisitor
	sink     *diag.Sink
	severity diag.Severity
}

func (c *nestedLogicalIf) Post(n syntax.Node) {
	ifStmt, ok := n.(*syntax.LogicalIfStmt)
	if !ok || ifStmt.Body == nil {
		return
	}
	if _, ok := ifStmt.Body.Stmt.(*syntax.LogicalIfStmt); ok {
		c.sink.Say(c.severity, ifStmt.Body.Source,
			"IF statement may not be the body of another IF statement")
	}
}

// EmptyDoBody warns about a canonical DO construct with an empty body.
// It only ever sees canonical loops: canonicalization runs first, and a
// rewritten label-DO always keeps at least its terminator in the body.
type EmptyDoBody struct{}

// Name returns "empty-do-body".
func (EmptyDoBody) Name() string { return "empty-do-body" }

// DefaultSeverity returns warning severity.
func (EmptyDoBody) DefaultSeverity() diag.Severity { return diag.SeverityWarning }

// Visitor returns the checker's traversal hooks.
func (EmptyDoBody) Visitor(sink *diag.Sink, severity diag.Severity) syntax.Visitor {
	return &emptyDoBody{sink: sink, severity: severity}
}

type emptyDoBody struct {
	syntax.DefaultVisitor
	sink     *diag.Sink
	severity diag.Severity
}

func (c *emptyDoBody) Post(n syntax.Node) {
	do, ok := n.(*syntax.DoConstruct)
	if !ok {
		return
	}
	if do.Body == nil || do.Body.Len() == 0 {
		var where provenance.Range
		if do.Header != nil {
			where = do.Header.Source
		}
		c.sink.Say(c.severity, where, "DO construct has an empty body")
	}
}
