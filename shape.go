// Package shape is the shape-normalization layer of a compiler front end
// for a language with legacy, non-block-structured syntax. It keeps an
// exact, queryable mapping from positions in a continuously edited character
// buffer back to the original source material (pkg/provenance, pkg/tokenseq)
// and rewrites the initial parse tree into canonical form — collapsing
// legacy label-terminated loops into block-structured ones — using a
// generic, mutation-safe tree walker that also runs the structural checks
// (pkg/syntax, pkg/canon, pkg/check).
//
// # Basic Usage
//
// Normalize a freshly parsed unit with the default passes and checks:
//
//	n := shape.New()
//	diags, err := n.Normalize(root)
//	if err != nil {
//	    // internal fault: the tree must not be handed downstream
//	    log.Fatal(err)
//	}
//	for _, d := range diags {
//	    fmt.Println(d)
//	}
//	failed := diags.HasErrors()
//
// # With Configuration
//
// Check configuration is loaded from YAML:
//
//	cfg, err := check.LoadFile("checks.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	n := shape.New(shape.WithChecks(cfg))
//
// Each compiled unit owns its provenance space, token sequences, and parse
// tree exclusively; one pass runs at a time. Independent units may be
// normalized in parallel by the surrounding driver with separate Normalizer
// state per unit.
package shape

import (
	"fmt"

	"github.com/fortlang/shape/pkg/canon"
	"github.com/fortlang/shape/pkg/check"
	"github.com/fortlang/shape/pkg/common"
	"github.com/fortlang/shape/pkg/diag"
	"github.com/fortlang/shape/pkg/syntax"
)

// Re-export commonly used types for convenience. Users can import just
// "github.com/fortlang/shape" without subpackages.
type (
	// Diagnostic is one positioned user-facing message.
	Diagnostic = diag.Diagnostic

	// Diagnostics is an ordered list of diagnostics.
	Diagnostics = diag.Diagnostics

	// Severity ranks a diagnostic.
	Severity = diag.Severity

	// Fault is an internal-consistency failure, distinct from diagnostics.
	Fault = common.Fault

	// Block is an ordered, splice-capable statement sequence.
	Block = syntax.Block

	// Statement wraps a statement variant with its label and source range.
	Statement = syntax.Statement
)

// Re-export severity constants.
const (
	SeverityWarning = diag.SeverityWarning
	SeverityError   = diag.SeverityError
)

// Pass is one canonicalization pass over a unit's parse tree. Passes own
// the tree exclusively for the duration of Run and execute strictly
// sequentially.
type Pass interface {
	Name() string
	Run(root *syntax.Block) error
}

// Normalizer runs canonicalization passes and structural checks over one
// compiled unit at a time.
type Normalizer struct {
	config *normalizerConfig
}

type normalizerConfig struct {
	passes []Pass
	checks *check.Config
	kinds  *common.DefaultKinds
}

// Option configures a Normalizer.
type Option func(*normalizerConfig)

// WithPasses replaces the default pass list (label-DO canonicalization).
// Passes run in the given order.
func WithPasses(passes ...Pass) Option {
	return func(c *normalizerConfig) {
		c.passes = passes
	}
}

// WithChecks replaces the default checker configuration.
func WithChecks(cfg *check.Config) Option {
	return func(c *normalizerConfig) {
		c.checks = cfg
	}
}

// WithDefaultKinds replaces the standard intrinsic-type default kinds.
func WithDefaultKinds(kinds *common.DefaultKinds) Option {
	return func(c *normalizerConfig) {
		c.kinds = kinds
	}
}

// New creates a Normalizer. By default it runs the label-DO canonicalization
// pass, then every built-in checker at its natural severity, with the
// standard default kinds.
func New(opts ...Option) *Normalizer {
	config := &normalizerConfig{
		passes: []Pass{canon.Pass{}},
		checks: check.DefaultConfig(),
		kinds:  common.NewDefaultKinds(),
	}
	for _, opt := range opts {
		opt(config)
	}
	return &Normalizer{config: config}
}

// DefaultKinds returns the intrinsic-type default kinds downstream phases
// should assume for this unit.
func (n *Normalizer) DefaultKinds() *common.DefaultKinds {
	return n.config.kinds
}

// Normalize runs the configured passes sequentially over root, then the
// enabled checkers, and returns the diagnostics in traversal order. The
// unit has failed when the diagnostics contain an error severity entry.
//
// A non-nil error is an internal fault: the tree may be half-rewritten and
// must not be handed to downstream phases.
func (n *Normalizer) Normalize(root *syntax.Block) (Diagnostics, error) {
	for _, p := range n.config.passes {
		if err := runPass(p, root); err != nil {
			return nil, fmt.Errorf("pass %s: %w", p.Name(), err)
		}
	}
	sink := &diag.Sink{}
	if err := check.Run(root, n.config.checks, sink); err != nil {
		return nil, err
	}
	return sink.All(), nil
}

// runPass isolates one pass, converting a panicked bounds-violation Fault
// into the pass's error return.
func runPass(p Pass, root *syntax.Block) (err error) {
	defer common.Recover(&err)
	return p.Run(root)
}
