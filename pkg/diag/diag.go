// Package diag collects the user-facing diagnostics produced while checking
// a compiled unit. Diagnostics are always recoverable: they are recorded in
// traversal order and never stop a pass. Internal-consistency faults are a
// different thing entirely and live in pkg/common.
package diag

import (
	"fmt"

	"github.com/fortlang/shape/pkg/provenance"
)

// Severity ranks a diagnostic. A unit fails only when at least one
// error-severity diagnostic was recorded.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// ParseSeverity converts a configuration string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	}
	return 0, fmt.Errorf("unknown severity %q (want \"warning\" or \"error\")", s)
}

// Diagnostic is one positioned message about the source being compiled.
type Diagnostic struct {
	Severity Severity
	Where    provenance.Range
	Message  string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Where, d.Severity, d.Message)
}

// Diagnostics is an ordered list of diagnostics.
type Diagnostics []Diagnostic

func (d Diagnostics) Error() string {
	switch len(d) {
	case 0:
		return "no diagnostics"
	case 1:
		return d[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", d[0].Error(), len(d)-1)
}

// HasErrors reports whether any diagnostic has error severity.
func (d Diagnostics) HasErrors() bool {
	for _, x := range d {
		if x.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Sink receives diagnostics in the order checks emit them.
type Sink struct {
	diags Diagnostics
}

// Say records one diagnostic.
func (s *Sink) Say(sev Severity, where provenance.Range, format string, args ...any) {
	s.diags = append(s.diags, Diagnostic{
		Severity: sev,
		Where:    where,
		Message:  fmt.Sprintf(format, args...),
	})
}

// All returns every diagnostic recorded so far, in emission order.
func (s *Sink) All() Diagnostics { return s.diags }

// HasErrors reports whether any recorded diagnostic has error severity.
func (s *Sink) HasErrors() bool { return s.diags.HasErrors() }
