// Package common holds the pieces shared by every compilation phase: the
// internal-consistency fault type and the default kind parameters of the
// intrinsic types.
package common

import (
	"errors"
	"fmt"
)

// Fault reports an internal-consistency violation: some phase broke a
// guarantee that a later phase depends on. A Fault is never a user-facing
// diagnostic; it aborts the running pass so that no partially transformed
// result escapes downstream.
type Fault struct {
	msg string
}

// Faultf creates a Fault with a formatted message.
func Faultf(format string, args ...any) *Fault {
	return &Fault{msg: fmt.Sprintf(format, args...)}
}

func (f *Fault) Error() string {
	return "internal: " + f.msg
}

// AsFault reports whether err is, or wraps, a Fault.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Recover converts a panicked Fault into an error return at a pass boundary.
// Any other panic value keeps unwinding. Use in a deferred call:
//
//	func runPass(...) (err error) {
//		defer common.Recover(&err)
//		...
//	}
func Recover(errp *error) {
	switch f := recover().(type) {
	case nil:
	case *Fault:
		*errp = f
	default:
		panic(f)
	}
}
