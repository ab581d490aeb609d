// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sanitize

// Role of a non-local jump primitive.
type Role uint8

const (
	// Setjmp primitives establish a non-local jump target.  Their presence
	// makes the function's frames reachable by a non-local transfer, so the
	// function gets push/pop marker instrumentation.
	Setjmp = Role(iota + 1)

	// Longjmp primitives perform the transfer.  Their call sites are only
	// redirected; they don't cause instrumentation by themselves.
	Longjmp
)

func (r Role) String() string {
	switch r {
	case Setjmp:
		return "setjmp"

	case Longjmp:
		return "longjmp"

	default:
		return "<invalid role>"
	}
}

// Rewrite maps a non-local jump primitive to its shadow-stack-aware
// replacement.  The replacement must be an interface-compatible function
// supplied by the runtime support library; the sanitizer changes the call
// site's callee binding and nothing else.
type Rewrite struct {
	Name string
	Safe string
	Role Role
}

// DefaultRewrites covers the libc setjmp/longjmp family.  The safe names
// never appear as source names, so applying the rewrites a second time has no
// effect.
var DefaultRewrites = []Rewrite{
	{"_setjmp", "_safe_setjmp", Setjmp},
	{"__sigsetjmp", "__safe_sigsetjmp", Setjmp},
	{"longjmp", "safe_longjmp", Longjmp},
	{"siglongjmp", "safe_siglongjmp", Longjmp},
}
