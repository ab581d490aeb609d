// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sanitize implements the return stack sanitizer.
//
// The sanitizer redirects setjmp/longjmp-family call sites to safe
// counterparts which are aware of the return stack, and wraps functions that
// establish non-local jump targets with marker instrumentation: a unique
// marker is pushed onto the return stack on entry and popped before every
// return.  A runtime checker can then detect frames skipped by a non-local
// transfer.
package sanitize

import (
	"go.uber.org/zap"

	"github.com/retstack/retstack/ir"
	"github.com/retstack/retstack/marker"
)

// Config of a Sanitizer.  Zero values are replaced with effective defaults.
type Config struct {
	Rewrites []Rewrite         // Defaults to DefaultRewrites.
	Markers  *marker.Allocator // Defaults to a fresh allocator.
	Log      *zap.Logger       // Defaults to a no-op logger.
}

// Outcome of sanitizing one function.
type Outcome uint8

const (
	// SkippedDeclaration: the function has no body.
	SkippedDeclaration = Outcome(iota)

	// SkippedNoAttr: the function is not opted into return stack protection.
	SkippedNoAttr

	// SkippedNoEntry: the function is eligible but its entry instruction
	// cannot be located (the first block is empty or all-phi).  The function
	// is left unmodified.
	SkippedNoEntry

	// Unchanged: eligible, but no recognized call sites were found.
	Unchanged

	// Rewritten: longjmp-family call sites were redirected; no setjmp-family
	// sites exist, so no instrumentation was emitted.
	Rewritten

	// Instrumented: call sites were redirected and push/pop marker
	// instrumentation was emitted.
	Instrumented
)

// Changed reports whether the function was modified.
func (o Outcome) Changed() bool {
	return o == Rewritten || o == Instrumented
}

func (o Outcome) String() string {
	switch o {
	case SkippedDeclaration:
		return "skipped: declaration"

	case SkippedNoAttr:
		return "skipped: no attribute"

	case SkippedNoEntry:
		return "skipped: no entry instruction"

	case Unchanged:
		return "unchanged"

	case Rewritten:
		return "rewritten"

	case Instrumented:
		return "instrumented"

	default:
		return "<invalid outcome>"
	}
}

// Sanitizer transforms functions one at a time.  Marker state persists across
// calls, so functions transformed by one Sanitizer never share a marker.
type Sanitizer struct {
	table   map[string]Rewrite
	markers *marker.Allocator
	log     *zap.Logger
}

// New Sanitizer.  The config may be nil.
func New(config *Config) *Sanitizer {
	if config == nil {
		config = new(Config)
	}

	rewrites := config.Rewrites
	if rewrites == nil {
		rewrites = DefaultRewrites
	}

	table := make(map[string]Rewrite, len(rewrites))
	for _, r := range rewrites {
		table[r.Name] = r
	}

	markers := config.Markers
	if markers == nil {
		markers = marker.NewAllocator()
	}

	log := config.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &Sanitizer{table, markers, log}
}

type classification struct {
	entry    *ir.Instr
	returns  []*ir.Instr
	setjmps  []*ir.Instr
	longjmps []*ir.Instr
}

// classify every instruction of the body in one linear traversal.
// Control-flow edges don't matter; only instruction identity does.  Calls are
// looked up by direct callee name, so indirect calls are never classified.
func (s *Sanitizer) classify(f *ir.Function) (c classification) {
	c.entry = f.EntryInstr()

	for _, b := range f.Blocks {
		for _, x := range b.Instrs {
			switch x.Op {
			case ir.Return:
				c.returns = append(c.returns, x)

			case ir.Call:
				if x.Callee == "" {
					break
				}
				switch r, found := s.table[x.Callee]; {
				case !found:

				case r.Role == Setjmp:
					c.setjmps = append(c.setjmps, x)

				case r.Role == Longjmp:
					c.longjmps = append(c.longjmps, x)
				}
			}
		}
	}

	return
}

// rename redirects call sites to the safe counterparts listed in the rewrite
// table.  Arguments and arity are left untouched.
func (s *Sanitizer) rename(f *ir.Function, sites []*ir.Instr) {
	for _, x := range sites {
		if r, found := s.table[x.Callee]; found {
			s.log.Debug("redirecting call site",
				zap.String("func", f.Name),
				zap.String("callee", x.Callee),
				zap.String("safe", r.Safe))
			x.Callee = r.Safe
		}
	}
}

// insertBefore inserts an instruction immediately before another one.  The
// position instruction must exist in the function.
func insertBefore(f *ir.Function, pos, instr *ir.Instr) {
	for _, b := range f.Blocks {
		for i, x := range b.Instrs {
			if x == pos {
				b.Instrs = append(b.Instrs, nil)
				copy(b.Instrs[i+1:], b.Instrs[i:])
				b.Instrs[i] = instr
				return
			}
		}
	}
}

// Function sanitizes one function of the module in place.  The outcome is
// always valid; a non-nil error means the usable marker range ran out, in
// which case the function is left unmodified.
func (s *Sanitizer) Function(m *ir.Module, f *ir.Function) (Outcome, error) {
	if f.IsDeclaration() {
		return SkippedDeclaration, nil
	}

	if !f.Attrs.Has(ir.AttrReturnStack) {
		return SkippedNoAttr, nil
	}

	if f.EntryInstr() == nil {
		return SkippedNoEntry, nil
	}

	c := s.classify(f)

	if len(c.setjmps) == 0 && len(c.longjmps) == 0 {
		return Unchanged, nil
	}

	if len(c.setjmps) == 0 {
		s.rename(f, c.longjmps)
		return Rewritten, nil
	}

	// Allocate before mutating anything so that exhaustion leaves the
	// function untouched.
	mark, err := s.markers.Allocate()
	if err != nil {
		return Unchanged, err
	}

	s.rename(f, c.longjmps)
	s.rename(f, c.setjmps)

	push := &ir.Instr{
		Op:     ir.Call,
		Callee: ir.PushMarkerName(m.Ptr),
		Args:   []string{ir.MarkerImm(m.Ptr, mark)},
	}
	insertBefore(f, c.entry, push)

	for _, ret := range c.returns {
		pop := &ir.Instr{Op: ir.Call, Callee: ir.PopMarker}
		insertBefore(f, ret, pop)
	}

	s.log.Debug("instrumented function",
		zap.String("func", f.Name),
		zap.Uint64("marker", mark),
		zap.Int("returns", len(c.returns)))

	return Instrumented, nil
}

// Module sanitizes every function of the module in place.  Changed is true if
// any function was modified.  On error the failing function and the functions
// after it are left unmodified.
func (s *Sanitizer) Module(m *ir.Module) (changed bool, err error) {
	for _, f := range m.Funcs {
		var outcome Outcome

		outcome, err = s.Function(m, f)
		if err != nil {
			return
		}
		changed = changed || outcome.Changed()
	}

	return
}
