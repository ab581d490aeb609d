// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package marker allocates return stack markers.
//
// Markers are drawn from a descending 64-bit counter.  The all-ones value is
// reserved for the runtime's no-active-frame sentinel and zero is reserved so
// that a cleared shadow stack slot never matches a live marker; the usable
// range lies strictly between them.  An allocator covers one compilation run
// and must not be shared between concurrently transformed units without
// external synchronization.
package marker

import (
	"github.com/retstack/retstack/internal/errors"
)

// Reserved is never allocated.  The runtime uses it to mean that no frame is
// active.
const Reserved = ^uint64(0)

// ErrExhausted is returned when the usable marker range has run out.  It is
// an errors.ResourceLimit.
var ErrExhausted = errors.ResourceLimit("return stack marker space exhausted")

// Allocator hands out markers in strictly decreasing order.  Values are never
// reused or reset within a run.
type Allocator struct {
	next uint64
}

// NewAllocator seeds the counter one below the reserved sentinel.
func NewAllocator() *Allocator {
	return NewAllocatorAt(Reserved - 1)
}

// NewAllocatorAt seeds the counter at an arbitrary start value.  Useful for
// tests and for partitioning the marker range between compilation units.
func NewAllocatorAt(next uint64) *Allocator {
	return &Allocator{next}
}

// Allocate returns the current counter value and decrements the counter.
func (a *Allocator) Allocate() (marker uint64, err error) {
	if a.next == 0 {
		err = ErrExhausted
		return
	}

	marker = a.next
	a.next--
	return
}

// Next is the value the following Allocate call would return.
func (a *Allocator) Next() uint64 {
	return a.next
}
