// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"
	"strconv"
)

// Return stack primitives.  The sanitizer emits calls to them; their
// implementations are supplied by the runtime support library.
const (
	PushMarkerBase = "push_return_stack_marker"
	PopMarker      = "pop_return_stack_marker"
)

// PushMarkerName is the width-parameterized name of the push primitive.  The
// marker argument has the target's pointer width.
func PushMarkerName(p PtrSize) string {
	return PushMarkerBase + ".i" + strconv.Itoa(p.Bits())
}

// MarkerImm formats a marker constant as an immediate operand, truncated to
// the pointer width.
func MarkerImm(p PtrSize, marker uint64) string {
	return fmt.Sprintf("%#x", marker&p.Mask())
}
