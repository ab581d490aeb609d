// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errorpanic

import (
	"io"
	"runtime"

	"github.com/retstack/retstack/internal/errors"
	"golang.org/x/xerrors"
)

var errUnexpectedEOF = errors.WrapModuleError(io.ErrUnexpectedEOF, "unexpected end of module text")

// Handle a recovered panic value at an API boundary.  Runtime errors and
// non-error panics keep propagating; end-of-input conditions are converted to
// a module error.
func Handle(x interface{}) (err error) {
	if x != nil {
		err, _ = x.(error)
		if err == nil {
			panic(x)
		}

		if _, ok := err.(runtime.Error); ok {
			panic(x)
		}

		switch {
		case xerrors.Is(err, io.EOF), xerrors.Is(err, io.ErrUnexpectedEOF):
			err = errUnexpectedEOF
		}
	}

	return
}
