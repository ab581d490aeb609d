// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fuzzutil

import (
	"io"

	werrors "github.com/retstack/retstack/errors"
	errors "golang.org/x/xerrors"
)

// Result maps a transformation error to a fuzzer verdict.  Malformed-input
// errors are expected and uninteresting; anything else is a finding.
func Result(err error) (result int, ok bool) {
	var emod werrors.ModuleError
	var eres werrors.ResourceLimit

	switch {
	case err == nil:
		result = 1
		ok = true

	case err == io.EOF, errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &emod), errors.As(err, &eres):
		result = 0
		ok = true
	}

	return
}
