// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors exports common error types without unnecessary dependencies.
package errors

import (
	"golang.org/x/xerrors"
)

// ModuleError indicates that the error is caused by an unsupported or
// malformed module.  It may wrap an underlying error.
type ModuleError interface {
	error
	PublicError() string
	ModuleError() bool
}

// ResourceLimit indicates that a finite resource of the transformation was
// exhausted.  It may wrap an underlying error.
type ResourceLimit interface {
	error
	PublicError() string
	ResourceLimit() bool
}

// AsModuleError returns the error as a ModuleError if it is one.
func AsModuleError(err error) (e ModuleError, ok bool) {
	ok = xerrors.As(err, &e)
	return
}

// AsResourceLimit returns the error as a ResourceLimit if it is one.
func AsResourceLimit(err error) (e ResourceLimit, ok bool) {
	ok = xerrors.As(err, &e)
	return
}
