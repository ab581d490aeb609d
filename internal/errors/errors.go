// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
)

type moduleError struct {
	text  string
	cause error
}

func ModuleError(text string) error {
	return &moduleError{text, nil}
}

func ModuleErrorf(format string, args ...interface{}) error {
	return &moduleError{fmt.Sprintf(format, args...), nil}
}

func WrapModuleError(cause error, text string) error {
	return &moduleError{text, cause}
}

func (e *moduleError) Error() string       { return e.text }
func (e *moduleError) PublicError() string { return e.text }
func (e *moduleError) ModuleError() bool   { return true }
func (e *moduleError) Unwrap() error       { return e.cause }

type resourceLimit struct {
	text  string
	cause error
}

func ResourceLimit(text string) error {
	return &resourceLimit{text, nil}
}

func ResourceLimitf(format string, args ...interface{}) error {
	return &resourceLimit{fmt.Sprintf(format, args...), nil}
}

func (e *resourceLimit) Error() string       { return e.text }
func (e *resourceLimit) PublicError() string { return e.text }
func (e *resourceLimit) ResourceLimit() bool { return true }
func (e *resourceLimit) Unwrap() error       { return e.cause }
