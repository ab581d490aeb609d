// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package retstack provides a high-level return stack sanitizer API.

See the Transform function's source code for an example of how to use the
lower-level APIs (implemented in subpackages).

# Errors

ModuleError and ResourceLimit error types are accessible via the errors
subpackage.  ModuleErrors may be returned by parsing functions; a
ResourceLimit is returned when the marker allocator runs out.  Other types of
errors indicate either a read error or an internal error.  (Unexpected end of
module text is a ModuleError which wraps io.ErrUnexpectedEOF.)
*/
package retstack
