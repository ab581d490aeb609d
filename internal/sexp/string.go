// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sexp

import (
	"fmt"
)

// Stringify an expression.  Lists which contain nested lists are wrapped onto
// indented lines; flat lists stay on one line.
func Stringify(x interface{}) string {
	return stringify(x, "")
}

func stringify(x interface{}, indent string) (s string) {
	indent += "  "

	switch x := x.(type) {
	case []interface{}:
		s += "("

		wrap := false

		for i, item := range x {
			if _, ok := item.([]interface{}); ok {
				wrap = true
			}

			if wrap {
				s += "\n" + indent
			} else if i > 0 {
				s += " "
			}

			s += stringify(item, indent)
		}

		s += ")"

	default:
		s += fmt.Sprint(x)
	}

	return
}
