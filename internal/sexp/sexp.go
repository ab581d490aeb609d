// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sexp reads and writes the S-expression syntax underlying the
// textual module form.  Expressions are lists of tokens and nested lists;
// semicolons start line comments.  Parse errors and premature end of input
// panic; callers recover at the API boundary.
package sexp

import (
	"io"
	"strings"
	"unicode"

	"github.com/retstack/retstack/internal/errors"
)

type panicReader struct {
	sr *strings.Reader
}

func (pr panicReader) readRune() (c rune) {
	c, _, err := pr.sr.ReadRune()
	if err != nil {
		panic(err)
	}
	return
}

func (pr panicReader) unreadRune() {
	if err := pr.sr.UnreadRune(); err != nil {
		panic(err)
	}
}

// Parse the first expression found in data.  Rest is the unconsumed input.
func Parse(data []byte) (exp interface{}, rest []byte, err error) {
	defer func() {
		if x := recover(); x != nil {
			if err, _ = x.(error); err == nil {
				panic(x)
			}
		}
	}()

	exp, rest = ParsePanic(data)
	return
}

// ParsePanic is like Parse, but panics with an error value on failure.
// Returns a nil list if data holds nothing but space and comments.
func ParsePanic(data []byte) (list []interface{}, rest []byte) {
	sr := strings.NewReader(string(data))
	pr := panicReader{sr}

	inComment := false

	for {
		c, _, err := sr.ReadRune()
		if err != nil {
			if err == io.EOF {
				return
			}
			panic(err)
		}

		if inComment {
			if c == '\n' {
				inComment = false
			}
		} else {
			if c == ';' {
				inComment = true
			} else if !unicode.IsSpace(c) {
				pr.unreadRune()
				break
			}
		}
	}

	for {
		exp, ok, end := parse(pr)
		if end {
			panic(errors.ModuleError("unbalanced close parenthesis"))
		}
		if ok {
			l, isList := exp.([]interface{})
			if !isList {
				panic(errors.ModuleErrorf("expected expression, got token: %q", exp))
			}
			list = l

			var err error
			rest, err = io.ReadAll(sr)
			if err != nil {
				panic(err)
			}

			return
		}
	}
}

func parse(pr panicReader) (x interface{}, ok, end bool) {
	for {
		if !unicode.IsSpace(pr.readRune()) {
			pr.unreadRune()
			break
		}
	}

	switch pr.readRune() {
	case ';':
		skipComment(pr)

	case '(':
		x = parseList(pr)
		ok = true

	case ')':
		end = true

	default:
		pr.unreadRune()
		x = parseToken(pr)
		ok = true
	}

	return
}

func parseList(pr panicReader) interface{} {
	var list []interface{}

	for {
		item, ok, end := parse(pr)
		if ok {
			list = append(list, item)
		}
		if end {
			break
		}
	}

	return list
}

func parseToken(pr panicReader) string {
	var buf []rune

	for {
		c := pr.readRune()

		if c == '(' || c == '"' {
			panic(errors.ModuleErrorf("invalid character inside token: %q", c))
		}

		if c == ')' {
			pr.unreadRune()
			break
		}

		if unicode.IsSpace(c) {
			break
		}

		buf = append(buf, c)
	}

	return string(buf)
}

func skipComment(pr panicReader) {
	for pr.readRune() != '\n' {
	}

	pr.unreadRune()
}
