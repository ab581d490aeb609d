// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package text reads and writes the textual module form.
//
// A module is one S-expression:
//
//	(module
//	  (ptr 64)
//	  (func $f return_stack
//	    (block $entry
//	      (call __sigsetjmp $env)
//	      (ret))))
//
// Function and block names carry a $ prefix in the text and are stored
// without it.  A func form without block forms declares an external function.
// Attribute names appear as bare tokens between the function name and its
// blocks.  Call operands starting with $ are value names; a call whose first
// operand does not start with $ calls that name directly, otherwise the call
// is indirect.
package text

import (
	"strings"

	"github.com/retstack/retstack/internal/errors"
	"github.com/retstack/retstack/internal/errorpanic"
	"github.com/retstack/retstack/internal/sexp"
	"github.com/retstack/retstack/ir"
)

// ParseModule parses the first module expression in data.  Anything but
// space and comments may not follow it.  Syntax errors are ModuleErrors.
func ParseModule(data []byte) (m *ir.Module, err error) {
	defer func() {
		if x := recover(); x != nil {
			err = errorpanic.Handle(x)
		}
	}()

	list, rest := sexp.ParsePanic(data)
	if list == nil {
		panic(errors.ModuleError("no module expression found"))
	}
	checkBlank(rest)

	m = parseModule(list)
	return
}

func checkBlank(data []byte) {
	for _, line := range strings.Split(string(data), "\n") {
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) != "" {
			panic(errors.ModuleError("trailing data after module expression"))
		}
	}
}

func head(list []interface{}) string {
	if len(list) == 0 {
		return ""
	}
	s, _ := list[0].(string)
	return s
}

func form(x interface{}, name string) ([]interface{}, bool) {
	list, ok := x.([]interface{})
	if !ok || head(list) != name {
		return nil, false
	}
	return list[1:], true
}

func token(x interface{}) string {
	s, ok := x.(string)
	if !ok {
		panic(errors.ModuleError("expected token, got list"))
	}
	return s
}

func name(x interface{}) string {
	s := token(x)
	if !strings.HasPrefix(s, "$") || len(s) == 1 {
		panic(errors.ModuleErrorf("expected $-prefixed name, got %q", s))
	}
	return s[1:]
}

func parseModule(list []interface{}) *ir.Module {
	if head(list) != "module" {
		panic(errors.ModuleErrorf("expected module expression, got %q", head(list)))
	}

	m := &ir.Module{Ptr: ir.Ptr64}

	for _, x := range list[1:] {
		if fields, ok := form(x, "ptr"); ok {
			m.Ptr = parsePtr(fields)
			continue
		}

		if fields, ok := form(x, "func"); ok {
			m.Funcs = append(m.Funcs, parseFunc(fields))
			continue
		}

		if s, ok := x.(string); ok {
			panic(errors.ModuleErrorf("unexpected token in module: %q", s))
		}
		panic(errors.ModuleErrorf("unknown module field: %q", head(x.([]interface{}))))
	}

	return m
}

func parsePtr(fields []interface{}) ir.PtrSize {
	if len(fields) != 1 {
		panic(errors.ModuleError("ptr form needs exactly one operand"))
	}

	switch token(fields[0]) {
	case "32":
		return ir.Ptr32

	case "64":
		return ir.Ptr64

	default:
		panic(errors.ModuleErrorf("unsupported pointer size: %q", fields[0]))
	}
}

func parseFunc(fields []interface{}) *ir.Function {
	if len(fields) == 0 {
		panic(errors.ModuleError("func form needs a name"))
	}

	f := &ir.Function{Name: name(fields[0])}

	for _, x := range fields[1:] {
		if s, ok := x.(string); ok {
			flag, found := ir.ParseAttr(s)
			if !found {
				panic(errors.ModuleErrorf("unknown function attribute: %q", s))
			}
			f.Attrs |= flag
			continue
		}

		blockFields, ok := form(x, "block")
		if !ok {
			panic(errors.ModuleErrorf("unknown function field: %q", head(x.([]interface{}))))
		}
		f.Blocks = append(f.Blocks, parseBlock(blockFields))
	}

	return f
}

func parseBlock(fields []interface{}) *ir.Block {
	if len(fields) == 0 {
		panic(errors.ModuleError("block form needs a name"))
	}

	b := &ir.Block{Name: name(fields[0])}

	for _, x := range fields[1:] {
		list, ok := x.([]interface{})
		if !ok {
			panic(errors.ModuleErrorf("expected instruction, got token: %q", x))
		}
		b.Instrs = append(b.Instrs, parseInstr(list))
	}

	return b
}

func parseInstr(list []interface{}) *ir.Instr {
	op, found := ir.ParseOpcode(head(list))
	if !found {
		panic(errors.ModuleErrorf("unknown instruction: %q", head(list)))
	}

	x := &ir.Instr{Op: op}

	operands := list[1:]

	if op == ir.Call {
		if len(operands) == 0 {
			panic(errors.ModuleError("call instruction needs a target"))
		}
		if s := token(operands[0]); !strings.HasPrefix(s, "$") {
			x.Callee = s
			operands = operands[1:]
		}
	}

	for _, operand := range operands {
		x.Args = append(x.Args, token(operand))
	}

	return x
}
