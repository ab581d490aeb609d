// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	werrors "github.com/retstack/retstack/errors"
	"github.com/retstack/retstack/ir"
)

func TestRoundTripFixtures(t *testing.T) {
	for _, filename := range []string{
		"../testdata/sigsetjmp.ir",
		"../testdata/longjmp.ir",
		"../testdata/noattr.ir",
		"../testdata/pair.ir",
		"../testdata/ptr32.ir",
	} {
		data, err := os.ReadFile(filename)
		if err != nil {
			t.Fatal(err)
		}

		m, err := ParseModule(data)
		if err != nil {
			t.Fatalf("%s: %v", filename, err)
		}

		again, err := ParseModule(PrintModule(m))
		if err != nil {
			t.Fatalf("%s: reparse: %v", filename, err)
		}

		if diff := cmp.Diff(m, again); diff != "" {
			t.Errorf("%s: round trip mismatch (-parsed +reparsed):\n%s", filename, diff)
		}
	}
}

func TestParseFields(t *testing.T) {
	m, err := ParseModule([]byte(`
		(module
		  (ptr 32)
		  (func $f return_stack
		    (block $entry
		      (phi $x $a $b)
		      (call exit 1)
		      (call $fp $arg)
		      (ret)))
		  (func $decl))
	`))
	if err != nil {
		t.Fatal(err)
	}

	if m.Ptr != ir.Ptr32 {
		t.Errorf("pointer size: got %s", m.Ptr)
	}

	f := m.Func("f")
	if f == nil {
		t.Fatal("function f not found")
	}
	if !f.Attrs.Has(ir.AttrReturnStack) {
		t.Error("attribute not parsed")
	}

	instrs := f.Blocks[0].Instrs

	if x := instrs[1]; x.Callee != "exit" || len(x.Args) != 1 {
		t.Errorf("direct call: got %+v", x)
	}

	// A $-prefixed target is a value, so the call is indirect.
	if x := instrs[2]; x.Callee != "" || len(x.Args) != 2 {
		t.Errorf("indirect call: got %+v", x)
	}

	if decl := m.Func("decl"); decl == nil || !decl.IsDeclaration() {
		t.Error("declaration not parsed")
	}
}

func TestParseDefaultPtr(t *testing.T) {
	m, err := ParseModule([]byte(`(module (func $f))`))
	if err != nil {
		t.Fatal(err)
	}
	if m.Ptr != ir.Ptr64 {
		t.Errorf("default pointer size: got %s", m.Ptr)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"module",
		"(modul)",
		"(module (ptr 16))",
		"(module (ptr))",
		"(module (func))",
		"(module (func $f unknown_attr))",
		"(module (func $f (block $b (bogus))))",
		"(module (func $f (block $b (call))))",
		"(module (func $f (block)))",
		"(module (func nodollar))",
		"(module) trailing",
		"(module",
		"(module))",
	} {
		_, err := ParseModule([]byte(input))
		if err == nil {
			t.Errorf("%q: no error", input)
			continue
		}
		if _, ok := werrors.AsModuleError(err); !ok {
			t.Errorf("%q: not a ModuleError: %v", input, err)
		}
	}
}

func TestParseComments(t *testing.T) {
	m, err := ParseModule([]byte(`
		; leading comment
		(module
		  (func $f)) ; trailing comment
	`))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Funcs) != 1 {
		t.Errorf("got %d functions", len(m.Funcs))
	}
}
