// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retstack

import (
	"bytes"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/retstack/retstack/errors"
	"github.com/retstack/retstack/ir"
	"github.com/retstack/retstack/sanitize"
	"github.com/retstack/retstack/text"
)

func TestSigsetjmp(t *testing.T) {
	test(t, "testdata/sigsetjmp.ir", "handler", sanitize.Instrumented)
}
func TestLongjmp(t *testing.T) { test(t, "testdata/longjmp.ir", "bail", sanitize.Rewritten) }
func TestNoAttr(t *testing.T)  { test(t, "testdata/noattr.ir", "plain", sanitize.SkippedNoAttr) }
func TestPtr32(t *testing.T)   { test(t, "testdata/ptr32.ir", "narrow", sanitize.Instrumented) }

func test(t *testing.T, filename, funcName string, want sanitize.Outcome) {
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}

	out, result, err := Transform(nil, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	if outcome := result.Outcomes[funcName]; outcome != want {
		t.Errorf("%s: outcome: got %s, want %s", funcName, outcome, want)
	}
	if result.Changed != want.Changed() {
		t.Errorf("changed: got %v, want %v", result.Changed, want.Changed())
	}

	// The output parses back, and a second run finds nothing left to do.
	again, result, err := Transform(nil, bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("second transformation changed the module")
	}
	if !bytes.Equal(out, again) {
		t.Error("second transformation output differs")
	}
}

func TestPairMarkers(t *testing.T) {
	data, err := os.ReadFile("testdata/pair.ir")
	if err != nil {
		t.Fatal(err)
	}

	out, result, err := Transform(nil, bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"first", "second"} {
		if outcome := result.Outcomes[name]; outcome != sanitize.Instrumented {
			t.Fatalf("%s: outcome: %s", name, outcome)
		}
	}

	m, err := text.ParseModule(out)
	if err != nil {
		t.Fatal(err)
	}

	markers := make([]uint64, 0, 2)
	for _, name := range []string{"first", "second"} {
		push := m.Func(name).Blocks[0].Instrs[0]
		if push.Callee != ir.PushMarkerName(ir.Ptr64) {
			t.Fatalf("%s: push not at entry: %+v", name, push)
		}

		v, err := strconv.ParseUint(push.Args[0], 0, 64)
		if err != nil {
			t.Fatal(err)
		}
		markers = append(markers, v)
	}

	// Descending by exactly one, in processing order.
	if markers[0] != markers[1]+1 {
		t.Errorf("markers: %#x, %#x", markers[0], markers[1])
	}
}

func TestTransformParseError(t *testing.T) {
	_, _, err := Transform(nil, strings.NewReader("(module (ptr potato))"))
	if err == nil {
		t.Fatal("no error")
	}
	if _, ok := errors.AsModuleError(err); !ok {
		t.Errorf("not a ModuleError: %v", err)
	}
}

func BenchmarkTransform(b *testing.B) {
	data, err := os.ReadFile("testdata/sigsetjmp.ir")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, _, err := Transform(nil, bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
