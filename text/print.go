// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import (
	"github.com/retstack/retstack/internal/sexp"
	"github.com/retstack/retstack/ir"
)

// PrintModule writes the module in its textual form.  The output parses back
// to an equivalent module.
func PrintModule(m *ir.Module) []byte {
	list := []interface{}{"module", []interface{}{"ptr", m.Ptr.String()}}

	for _, f := range m.Funcs {
		list = append(list, funcExp(f))
	}

	return []byte(sexp.Stringify(list) + "\n")
}

func funcExp(f *ir.Function) []interface{} {
	list := []interface{}{"func", "$" + f.Name}

	for flag := ir.Attr(1); flag != 0; flag <<= 1 {
		if f.Attrs.Has(flag) {
			list = append(list, flag.String())
		}
	}

	for _, b := range f.Blocks {
		list = append(list, blockExp(b))
	}

	return list
}

func blockExp(b *ir.Block) []interface{} {
	list := []interface{}{"block", "$" + b.Name}

	for _, x := range b.Instrs {
		list = append(list, instrExp(x))
	}

	return list
}

func instrExp(x *ir.Instr) []interface{} {
	list := []interface{}{x.Op.String()}

	if x.Callee != "" {
		list = append(list, x.Callee)
	}

	for _, arg := range x.Args {
		list = append(list, arg)
	}

	return list
}
