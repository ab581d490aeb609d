// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ir defines the intermediate representation transformed by the
// return stack sanitizer.
//
// The representation is deliberately small: a module fixes the target's
// pointer size and holds functions; a function holds basic blocks; a block
// holds instructions.  Instructions carry opaque operand tokens, except that
// direct calls name their callee.  That is exactly the amount of structure
// the sanitizer needs.
package ir

// Opcode identifies an instruction kind.
type Opcode uint8

const (
	Nop = Opcode(iota)
	Phi
	Op
	Call
	Br
	BrIf
	Return

	NumOpcodes
)

var opcodeStrings = [NumOpcodes]string{
	Nop:    "nop",
	Phi:    "phi",
	Op:     "op",
	Call:   "call",
	Br:     "br",
	BrIf:   "br_if",
	Return: "ret",
}

func (op Opcode) String() string {
	if op < NumOpcodes {
		return opcodeStrings[op]
	}
	return "<invalid opcode>"
}

// Trivial instructions don't count as a function's entry point.
func (op Opcode) Trivial() bool {
	return op == Phi
}

// ParseOpcode maps a mnemonic to its opcode.
func ParseOpcode(s string) (op Opcode, found bool) {
	for i, name := range opcodeStrings {
		if name == s {
			return Opcode(i), true
		}
	}
	return
}

// Instr is a single instruction.  Args are opaque operand tokens; the
// sanitizer never interprets them.  A Call instruction with a nonempty Callee
// calls the named function directly.  A Call with an empty Callee is indirect
// (the target is one of the operands), and is never classified by name.
type Instr struct {
	Op     Opcode
	Callee string
	Args   []string
}

// Block is a basic block.
type Block struct {
	Name   string
	Instrs []*Instr
}

// Function belongs to a module.  A function without blocks is a declaration.
type Function struct {
	Name   string
	Attrs  Attr
	Blocks []*Block
}

func (f *Function) IsDeclaration() bool {
	return len(f.Blocks) == 0
}

// EntryInstr is the first non-trivial instruction of the function's first
// block, or nil if the first block contains none.
func (f *Function) EntryInstr() *Instr {
	if f.IsDeclaration() {
		return nil
	}
	for _, x := range f.Blocks[0].Instrs {
		if !x.Op.Trivial() {
			return x
		}
	}
	return nil
}

// Module is a compilation unit.
type Module struct {
	Ptr   PtrSize
	Funcs []*Function
}

// Func looks up a function by name.
func (m *Module) Func(name string) *Function {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Clone makes a deep copy of the module.
func (m *Module) Clone() *Module {
	clone := &Module{Ptr: m.Ptr}

	for _, f := range m.Funcs {
		fc := &Function{Name: f.Name, Attrs: f.Attrs}

		for _, b := range f.Blocks {
			bc := &Block{Name: b.Name}

			for _, x := range b.Instrs {
				xc := &Instr{Op: x.Op, Callee: x.Callee}
				xc.Args = append(xc.Args, x.Args...)
				bc.Instrs = append(bc.Instrs, xc)
			}

			fc.Blocks = append(fc.Blocks, bc)
		}

		clone.Funcs = append(clone.Funcs, fc)
	}

	return clone
}
