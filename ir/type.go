// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"strconv"
)

// PtrSize is the target's pointer size in bytes.  It determines the width of
// return stack marker constants.
type PtrSize uint8

const (
	Ptr32 = PtrSize(4)
	Ptr64 = PtrSize(8)
)

func (p PtrSize) Valid() bool {
	return p == Ptr32 || p == Ptr64
}

// Bits of a pointer.
func (p PtrSize) Bits() int {
	return int(p) * 8
}

// Mask covering the pointer width.
func (p PtrSize) Mask() uint64 {
	return ^uint64(0) >> (64 - p.Bits())
}

func (p PtrSize) String() string {
	switch p {
	case Ptr32:
		return "32"

	case Ptr64:
		return "64"

	default:
		return "<invalid pointer size>"
	}
}

// Attr is a set of function attributes.
type Attr uint16

const (
	// AttrReturnStack opts the function into return stack protection.
	AttrReturnStack = Attr(1 << 0)
)

var attrStrings = map[Attr]string{
	AttrReturnStack: "return_stack",
}

func (a Attr) Has(flag Attr) bool {
	return a&flag != 0
}

func (a Attr) String() (s string) {
	for flag := Attr(1); flag != 0; flag <<= 1 {
		if a.Has(flag) {
			if s != "" {
				s += " "
			}
			if name, found := attrStrings[flag]; found {
				s += name
			} else {
				s += "0x" + strconv.FormatUint(uint64(flag), 16)
			}
		}
	}
	return
}

// ParseAttr maps an attribute name to its flag.
func ParseAttr(name string) (flag Attr, found bool) {
	for f, s := range attrStrings {
		if s == name {
			return f, true
		}
	}
	return
}
