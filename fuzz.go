// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build gofuzz
// +build gofuzz

package retstack

import (
	"bytes"

	"github.com/retstack/retstack/internal/test/fuzzutil"
)

func Fuzz(data []byte) int {
	_, _, err := Transform(nil, bytes.NewReader(data))
	result, ok := fuzzutil.Result(err)
	if !ok {
		panic(err)
	}
	return result
}
