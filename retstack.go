// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retstack

import (
	"io"

	"go.uber.org/zap"

	"github.com/retstack/retstack/ir"
	"github.com/retstack/retstack/marker"
	"github.com/retstack/retstack/sanitize"
	"github.com/retstack/retstack/text"
)

// Config for a single transformation run.  Zero values are replaced with
// effective defaults.
type Config struct {
	Rewrites []sanitize.Rewrite // Non-local jump policy.  Defaults to the libc family.
	Markers  *marker.Allocator  // Defaults to an allocator scoped to this run.
	Log      *zap.Logger        // Defaults to a no-op logger.
}

// Result of transforming one module.  Outcomes are keyed by function name.
type Result struct {
	Changed  bool
	Outcomes map[string]sanitize.Outcome
}

// TransformModule sanitizes the module in place.  The config may be nil.
func TransformModule(config *Config, m *ir.Module) (*Result, error) {
	if config == nil {
		config = new(Config)
	}

	s := sanitize.New(&sanitize.Config{
		Rewrites: config.Rewrites,
		Markers:  config.Markers,
		Log:      config.Log,
	})

	result := &Result{
		Outcomes: make(map[string]sanitize.Outcome, len(m.Funcs)),
	}

	for _, f := range m.Funcs {
		outcome, err := s.Function(m, f)
		if err != nil {
			return result, err
		}

		result.Outcomes[f.Name] = outcome
		result.Changed = result.Changed || outcome.Changed()
	}

	return result, nil
}

// Transform reads a module in textual form, sanitizes it, and writes it back
// out in textual form.  The config may be nil.
func Transform(config *Config, r io.Reader) ([]byte, *Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	m, err := text.ParseModule(data)
	if err != nil {
		return nil, nil, err
	}

	result, err := TransformModule(config, m)
	if err != nil {
		return nil, result, err
	}

	return text.PrintModule(m), result, nil
}
