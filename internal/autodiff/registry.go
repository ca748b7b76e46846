// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package autodiff

import (
	"fmt"
	"sync"

	"github.com/mihirkhandekar/supervision/internal/autodiff/ops"
)

// Registry maps gradient rule names to their implementations. Registration
// is idempotent and rules are never removed; a model built while an
// override was active stays valid for the life of the process.
type Registry struct {
	mu    sync.Mutex
	rules map[string]ops.GradientRule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]ops.GradientRule)}
}

// Register adds a rule under name. Registering a name that already exists
// is a no-op, so callers can register unconditionally.
func (r *Registry) Register(name string, rule ops.GradientRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[name]; ok {
		return
	}
	r.rules[name] = rule
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (ops.GradientRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[name]
	if !ok {
		return nil, fmt.Errorf("no gradient rule registered under %q", name)
	}
	return rule, nil
}

// defaultRegistry backs backends constructed without an explicit registry.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }
