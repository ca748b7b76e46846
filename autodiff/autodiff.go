// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package autodiff is the public API for reverse-mode automatic
// differentiation.
//
//	backend := autodiff.New(cpu.New())
//	loss := backend.CrossEntropy(logits, targets)
//	grads, err := backend.Tape().Backward(loss, backend)
package autodiff

import (
	"github.com/mihirkhandekar/supervision/internal/autodiff"
	"github.com/mihirkhandekar/supervision/internal/autodiff/ops"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// AutodiffBackend decorates a compute backend, recording every differentiable
// operation on a gradient tape.
type AutodiffBackend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// GradientTape holds the recorded operations of a forward pass.
type GradientTape = autodiff.GradientTape

// GradientConfig selects per-operation gradient rule overrides.
type GradientConfig = autodiff.GradientConfig

// Registry maps rule names to gradient rules. Registration is idempotent.
type Registry = autodiff.Registry

// GradientRule computes an input gradient from an output gradient.
type GradientRule = ops.GradientRule

// New wraps a backend with gradient recording using default rules.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return autodiff.New(backend)
}

// NewWithConfig wraps a backend with gradient rule overrides resolved from
// cfg.Registry (the default registry when nil).
func NewWithConfig[B tensor.Backend](backend B, cfg GradientConfig) (*AutodiffBackend[B], error) {
	return autodiff.NewWithConfig(backend, cfg)
}

var (
	NewRegistry     = autodiff.NewRegistry
	DefaultRegistry = autodiff.DefaultRegistry
	GuidedReLURule  = ops.GuidedReLURule
)
