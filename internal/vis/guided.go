// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package vis

import (
	"fmt"

	"github.com/mihirkhandekar/supervision/internal/autodiff"
	"github.com/mihirkhandekar/supervision/internal/autodiff/ops"
	"github.com/mihirkhandekar/supervision/internal/model"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// GuidedBackPropName is the registered name of the guided ReLU gradient
// rule.
const GuidedBackPropName = "GuidedBackProp"

// NewGuidedBackend registers the guided rule (idempotently) and returns an
// autodiff backend whose ReLU gradient is overridden with it. The override
// binds to operations as they are recorded, so a model must be built, or
// rebuilt, on the returned backend for its rectifiers to backpropagate
// guided gradients.
func NewGuidedBackend[B tensor.Backend](inner B) (*autodiff.AutodiffBackend[B], error) {
	autodiff.DefaultRegistry().Register(GuidedBackPropName, ops.GuidedReLURule)
	return autodiff.NewWithConfig(inner, autodiff.GradientConfig{
		Registry:  autodiff.DefaultRegistry(),
		Overrides: map[string]string{"Relu": GuidedBackPropName},
	})
}

// GuidedBackprop reconstructs a model from its persisted artifact under a
// guided backend and returns the guided saliency of input with respect to
// targetLayer. build assembles an untrained copy of the architecture on the
// given backend; the artifact supplies the weights.
func GuidedBackprop[B tensor.Backend](
	inner B,
	artifactPath string,
	targetLayer string,
	build func(*autodiff.AutodiffBackend[B]) *model.Model[*autodiff.AutodiffBackend[B]],
	input *tensor.RawTensor,
) (*tensor.RawTensor, error) {
	guided, err := NewGuidedBackend(inner)
	if err != nil {
		return nil, err
	}
	m := build(guided)
	if err := m.Load(artifactPath); err != nil {
		return nil, fmt.Errorf("vis: reload model for guided backprop: %w", err)
	}
	fn, err := SaliencyFunc(m, targetLayer)
	if err != nil {
		return nil, err
	}
	return fn(input, false)
}
