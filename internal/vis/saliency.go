// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package vis produces visual explanations of model predictions: input
// saliency via taped gradients, guided backpropagation, Grad-CAM heatmaps
// and the compositing transforms that turn them into images.
package vis

import (
	"fmt"

	"github.com/mihirkhandekar/supervision/internal/autodiff"
	"github.com/mihirkhandekar/supervision/internal/model"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Backend is a backend that records operations on a gradient tape. An
// autodiff.AutodiffBackend over any device backend satisfies it.
type Backend interface {
	tensor.Backend
	Tape() *autodiff.GradientTape
}

// SaliencyFn computes the gradient of the target layer's strongest channel
// response with respect to the input.
type SaliencyFn func(input *tensor.RawTensor, training bool) (*tensor.RawTensor, error)

// SaliencyFunc resolves targetLayer against m and returns a closure that
// runs a recorded forward pass, takes the channel-wise maximum of the target
// layer's output, sums it to a scalar and backpropagates to the input. The
// result has the input's shape and is unnormalized.
func SaliencyFunc[B Backend](m *model.Model[B], targetLayer string) (SaliencyFn, error) {
	if !m.HasLayer(targetLayer) {
		return nil, fmt.Errorf("%w: %q", model.ErrLayerNotFound, targetLayer)
	}
	return func(input *tensor.RawTensor, training bool) (*tensor.RawTensor, error) {
		backend := m.Backend()
		backend.Tape().Reset()
		m.SetTraining(training)

		m.Forward(input)
		target, err := m.LayerOutput(targetLayer)
		if err != nil {
			return nil, err
		}

		maxed, _ := backend.MaxDim(target, 1, false)
		scalar := backend.Sum(maxed)

		grads, err := backend.Tape().Backward(scalar, backend)
		if err != nil {
			return nil, fmt.Errorf("vis: saliency backward: %w", err)
		}
		grad, ok := grads[input]
		if !ok {
			return nil, fmt.Errorf("vis: no gradient reached the input")
		}
		return grad, nil
	}, nil
}
