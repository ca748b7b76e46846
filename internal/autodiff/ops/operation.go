// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package ops defines the differentiable operations recorded on a gradient
// tape. Each operation keeps references to its inputs and output and knows
// how to turn an output gradient into input gradients.
package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// Operation is one recorded node of the computation graph.
type Operation interface {
	// Name identifies the operation kind. Gradient overrides are keyed by
	// this name.
	Name() string
	// Inputs returns the tensors the operation consumed, in order. Backward
	// returns gradients in the same order.
	Inputs() []*tensor.RawTensor
	// Output returns the tensor the operation produced.
	Output() *tensor.RawTensor
	// Backward maps the gradient of the output to gradients of the inputs.
	// A nil entry means the corresponding input receives no gradient.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor
}
