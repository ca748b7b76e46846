// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// MaxPool2DOp records a max pooling operation. The argmax indices captured
// during the forward pass route the gradient back to the winning inputs.
type MaxPool2DOp struct {
	input      *tensor.RawTensor
	output     *tensor.RawTensor
	maxIndices *tensor.RawTensor
}

func NewMaxPool2D(input, output, maxIndices *tensor.RawTensor) *MaxPool2DOp {
	return &MaxPool2DOp{input: input, output: output, maxIndices: maxIndices}
}

func (op *MaxPool2DOp) Name() string                { return "MaxPool2D" }
func (op *MaxPool2DOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *MaxPool2DOp) Output() *tensor.RawTensor   { return op.output }

func (op *MaxPool2DOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		backend.MaxPool2DBackward(outputGrad, op.maxIndices, op.input.Shape()),
	}
}
