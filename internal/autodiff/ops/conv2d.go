// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// Conv2DOp records a 2D convolution.
type Conv2DOp struct {
	input, kernel   *tensor.RawTensor
	output          *tensor.RawTensor
	stride, padding int
}

func NewConv2D(input, kernel, output *tensor.RawTensor, stride, padding int) *Conv2DOp {
	return &Conv2DOp{input: input, kernel: kernel, output: output, stride: stride, padding: padding}
}

func (op *Conv2DOp) Name() string                { return "Conv2D" }
func (op *Conv2DOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input, op.kernel} }
func (op *Conv2DOp) Output() *tensor.RawTensor   { return op.output }

func (op *Conv2DOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inputGrad := backend.Conv2DInputBackward(outputGrad, op.kernel, op.input.Shape(), op.stride, op.padding)
	kernelGrad := backend.Conv2DKernelBackward(outputGrad, op.input, op.kernel.Shape(), op.stride, op.padding)
	return []*tensor.RawTensor{inputGrad, kernelGrad}
}
