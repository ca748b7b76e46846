// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// SoftmaxOp records a softmax along dim. The backward pass uses the forward
// output only: dL/dx = s * (g - sum(g * s, dim)).
type SoftmaxOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

func NewSoftmax(input, output *tensor.RawTensor, dim int) *SoftmaxOp {
	return &SoftmaxOp{input: input, output: output, dim: dim}
}

func (op *SoftmaxOp) Name() string                { return "Softmax" }
func (op *SoftmaxOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SoftmaxOp) Output() *tensor.RawTensor   { return op.output }

func (op *SoftmaxOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gs := backend.Mul(outputGrad, op.output)
	dot := backend.SumDim(gs, op.dim, true)
	return []*tensor.RawTensor{
		backend.Mul(op.output, backend.Sub(outputGrad, dot)),
	}
}
