// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// SumOp records a full reduction to a scalar. The gradient broadcasts the
// scalar back over the input shape.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewSum(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

func (op *SumOp) Name() string                { return "Sum" }
func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SumOp) Output() *tensor.RawTensor   { return op.output }

func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		backend.Mul(onesLike(op.input), outputGrad),
	}
}
