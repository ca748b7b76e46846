// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// SumDimOp records a reduction along one dimension.
type SumDimOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

func NewSumDim(input, output *tensor.RawTensor, dim int) *SumDimOp {
	return &SumDimOp{input: input, output: output, dim: dim}
}

func (op *SumDimOp) Name() string                { return "SumDim" }
func (op *SumDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SumDimOp) Output() *tensor.RawTensor   { return op.output }

func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{broadcastAlongDim(outputGrad, op.input.Shape(), op.dim, backend)}
}

// broadcastAlongDim expands a reduced gradient back over the input shape by
// reshaping it to keep-dim form and broadcasting.
func broadcastAlongDim(grad *tensor.RawTensor, inputShape tensor.Shape, dim int, backend tensor.Backend) *tensor.RawTensor {
	if dim < 0 {
		dim += len(inputShape)
	}
	keepShape := inputShape.Clone()
	keepShape[dim] = 1
	reshaped := backend.Reshape(grad, keepShape)
	return backend.Mul(tensor.NewRawFull(inputShape, 1), reshaped)
}
