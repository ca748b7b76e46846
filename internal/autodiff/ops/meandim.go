// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// MeanDimOp records an average along one dimension.
type MeanDimOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

func NewMeanDim(input, output *tensor.RawTensor, dim int) *MeanDimOp {
	return &MeanDimOp{input: input, output: output, dim: dim}
}

func (op *MeanDimOp) Name() string                { return "MeanDim" }
func (op *MeanDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *MeanDimOp) Output() *tensor.RawTensor   { return op.output }

func (op *MeanDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	dim := op.dim
	if dim < 0 {
		dim += len(op.input.Shape())
	}
	size := op.input.Shape()[dim]
	spread := broadcastAlongDim(outputGrad, op.input.Shape(), op.dim, backend)
	return []*tensor.RawTensor{backend.MulScalar(spread, 1/float32(size))}
}
