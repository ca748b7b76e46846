// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// MaxDimOp records a maximum along one dimension. The argmax indices
// captured during the forward pass route the gradient to the winning
// elements only.
type MaxDimOp struct {
	input      *tensor.RawTensor
	output     *tensor.RawTensor
	maxIndices *tensor.RawTensor
	dim        int
}

func NewMaxDim(input, output, maxIndices *tensor.RawTensor, dim int) *MaxDimOp {
	return &MaxDimOp{input: input, output: output, maxIndices: maxIndices, dim: dim}
}

func (op *MaxDimOp) Name() string                { return "MaxDim" }
func (op *MaxDimOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *MaxDimOp) Output() *tensor.RawTensor   { return op.output }

func (op *MaxDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inShape := op.input.Shape()
	dim := op.dim
	if dim < 0 {
		dim += len(inShape)
	}
	outer, inner := 1, 1
	for i := 0; i < dim; i++ {
		outer *= inShape[i]
	}
	for i := dim + 1; i < len(inShape); i++ {
		inner *= inShape[i]
	}
	size := inShape[dim]

	grad := tensor.NewRawZeros(inShape, tensor.Float32)
	dst := grad.AsFloat32()
	g := outputGrad.AsFloat32()
	idx := op.maxIndices.AsInt32()
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			d := int(idx[o*inner+i])
			dst[(o*size+d)*inner+i] += g[o*inner+i]
		}
	}
	return []*tensor.RawTensor{grad}
}
