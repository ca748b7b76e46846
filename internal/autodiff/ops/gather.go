// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// GatherOp records a per-row selection from a [N, C] tensor. The backward
// pass scatter-adds the gradient back to the selected positions.
type GatherOp struct {
	input   *tensor.RawTensor
	indices *tensor.RawTensor
	output  *tensor.RawTensor
}

func NewGather(input, indices, output *tensor.RawTensor) *GatherOp {
	return &GatherOp{input: input, indices: indices, output: output}
}

func (op *GatherOp) Name() string                { return "Gather" }
func (op *GatherOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *GatherOp) Output() *tensor.RawTensor   { return op.output }

func (op *GatherOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	shape := op.input.Shape()
	grad := tensor.NewRawZeros(shape, tensor.Float32)
	dst := grad.AsFloat32()
	g := outputGrad.AsFloat32()
	idx := op.indices.AsInt32()
	c := shape[1]
	for i := range idx {
		dst[i*c+int(idx[i])] += g[i]
	}
	return []*tensor.RawTensor{grad}
}
