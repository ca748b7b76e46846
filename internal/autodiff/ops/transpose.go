// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// TransposeOp records a dimension swap. Swapping the same dimensions again
// inverts it.
type TransposeOp struct {
	input      *tensor.RawTensor
	output     *tensor.RawTensor
	dim0, dim1 int
}

func NewTranspose(input, output *tensor.RawTensor, dim0, dim1 int) *TransposeOp {
	return &TransposeOp{input: input, output: output, dim0: dim0, dim1: dim1}
}

func (op *TransposeOp) Name() string                { return "Transpose" }
func (op *TransposeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *TransposeOp) Output() *tensor.RawTensor   { return op.output }

func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Transpose(outputGrad, op.dim0, op.dim1)}
}
