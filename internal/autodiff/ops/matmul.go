// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// MatMulOp records a matrix product a @ b.
type MatMulOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

func NewMatMul(a, b, output *tensor.RawTensor) *MatMulOp {
	return &MatMulOp{a: a, b: b, output: output}
}

func (op *MatMulOp) Name() string                { return "MatMul" }
func (op *MatMulOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *MatMulOp) Output() *tensor.RawTensor   { return op.output }

func (op *MatMulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	// dL/da = dL/dout @ b^T; dL/db = a^T @ dL/dout.
	rank := len(op.a.Shape())
	gradA := backend.MatMul(outputGrad, backend.Transpose(op.b, rank-2, rank-1))
	gradB := backend.MatMul(backend.Transpose(op.a, rank-2, rank-1), outputGrad)
	return []*tensor.RawTensor{gradA, gradB}
}
