// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// DivOp records the elementwise quotient a / b.
type DivOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

func NewDiv(a, b, output *tensor.RawTensor) *DivOp {
	return &DivOp{a: a, b: b, output: output}
}

func (op *DivOp) Name() string                { return "Div" }
func (op *DivOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *DivOp) Output() *tensor.RawTensor   { return op.output }

func (op *DivOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	// d/da (a/b) = 1/b; d/db (a/b) = -a/b^2 = -output/b.
	gradA := backend.Div(outputGrad, op.b)
	gradB := backend.MulScalar(backend.Div(backend.Mul(outputGrad, op.output), op.b), -1)
	return []*tensor.RawTensor{
		reduceBroadcast(gradA, op.a.Shape(), backend),
		reduceBroadcast(gradB, op.b.Shape(), backend),
	}
}
