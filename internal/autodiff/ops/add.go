// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// AddOp records a + b.
type AddOp struct {
	a, b   *tensor.RawTensor
	output *tensor.RawTensor
}

func NewAdd(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{a: a, b: b, output: output}
}

func (op *AddOp) Name() string                  { return "Add" }
func (op *AddOp) Inputs() []*tensor.RawTensor   { return []*tensor.RawTensor{op.a, op.b} }
func (op *AddOp) Output() *tensor.RawTensor     { return op.output }

func (op *AddOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, op.a.Shape(), backend),
		reduceBroadcast(outputGrad, op.b.Shape(), backend),
	}
}
