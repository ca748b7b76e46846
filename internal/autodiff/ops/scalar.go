// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// ScalarOp records an elementwise scalar operation whose gradient is the
// output gradient scaled by a constant: identity for add and subtract,
// the scalar for multiply, its reciprocal for divide.
type ScalarOp struct {
	name      string
	input     *tensor.RawTensor
	output    *tensor.RawTensor
	gradScale float32
}

func NewScalar(name string, input, output *tensor.RawTensor, gradScale float32) *ScalarOp {
	return &ScalarOp{name: name, input: input, output: output, gradScale: gradScale}
}

func (op *ScalarOp) Name() string                { return op.name }
func (op *ScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *ScalarOp) Output() *tensor.RawTensor   { return op.output }

func (op *ScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	if op.gradScale == 1 {
		return []*tensor.RawTensor{outputGrad}
	}
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.gradScale)}
}
