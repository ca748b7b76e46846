// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// ExpOp records e^x. The gradient reuses the forward output.
type ExpOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewExp(input, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{input: input, output: output}
}

func (op *ExpOp) Name() string                { return "Exp" }
func (op *ExpOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *ExpOp) Output() *tensor.RawTensor   { return op.output }

func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}

// LogOp records ln(x).
type LogOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewLog(input, output *tensor.RawTensor) *LogOp {
	return &LogOp{input: input, output: output}
}

func (op *LogOp) Name() string                { return "Log" }
func (op *LogOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *LogOp) Output() *tensor.RawTensor   { return op.output }

func (op *LogOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, op.input)}
}

// SqrtOp records sqrt(x). d sqrt(x)/dx = 1 / (2 sqrt(x)).
type SqrtOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

func NewSqrt(input, output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{input: input, output: output}
}

func (op *SqrtOp) Name() string                { return "Sqrt" }
func (op *SqrtOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *SqrtOp) Output() *tensor.RawTensor   { return op.output }

func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, backend.MulScalar(op.output, 2))}
}
