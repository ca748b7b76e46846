// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// GradientRule replaces an operation's default backward computation. It
// receives the output gradient together with the operation's forward input
// and output and returns the input gradient.
type GradientRule func(outputGrad, input, output *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor

// ReluOp records max(x, 0). An optional GradientRule, resolved when the op
// is recorded, replaces the default backward pass.
type ReluOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	rule   GradientRule
}

func NewRelu(input, output *tensor.RawTensor, rule GradientRule) *ReluOp {
	return &ReluOp{input: input, output: output, rule: rule}
}

func (op *ReluOp) Name() string                { return "Relu" }
func (op *ReluOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }
func (op *ReluOp) Output() *tensor.RawTensor   { return op.output }

func (op *ReluOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	if op.rule != nil {
		return []*tensor.RawTensor{op.rule(outputGrad, op.input, op.output, backend)}
	}
	return []*tensor.RawTensor{reluMask(outputGrad, op.input)}
}

// GuidedReLURule implements guided backpropagation: the incoming gradient
// passes only where it is positive AND the forward input was positive.
func GuidedReLURule(outputGrad, input, _ *tensor.RawTensor, _ tensor.Backend) *tensor.RawTensor {
	out := tensor.NewRawZeros(outputGrad.Shape(), tensor.Float32)
	dst := out.AsFloat32()
	g := outputGrad.AsFloat32()
	x := input.AsFloat32()
	for i := range dst {
		if g[i] > 0 && x[i] > 0 {
			dst[i] = g[i]
		}
	}
	return out
}

// reluMask zeroes the gradient wherever the forward input was non-positive.
func reluMask(outputGrad, input *tensor.RawTensor) *tensor.RawTensor {
	out := tensor.NewRawZeros(outputGrad.Shape(), tensor.Float32)
	dst := out.AsFloat32()
	g := outputGrad.AsFloat32()
	x := input.AsFloat32()
	for i := range dst {
		if x[i] > 0 {
			dst[i] = g[i]
		}
	}
	return out
}
