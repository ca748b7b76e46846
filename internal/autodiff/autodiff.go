// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation as a
// decorator over any tensor.Backend. Operations executed through an
// AutodiffBackend are recorded on a gradient tape; Backward replays them in
// reverse to accumulate gradients.
//
// Gradient rules for individual operations can be replaced through a
// Registry. Overrides bind when an operation is recorded, so a model must
// be constructed (or reloaded) under an active override for the override to
// take effect.
package autodiff

import (
	"fmt"

	"github.com/mihirkhandekar/supervision/internal/autodiff/ops"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// GradientConfig selects replacement gradient rules for named operations.
type GradientConfig struct {
	// Registry resolves rule names. Nil means the process-wide default.
	Registry *Registry
	// Overrides maps operation names to registered rule names, e.g.
	// {"Relu": "GuidedBackProp"}.
	Overrides map[string]string
}

// AutodiffBackend decorates an inner backend with gradient recording. It
// implements tensor.Backend, so model code is oblivious to whether it runs
// recorded or plain.
type AutodiffBackend[B tensor.Backend] struct {
	inner    B
	tape     *GradientTape
	reluRule ops.GradientRule
}

// New wraps backend with a fresh tape and default gradient rules.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	ad, err := NewWithConfig(backend, GradientConfig{})
	if err != nil {
		panic(err) // empty config cannot fail
	}
	return ad
}

// NewWithConfig wraps backend with a fresh tape, resolving every override
// in cfg up front. An override naming an unregistered rule is an error.
func NewWithConfig[B tensor.Backend](backend B, cfg GradientConfig) (*AutodiffBackend[B], error) {
	ad := &AutodiffBackend[B]{inner: backend, tape: NewGradientTape()}
	registry := cfg.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	for opName, ruleName := range cfg.Overrides {
		rule, err := registry.Lookup(ruleName)
		if err != nil {
			return nil, fmt.Errorf("override for %s: %w", opName, err)
		}
		switch opName {
		case "Relu":
			ad.reluRule = rule
		default:
			return nil, fmt.Errorf("operation %s does not support gradient overrides", opName)
		}
	}
	return ad, nil
}

// Tape returns the gradient tape operations are recorded on.
func (ad *AutodiffBackend[B]) Tape() *GradientTape { return ad.tape }

// Inner returns the wrapped backend.
func (ad *AutodiffBackend[B]) Inner() B { return ad.inner }

func (ad *AutodiffBackend[B]) Name() string          { return "autodiff(" + ad.inner.Name() + ")" }
func (ad *AutodiffBackend[B]) Device() tensor.Device { return ad.inner.Device() }

func (ad *AutodiffBackend[B]) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	out := ad.inner.Add(a, b)
	ad.tape.Record(ops.NewAdd(a, b, out))
	return out
}

func (ad *AutodiffBackend[B]) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	out := ad.inner.Sub(a, b)
	ad.tape.Record(ops.NewSub(a, b, out))
	return out
}

func (ad *AutodiffBackend[B]) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	out := ad.inner.Mul(a, b)
	ad.tape.Record(ops.NewMul(a, b, out))
	return out
}

func (ad *AutodiffBackend[B]) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	out := ad.inner.Div(a, b)
	ad.tape.Record(ops.NewDiv(a, b, out))
	return out
}

func (ad *AutodiffBackend[B]) AddScalar(a *tensor.RawTensor, s float32) *tensor.RawTensor {
	out := ad.inner.AddScalar(a, s)
	ad.tape.Record(ops.NewScalar("AddScalar", a, out, 1))
	return out
}

func (ad *AutodiffBackend[B]) SubScalar(a *tensor.RawTensor, s float32) *tensor.RawTensor {
	out := ad.inner.SubScalar(a, s)
	ad.tape.Record(ops.NewScalar("SubScalar", a, out, 1))
	return out
}

func (ad *AutodiffBackend[B]) MulScalar(a *tensor.RawTensor, s float32) *tensor.RawTensor {
	out := ad.inner.MulScalar(a, s)
	ad.tape.Record(ops.NewScalar("MulScalar", a, out, s))
	return out
}

func (ad *AutodiffBackend[B]) DivScalar(a *tensor.RawTensor, s float32) *tensor.RawTensor {
	out := ad.inner.DivScalar(a, s)
	ad.tape.Record(ops.NewScalar("DivScalar", a, out, 1/s))
	return out
}

func (ad *AutodiffBackend[B]) Exp(a *tensor.RawTensor) *tensor.RawTensor {
	out := ad.inner.Exp(a)
	ad.tape.Record(ops.NewExp(a, out))
	return out
}

func (ad *AutodiffBackend[B]) Log(a *tensor.RawTensor) *tensor.RawTensor {
	out := ad.inner.Log(a)
	ad.tape.Record(ops.NewLog(a, out))
	return out
}

func (ad *AutodiffBackend[B]) Sqrt(a *tensor.RawTensor) *tensor.RawTensor {
	out := ad.inner.Sqrt(a)
	ad.tape.Record(ops.NewSqrt(a, out))
	return out
}

func (ad *AutodiffBackend[B]) Relu(a *tensor.RawTensor) *tensor.RawTensor {
	out := ad.inner.Relu(a)
	ad.tape.Record(ops.NewRelu(a, out, ad.reluRule))
	return out
}

func (ad *AutodiffBackend[B]) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	out := ad.inner.MatMul(a, b)
	ad.tape.Record(ops.NewMatMul(a, b, out))
	return out
}

func (ad *AutodiffBackend[B]) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	out := ad.inner.Conv2D(input, kernel, stride, padding)
	ad.tape.Record(ops.NewConv2D(input, kernel, out, stride, padding))
	return out
}

func (ad *AutodiffBackend[B]) MaxPool2D(input *tensor.RawTensor, kernelSize, stride int) (*tensor.RawTensor, *tensor.RawTensor) {
	out, indices := ad.inner.MaxPool2D(input, kernelSize, stride)
	ad.tape.Record(ops.NewMaxPool2D(input, out, indices))
	return out, indices
}

func (ad *AutodiffBackend[B]) Reshape(a *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	out := ad.inner.Reshape(a, shape)
	ad.tape.Record(ops.NewReshape(a, out))
	return out
}

func (ad *AutodiffBackend[B]) Transpose(a *tensor.RawTensor, dim0, dim1 int) *tensor.RawTensor {
	out := ad.inner.Transpose(a, dim0, dim1)
	ad.tape.Record(ops.NewTranspose(a, out, dim0, dim1))
	return out
}

func (ad *AutodiffBackend[B]) Softmax(a *tensor.RawTensor, dim int) *tensor.RawTensor {
	out := ad.inner.Softmax(a, dim)
	ad.tape.Record(ops.NewSoftmax(a, out, dim))
	return out
}

func (ad *AutodiffBackend[B]) Sum(a *tensor.RawTensor) *tensor.RawTensor {
	out := ad.inner.Sum(a)
	ad.tape.Record(ops.NewSum(a, out))
	return out
}

func (ad *AutodiffBackend[B]) SumDim(a *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	out := ad.inner.SumDim(a, dim, keepDim)
	ad.tape.Record(ops.NewSumDim(a, out, dim))
	return out
}

func (ad *AutodiffBackend[B]) MeanDim(a *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	out := ad.inner.MeanDim(a, dim, keepDim)
	ad.tape.Record(ops.NewMeanDim(a, out, dim))
	return out
}

func (ad *AutodiffBackend[B]) MaxDim(a *tensor.RawTensor, dim int, keepDim bool) (*tensor.RawTensor, *tensor.RawTensor) {
	out, indices := ad.inner.MaxDim(a, dim, keepDim)
	ad.tape.Record(ops.NewMaxDim(a, out, indices, dim))
	return out, indices
}

func (ad *AutodiffBackend[B]) Gather(a, indices *tensor.RawTensor) *tensor.RawTensor {
	out := ad.inner.Gather(a, indices)
	ad.tape.Record(ops.NewGather(a, indices, out))
	return out
}

func (ad *AutodiffBackend[B]) CrossEntropy(logits, targets *tensor.RawTensor) *tensor.RawTensor {
	out := ad.inner.CrossEntropy(logits, targets)
	ad.tape.Record(ops.NewCrossEntropy(logits, targets, out))
	return out
}

// The remaining Backend methods either are gradients themselves or produce
// non-differentiable outputs; they pass through unrecorded.

func (ad *AutodiffBackend[B]) Conv2DInputBackward(outputGrad, kernel *tensor.RawTensor, inputShape tensor.Shape, stride, padding int) *tensor.RawTensor {
	return ad.inner.Conv2DInputBackward(outputGrad, kernel, inputShape, stride, padding)
}

func (ad *AutodiffBackend[B]) Conv2DKernelBackward(outputGrad, input *tensor.RawTensor, kernelShape tensor.Shape, stride, padding int) *tensor.RawTensor {
	return ad.inner.Conv2DKernelBackward(outputGrad, input, kernelShape, stride, padding)
}

func (ad *AutodiffBackend[B]) MaxPool2DBackward(outputGrad, maxIndices *tensor.RawTensor, inputShape tensor.Shape) *tensor.RawTensor {
	return ad.inner.MaxPool2DBackward(outputGrad, maxIndices, inputShape)
}

func (ad *AutodiffBackend[B]) Argmax(a *tensor.RawTensor, dim int) *tensor.RawTensor {
	return ad.inner.Argmax(a, dim)
}

func (ad *AutodiffBackend[B]) Cast(a *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	return ad.inner.Cast(a, dtype)
}
