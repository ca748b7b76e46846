// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package webgpu

import (
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// gpuEligible reports whether an elementwise binary op can run on the GPU.
// Broadcasting and non-float32 inputs go through the CPU path.
func gpuEligible(a, other *tensor.RawTensor) bool {
	return a.DType() == tensor.Float32 &&
		other.DType() == tensor.Float32 &&
		a.Shape().Equal(other.Shape())
}

func (b *Backend) binary(a, other *tensor.RawTensor, name, code string, cpuOp func(a, b *tensor.RawTensor) *tensor.RawTensor) *tensor.RawTensor {
	if !gpuEligible(a, other) {
		return cpuOp(a, other)
	}
	result, err := b.runBinaryOp(a, other, name, code)
	if err != nil {
		panic("webgpu: " + name + ": " + err.Error())
	}
	return result
}

func (b *Backend) Add(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.binary(a, other, "add", addShader, b.cpu.Add)
}

func (b *Backend) Sub(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.binary(a, other, "sub", subShader, b.cpu.Sub)
}

func (b *Backend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.binary(a, other, "mul", mulShader, b.cpu.Mul)
}

func (b *Backend) Div(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.binary(a, other, "div", divShader, b.cpu.Div)
}

func (b *Backend) scalar(a *tensor.RawTensor, s float32, name, code string, cpuOp func(a *tensor.RawTensor, s float32) *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != tensor.Float32 {
		return cpuOp(a, s)
	}
	result, err := b.runScalarOp(a, s, name, code)
	if err != nil {
		panic("webgpu: " + name + ": " + err.Error())
	}
	return result
}

func (b *Backend) AddScalar(a *tensor.RawTensor, s float32) *tensor.RawTensor {
	return b.scalar(a, s, "add_scalar", addScalarShader, b.cpu.AddScalar)
}

func (b *Backend) SubScalar(a *tensor.RawTensor, s float32) *tensor.RawTensor {
	return b.scalar(a, s, "sub_scalar", subScalarShader, b.cpu.SubScalar)
}

func (b *Backend) MulScalar(a *tensor.RawTensor, s float32) *tensor.RawTensor {
	return b.scalar(a, s, "mul_scalar", mulScalarShader, b.cpu.MulScalar)
}

func (b *Backend) DivScalar(a *tensor.RawTensor, s float32) *tensor.RawTensor {
	return b.scalar(a, s, "div_scalar", divScalarShader, b.cpu.DivScalar)
}

func (b *Backend) unary(a *tensor.RawTensor, name, code string, cpuOp func(a *tensor.RawTensor) *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != tensor.Float32 {
		return cpuOp(a)
	}
	result, err := b.runUnaryOp(a, name, code)
	if err != nil {
		panic("webgpu: " + name + ": " + err.Error())
	}
	return result
}

func (b *Backend) Exp(a *tensor.RawTensor) *tensor.RawTensor {
	return b.unary(a, "exp", expShader, b.cpu.Exp)
}

func (b *Backend) Log(a *tensor.RawTensor) *tensor.RawTensor {
	return b.unary(a, "log", logShader, b.cpu.Log)
}

func (b *Backend) Sqrt(a *tensor.RawTensor) *tensor.RawTensor {
	return b.unary(a, "sqrt", sqrtShader, b.cpu.Sqrt)
}

func (b *Backend) Relu(a *tensor.RawTensor) *tensor.RawTensor {
	return b.unary(a, "relu", reluShader, b.cpu.Relu)
}

// MatMul runs rank-2 float32 products on the GPU. Batched rank-3 inputs go
// through the CPU path.
func (b *Backend) MatMul(a, other *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != tensor.Float32 || other.DType() != tensor.Float32 ||
		len(a.Shape()) != 2 || len(other.Shape()) != 2 {
		return b.cpu.MatMul(a, other)
	}
	if a.Shape()[1] != other.Shape()[0] {
		panic("webgpu: MatMul: inner dimensions do not match")
	}
	result, err := b.runMatMul(a, other)
	if err != nil {
		panic("webgpu: MatMul: " + err.Error())
	}
	return result
}

// The remaining operations have no WGSL kernel yet and delegate to the CPU
// backend. Convolution and pooling dominate runtime, so these are the next
// candidates for GPU kernels.

func (b *Backend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	return b.cpu.Conv2D(input, kernel, stride, padding)
}

func (b *Backend) Conv2DInputBackward(outputGrad, kernel *tensor.RawTensor, inputShape tensor.Shape, stride, padding int) *tensor.RawTensor {
	return b.cpu.Conv2DInputBackward(outputGrad, kernel, inputShape, stride, padding)
}

func (b *Backend) Conv2DKernelBackward(outputGrad, input *tensor.RawTensor, kernelShape tensor.Shape, stride, padding int) *tensor.RawTensor {
	return b.cpu.Conv2DKernelBackward(outputGrad, input, kernelShape, stride, padding)
}

func (b *Backend) MaxPool2D(input *tensor.RawTensor, kernelSize, stride int) (*tensor.RawTensor, *tensor.RawTensor) {
	return b.cpu.MaxPool2D(input, kernelSize, stride)
}

func (b *Backend) MaxPool2DBackward(outputGrad, maxIndices *tensor.RawTensor, inputShape tensor.Shape) *tensor.RawTensor {
	return b.cpu.MaxPool2DBackward(outputGrad, maxIndices, inputShape)
}

func (b *Backend) Reshape(a *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	return b.cpu.Reshape(a, shape)
}

func (b *Backend) Transpose(a *tensor.RawTensor, dim0, dim1 int) *tensor.RawTensor {
	return b.cpu.Transpose(a, dim0, dim1)
}

func (b *Backend) Softmax(a *tensor.RawTensor, dim int) *tensor.RawTensor {
	return b.cpu.Softmax(a, dim)
}

func (b *Backend) Sum(a *tensor.RawTensor) *tensor.RawTensor {
	return b.cpu.Sum(a)
}

func (b *Backend) SumDim(a *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.cpu.SumDim(a, dim, keepDim)
}

func (b *Backend) MeanDim(a *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.cpu.MeanDim(a, dim, keepDim)
}

func (b *Backend) MaxDim(a *tensor.RawTensor, dim int, keepDim bool) (*tensor.RawTensor, *tensor.RawTensor) {
	return b.cpu.MaxDim(a, dim, keepDim)
}

func (b *Backend) Argmax(a *tensor.RawTensor, dim int) *tensor.RawTensor {
	return b.cpu.Argmax(a, dim)
}

func (b *Backend) Gather(a, indices *tensor.RawTensor) *tensor.RawTensor {
	return b.cpu.Gather(a, indices)
}

func (b *Backend) CrossEntropy(logits, targets *tensor.RawTensor) *tensor.RawTensor {
	return b.cpu.CrossEntropy(logits, targets)
}

func (b *Backend) Cast(a *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	return b.cpu.Cast(a, dtype)
}

// interface check
var _ tensor.Backend = (*Backend)(nil)
