// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tensor

// Backend is the set of primitive operations a compute device must provide.
// Implementations live under internal/backend. Kernels panic on shape or
// dtype violations; error handling happens at the API boundary above.
type Backend interface {
	// Name identifies the backend implementation.
	Name() string
	// Device reports which device the backend computes on.
	Device() Device

	// Elementwise binary ops with broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar ops.
	AddScalar(a *RawTensor, scalar float32) *RawTensor
	SubScalar(a *RawTensor, scalar float32) *RawTensor
	MulScalar(a *RawTensor, scalar float32) *RawTensor
	DivScalar(a *RawTensor, scalar float32) *RawTensor

	// Elementwise unary ops.
	Exp(a *RawTensor) *RawTensor
	Log(a *RawTensor) *RawTensor
	Sqrt(a *RawTensor) *RawTensor
	Relu(a *RawTensor) *RawTensor

	// MatMul multiplies [M, K] x [K, N] into [M, N], with batched support
	// for rank-3 inputs sharing a leading batch dimension.
	MatMul(a, b *RawTensor) *RawTensor

	// Conv2D applies kernel [Cout, Cin, KH, KW] over input [N, Cin, H, W]
	// with the given stride and symmetric zero padding.
	Conv2D(input, kernel *RawTensor, stride, padding int) *RawTensor
	// Conv2DInputBackward computes the gradient of Conv2D with respect to
	// its input.
	Conv2DInputBackward(outputGrad, kernel *RawTensor, inputShape Shape, stride, padding int) *RawTensor
	// Conv2DKernelBackward computes the gradient of Conv2D with respect to
	// its kernel.
	Conv2DKernelBackward(outputGrad, input *RawTensor, kernelShape Shape, stride, padding int) *RawTensor

	// MaxPool2D pools input [N, C, H, W] with a square window. The second
	// return value holds the flat index of each window's maximum within its
	// (n, c) plane, used to route gradients in MaxPool2DBackward.
	MaxPool2D(input *RawTensor, kernelSize, stride int) (*RawTensor, *RawTensor)
	MaxPool2DBackward(outputGrad, maxIndices *RawTensor, inputShape Shape) *RawTensor

	// Shape ops.
	Reshape(a *RawTensor, shape Shape) *RawTensor
	Transpose(a *RawTensor, dim0, dim1 int) *RawTensor

	// Softmax normalizes along dim.
	Softmax(a *RawTensor, dim int) *RawTensor

	// Reductions.
	Sum(a *RawTensor) *RawTensor
	SumDim(a *RawTensor, dim int, keepDim bool) *RawTensor
	MeanDim(a *RawTensor, dim int, keepDim bool) *RawTensor
	// MaxDim reduces along dim keeping the maximum. The second return value
	// holds int32 argmax indices along the reduced dimension, with the same
	// shape as the first.
	MaxDim(a *RawTensor, dim int, keepDim bool) (*RawTensor, *RawTensor)
	Argmax(a *RawTensor, dim int) *RawTensor

	// Gather selects rows of a [N, C] tensor: result[i] = a[i, indices[i]].
	Gather(a, indices *RawTensor) *RawTensor

	// CrossEntropy computes mean softmax cross-entropy between logits
	// [N, C] and int32 class targets [N], returning a scalar.
	CrossEntropy(logits, targets *RawTensor) *RawTensor

	// Cast converts between data types.
	Cast(a *RawTensor, dtype DataType) *RawTensor
}
