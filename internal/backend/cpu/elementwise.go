// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"math"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Add returns a + b with broadcasting.
func (b *Backend) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	return binaryOp(x, y, "Add", func(a, b float32) float32 { return a + b })
}

// Sub returns a - b with broadcasting.
func (b *Backend) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	return binaryOp(x, y, "Sub", func(a, b float32) float32 { return a - b })
}

// Mul returns the elementwise product with broadcasting.
func (b *Backend) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	return binaryOp(x, y, "Mul", func(a, b float32) float32 { return a * b })
}

// Div returns the elementwise quotient with broadcasting.
func (b *Backend) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	return binaryOp(x, y, "Div", func(a, b float32) float32 { return a / b })
}

func (b *Backend) AddScalar(x *tensor.RawTensor, s float32) *tensor.RawTensor {
	return unaryOp(x, "AddScalar", func(v float32) float32 { return v + s })
}

func (b *Backend) SubScalar(x *tensor.RawTensor, s float32) *tensor.RawTensor {
	return unaryOp(x, "SubScalar", func(v float32) float32 { return v - s })
}

func (b *Backend) MulScalar(x *tensor.RawTensor, s float32) *tensor.RawTensor {
	return unaryOp(x, "MulScalar", func(v float32) float32 { return v * s })
}

func (b *Backend) DivScalar(x *tensor.RawTensor, s float32) *tensor.RawTensor {
	return unaryOp(x, "DivScalar", func(v float32) float32 { return v / s })
}

func (b *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryOp(x, "Exp", func(v float32) float32 { return float32(math.Exp(float64(v))) })
}

func (b *Backend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryOp(x, "Log", func(v float32) float32 { return float32(math.Log(float64(v))) })
}

func (b *Backend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryOp(x, "Sqrt", func(v float32) float32 { return float32(math.Sqrt(float64(v))) })
}

func (b *Backend) Relu(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryOp(x, "Relu", func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
}

func unaryOp(x *tensor.RawTensor, name string, f func(float32) float32) *tensor.RawTensor {
	src := float32Data(x, name)
	out := tensor.NewRawZeros(x.Shape(), tensor.Float32)
	dst := out.AsFloat32()
	for i, v := range src {
		dst[i] = f(v)
	}
	return out
}

func binaryOp(x, y *tensor.RawTensor, name string, f func(float32, float32) float32) *tensor.RawTensor {
	xd := float32Data(x, name)
	yd := float32Data(y, name)

	if x.Shape().Equal(y.Shape()) {
		out := tensor.NewRawZeros(x.Shape(), tensor.Float32)
		dst := out.AsFloat32()
		for i := range xd {
			dst[i] = f(xd[i], yd[i])
		}
		return out
	}

	outShape, _, err := tensor.BroadcastShapes(x.Shape(), y.Shape())
	if err != nil {
		panic(fmt.Sprintf("cpu: %s: %v", name, err))
	}
	out := tensor.NewRawZeros(outShape, tensor.Float32)
	dst := out.AsFloat32()

	xStrides := broadcastStrides(x.Shape(), outShape)
	yStrides := broadcastStrides(y.Shape(), outShape)
	outStrides := outShape.ComputeStrides()

	idx := make([]int, len(outShape))
	for flat := range dst {
		rem := flat
		for d := range outShape {
			idx[d] = rem / outStrides[d]
			rem %= outStrides[d]
		}
		xi, yi := 0, 0
		for d := range outShape {
			xi += idx[d] * xStrides[d]
			yi += idx[d] * yStrides[d]
		}
		dst[flat] = f(xd[xi], yd[yi])
	}
	return out
}

// broadcastStrides maps a (possibly lower-rank) input shape onto strides in
// the broadcast output's coordinate space. Broadcast dimensions get stride 0.
func broadcastStrides(in, out tensor.Shape) []int {
	inStrides := in.ComputeStrides()
	strides := make([]int, len(out))
	offset := len(out) - len(in)
	for d := range out {
		i := d - offset
		if i < 0 || in[i] == 1 {
			strides[d] = 0
		} else {
			strides[d] = inStrides[i]
		}
	}
	return strides
}
