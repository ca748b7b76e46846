// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cpu implements the tensor.Backend interface with pure Go kernels.
// Kernels panic on shape or dtype violations; callers validate at the API
// boundary.
package cpu

import (
	"fmt"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Backend computes on host memory with single-threaded Go kernels.
type Backend struct{}

// New creates a CPU backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Name() string          { return "cpu" }
func (b *Backend) Device() tensor.Device { return tensor.CPU }

// Cast converts between data types elementwise.
func (b *Backend) Cast(a *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if a.DType() == dtype {
		return a.Clone()
	}
	out := tensor.NewRawZeros(a.Shape(), dtype)
	n := a.NumElements()
	for i := 0; i < n; i++ {
		writeAt(out, i, readAt(a, i))
	}
	return out
}

func readAt(a *tensor.RawTensor, i int) float64 {
	switch a.DType() {
	case tensor.Float32:
		return float64(a.AsFloat32()[i])
	case tensor.Int32:
		return float64(a.AsInt32()[i])
	case tensor.Uint8:
		return float64(a.AsUint8()[i])
	default:
		panic(fmt.Sprintf("cpu: unsupported dtype %s", a.DType()))
	}
}

func writeAt(a *tensor.RawTensor, i int, v float64) {
	switch a.DType() {
	case tensor.Float32:
		a.AsFloat32()[i] = float32(v)
	case tensor.Int32:
		a.AsInt32()[i] = int32(v)
	case tensor.Uint8:
		switch {
		case v < 0:
			a.AsUint8()[i] = 0
		case v > 255:
			a.AsUint8()[i] = 255
		default:
			a.AsUint8()[i] = uint8(v)
		}
	default:
		panic(fmt.Sprintf("cpu: unsupported dtype %s", a.DType()))
	}
}

func float32Data(a *tensor.RawTensor, op string) []float32 {
	if a.DType() != tensor.Float32 {
		panic(fmt.Sprintf("cpu: %s requires float32 input, got %s", op, a.DType()))
	}
	return a.AsFloat32()
}
