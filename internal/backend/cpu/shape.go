// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Reshape returns a copy of x with a new shape. The element count must
// match.
func (b *Backend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if shape.NumElements() != x.NumElements() {
		panic(fmt.Sprintf("cpu: Reshape %v to %v: element count mismatch", x.Shape(), shape))
	}
	out := x.Clone()
	view, err := out.View(shape)
	if err != nil {
		panic(fmt.Sprintf("cpu: Reshape: %v", err))
	}
	return view
}

// Transpose swaps two dimensions, materializing the result.
func (b *Backend) Transpose(x *tensor.RawTensor, dim0, dim1 int) *tensor.RawTensor {
	src := float32Data(x, "Transpose")
	shape := x.Shape()
	rank := len(shape)
	dim0 = normalizeDim(dim0, rank, "Transpose")
	dim1 = normalizeDim(dim1, rank, "Transpose")

	outShape := shape.Clone()
	outShape[dim0], outShape[dim1] = outShape[dim1], outShape[dim0]
	out := tensor.NewRawZeros(outShape, tensor.Float32)
	dst := out.AsFloat32()

	inStrides := shape.ComputeStrides()
	outStrides := outShape.ComputeStrides()
	idx := make([]int, rank)
	for flat := range dst {
		rem := flat
		for d := 0; d < rank; d++ {
			idx[d] = rem / outStrides[d]
			rem %= outStrides[d]
		}
		idx[dim0], idx[dim1] = idx[dim1], idx[dim0]
		srcFlat := 0
		for d := 0; d < rank; d++ {
			srcFlat += idx[d] * inStrides[d]
		}
		dst[flat] = src[srcFlat]
	}
	return out
}
