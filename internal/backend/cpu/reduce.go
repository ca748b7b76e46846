// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"math"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Sum reduces all elements to a scalar of shape [1].
func (b *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	src := float32Data(x, "Sum")
	total := float32(0)
	for _, v := range src {
		total += v
	}
	out := tensor.NewRawZeros(tensor.Shape{1}, tensor.Float32)
	out.AsFloat32()[0] = total
	return out
}

// SumDim sums along dim.
func (b *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	src := float32Data(x, "SumDim")
	outer, size, inner := reduceDims(x.Shape(), dim, "SumDim")
	out := tensor.NewRawZeros(reducedShape(x.Shape(), dim, keepDim), tensor.Float32)
	dst := out.AsFloat32()
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			acc := float32(0)
			for d := 0; d < size; d++ {
				acc += src[(o*size+d)*inner+i]
			}
			dst[o*inner+i] = acc
		}
	}
	return out
}

// MeanDim averages along dim.
func (b *Backend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	size := x.Shape()[normalizeDim(dim, len(x.Shape()), "MeanDim")]
	return b.MulScalar(b.SumDim(x, dim, keepDim), 1/float32(size))
}

// MaxDim reduces along dim keeping the maximum. The second return value
// holds int32 argmax indices along the reduced dimension.
func (b *Backend) MaxDim(x *tensor.RawTensor, dim int, keepDim bool) (*tensor.RawTensor, *tensor.RawTensor) {
	src := float32Data(x, "MaxDim")
	outer, size, inner := reduceDims(x.Shape(), dim, "MaxDim")
	outShape := reducedShape(x.Shape(), dim, keepDim)
	out := tensor.NewRawZeros(outShape, tensor.Float32)
	indices := tensor.NewRawZeros(outShape, tensor.Int32)
	dst := out.AsFloat32()
	idx := indices.AsInt32()
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			best := float32(math.Inf(-1))
			bestIdx := int32(0)
			for d := 0; d < size; d++ {
				if v := src[(o*size+d)*inner+i]; v > best {
					best = v
					bestIdx = int32(d)
				}
			}
			dst[o*inner+i] = best
			idx[o*inner+i] = bestIdx
		}
	}
	return out, indices
}

// Argmax returns int32 indices of the maximum along dim, with dim removed.
func (b *Backend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	_, indices := b.MaxDim(x, dim, false)
	return indices
}

// Gather selects one element per row of a [N, C] tensor using int32 indices
// [N]: result[i] = x[i, indices[i]].
func (b *Backend) Gather(x, indices *tensor.RawTensor) *tensor.RawTensor {
	src := float32Data(x, "Gather")
	xs := x.Shape()
	if len(xs) != 2 {
		panic(fmt.Sprintf("cpu: Gather requires rank-2 input, got %v", xs))
	}
	idx := indices.AsInt32()
	n, c := xs[0], xs[1]
	if len(idx) != n {
		panic(fmt.Sprintf("cpu: Gather index count %d does not match rows %d", len(idx), n))
	}
	out := tensor.NewRawZeros(tensor.Shape{n}, tensor.Float32)
	dst := out.AsFloat32()
	for i := 0; i < n; i++ {
		j := int(idx[i])
		if j < 0 || j >= c {
			panic(fmt.Sprintf("cpu: Gather index %d out of range for %d columns", j, c))
		}
		dst[i] = src[i*c+j]
	}
	return out
}

func normalizeDim(dim, rank int, op string) int {
	if dim < 0 {
		dim += rank
	}
	if dim < 0 || dim >= rank {
		panic(fmt.Sprintf("cpu: %s dim %d out of range for rank %d", op, dim, rank))
	}
	return dim
}

func reduceDims(shape tensor.Shape, dim int, op string) (outer, size, inner int) {
	dim = normalizeDim(dim, len(shape), op)
	outer, inner = 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	return outer, shape[dim], inner
}

func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	dim = normalizeDim(dim, len(shape), "reduce")
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	for i, d := range shape {
		if i != dim {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		out = tensor.Shape{1}
	}
	return out
}
