// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"math"

	"github.com/mihirkhandekar/supervision/internal/parallel"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// MaxPool2D pools input [N, C, H, W] with a square window. The returned
// int32 tensor holds, for each output position, the flat index of the
// window maximum within its (n, c) plane; MaxPool2DBackward routes gradients
// through those indices.
func (b *Backend) MaxPool2D(input *tensor.RawTensor, kernelSize, stride int) (*tensor.RawTensor, *tensor.RawTensor) {
	in := float32Data(input, "MaxPool2D")
	is := input.Shape()
	if len(is) != 4 {
		panic(fmt.Sprintf("cpu: MaxPool2D requires rank-4 input, got %v", is))
	}
	n, c, h, w := is[0], is[1], is[2], is[3]
	oh := (h-kernelSize)/stride + 1
	ow := (w-kernelSize)/stride + 1
	if oh <= 0 || ow <= 0 {
		panic(fmt.Sprintf("cpu: MaxPool2D output would be empty for input %v, kernel %d, stride %d",
			is, kernelSize, stride))
	}

	out := tensor.NewRawZeros(tensor.Shape{n, c, oh, ow}, tensor.Float32)
	indices := tensor.NewRawZeros(tensor.Shape{n, c, oh, ow}, tensor.Int32)
	dst := out.AsFloat32()
	idx := indices.AsInt32()

	parallel.ForBatch(n, c, func(s, ch int) {
		plane := in[(s*c+ch)*h*w : (s*c+ch+1)*h*w]
		i := (s*c + ch) * oh * ow
		for oy := 0; oy < oh; oy++ {
			for ox := 0; ox < ow; ox++ {
				best := float32(math.Inf(-1))
				bestIdx := 0
				for ky := 0; ky < kernelSize; ky++ {
					iy := oy*stride + ky
					for kx := 0; kx < kernelSize; kx++ {
						ix := ox*stride + kx
						if v := plane[iy*w+ix]; v > best {
							best = v
							bestIdx = iy*w + ix
						}
					}
				}
				dst[i] = best
				idx[i] = int32(bestIdx)
				i++
			}
		}
	}, parallel.DefaultConfig())
	return out, indices
}

// MaxPool2DBackward scatters each output gradient to the input position that
// produced the window maximum.
func (b *Backend) MaxPool2DBackward(outputGrad, maxIndices *tensor.RawTensor, inputShape tensor.Shape) *tensor.RawTensor {
	gd := float32Data(outputGrad, "MaxPool2DBackward")
	idx := maxIndices.AsInt32()
	gs := outputGrad.Shape()

	n, c := gs[0], gs[1]
	h, w := inputShape[2], inputShape[3]
	planeOut := gs[2] * gs[3]

	out := tensor.NewRawZeros(inputShape, tensor.Float32)
	dst := out.AsFloat32()
	parallel.ForBatch(n, c, func(s, ch int) {
		base := (s*c + ch) * h * w
		off := (s*c + ch) * planeOut
		for i := 0; i < planeOut; i++ {
			dst[base+int(idx[off+i])] += gd[off+i]
		}
	}, parallel.DefaultConfig())
	return out
}
