// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"

	"github.com/mihirkhandekar/supervision/internal/parallel"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Conv2D applies kernel [Cout, Cin, KH, KW] over input [N, Cin, H, W] using
// im2col followed by a matrix multiply per sample.
func (b *Backend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	in := float32Data(input, "Conv2D")
	kd := float32Data(kernel, "Conv2D")
	is, ks := input.Shape(), kernel.Shape()
	if len(is) != 4 || len(ks) != 4 {
		panic(fmt.Sprintf("cpu: Conv2D requires rank-4 input and kernel, got %v and %v", is, ks))
	}
	if is[1] != ks[1] {
		panic(fmt.Sprintf("cpu: Conv2D channel mismatch: input %v, kernel %v", is, ks))
	}

	n, cin, h, w := is[0], is[1], is[2], is[3]
	cout, kh, kw := ks[0], ks[2], ks[3]
	oh := (h+2*padding-kh)/stride + 1
	ow := (w+2*padding-kw)/stride + 1
	if oh <= 0 || ow <= 0 {
		panic(fmt.Sprintf("cpu: Conv2D output would be empty for input %v, kernel %v, stride %d, padding %d",
			is, ks, stride, padding))
	}

	out := tensor.NewRawZeros(tensor.Shape{n, cout, oh, ow}, tensor.Float32)
	dst := out.AsFloat32()

	// Samples are independent, so they fan out over workers with one
	// column buffer per iteration.
	colRows := cin * kh * kw
	parallel.For(n, func(s int) {
		cols := make([]float32, colRows*oh*ow)
		im2col(cols, in[s*cin*h*w:(s+1)*cin*h*w], cin, h, w, kh, kw, oh, ow, stride, padding)
		matmul2d(dst[s*cout*oh*ow:(s+1)*cout*oh*ow], kd, cols, cout, colRows, oh*ow)
	}, parallel.DefaultConfig())
	return out
}

// Conv2DInputBackward computes the input gradient: for each sample,
// kernel^T [Cin*KH*KW, Cout] times the output gradient, folded back with
// col2im.
func (b *Backend) Conv2DInputBackward(outputGrad, kernel *tensor.RawTensor, inputShape tensor.Shape, stride, padding int) *tensor.RawTensor {
	gd := float32Data(outputGrad, "Conv2DInputBackward")
	kd := float32Data(kernel, "Conv2DInputBackward")
	gs, ks := outputGrad.Shape(), kernel.Shape()

	n, cin, h, w := inputShape[0], inputShape[1], inputShape[2], inputShape[3]
	cout, kh, kw := ks[0], ks[2], ks[3]
	oh, ow := gs[2], gs[3]
	colRows := cin * kh * kw

	// kernel [Cout, Cin*KH*KW] transposed once up front.
	kt := make([]float32, colRows*cout)
	for o := 0; o < cout; o++ {
		for r := 0; r < colRows; r++ {
			kt[r*cout+o] = kd[o*colRows+r]
		}
	}

	out := tensor.NewRawZeros(inputShape, tensor.Float32)
	dst := out.AsFloat32()
	parallel.For(n, func(s int) {
		cols := make([]float32, colRows*oh*ow)
		matmul2d(cols, kt, gd[s*cout*oh*ow:(s+1)*cout*oh*ow], colRows, cout, oh*ow)
		col2im(dst[s*cin*h*w:(s+1)*cin*h*w], cols, cin, h, w, kh, kw, oh, ow, stride, padding)
	}, parallel.DefaultConfig())
	return out
}

// Conv2DKernelBackward computes the kernel gradient: the output gradient
// [Cout, OH*OW] times the im2col columns transposed, accumulated over the
// batch.
func (b *Backend) Conv2DKernelBackward(outputGrad, input *tensor.RawTensor, kernelShape tensor.Shape, stride, padding int) *tensor.RawTensor {
	gd := float32Data(outputGrad, "Conv2DKernelBackward")
	in := float32Data(input, "Conv2DKernelBackward")
	gs, is := outputGrad.Shape(), input.Shape()

	n, cin, h, w := is[0], is[1], is[2], is[3]
	cout, kh, kw := kernelShape[0], kernelShape[2], kernelShape[3]
	oh, ow := gs[2], gs[3]
	colRows := cin * kh * kw

	out := tensor.NewRawZeros(kernelShape, tensor.Float32)
	dst := out.AsFloat32()
	cols := make([]float32, colRows*oh*ow)
	colsT := make([]float32, oh*ow*colRows)
	for s := 0; s < n; s++ {
		im2col(cols, in[s*cin*h*w:(s+1)*cin*h*w], cin, h, w, kh, kw, oh, ow, stride, padding)
		for r := 0; r < colRows; r++ {
			for c := 0; c < oh*ow; c++ {
				colsT[c*colRows+r] = cols[r*oh*ow+c]
			}
		}
		// Accumulates across samples since matmul2d adds into dst.
		matmul2d(dst, gd[s*cout*oh*ow:(s+1)*cout*oh*ow], colsT, cout, oh*ow, colRows)
	}
	return out
}

// im2col unfolds one sample [Cin, H, W] into a [Cin*KH*KW, OH*OW] column
// matrix. Out-of-bounds positions read as zero.
func im2col(cols, img []float32, cin, h, w, kh, kw, oh, ow, stride, padding int) {
	row := 0
	for c := 0; c < cin; c++ {
		plane := img[c*h*w : (c+1)*h*w]
		for ky := 0; ky < kh; ky++ {
			for kx := 0; kx < kw; kx++ {
				dst := cols[row*oh*ow : (row+1)*oh*ow]
				i := 0
				for oy := 0; oy < oh; oy++ {
					iy := oy*stride + ky - padding
					for ox := 0; ox < ow; ox++ {
						ix := ox*stride + kx - padding
						if iy >= 0 && iy < h && ix >= 0 && ix < w {
							dst[i] = plane[iy*w+ix]
						} else {
							dst[i] = 0
						}
						i++
					}
				}
				row++
			}
		}
	}
}

// col2im folds a column matrix back into one sample [Cin, H, W], accumulating
// overlapping contributions.
func col2im(img, cols []float32, cin, h, w, kh, kw, oh, ow, stride, padding int) {
	row := 0
	for c := 0; c < cin; c++ {
		plane := img[c*h*w : (c+1)*h*w]
		for ky := 0; ky < kh; ky++ {
			for kx := 0; kx < kw; kx++ {
				src := cols[row*oh*ow : (row+1)*oh*ow]
				i := 0
				for oy := 0; oy < oh; oy++ {
					iy := oy*stride + ky - padding
					for ox := 0; ox < ow; ox++ {
						ix := ox*stride + kx - padding
						if iy >= 0 && iy < h && ix >= 0 && ix < w {
							plane[iy*w+ix] += src[i]
						}
						i++
					}
				}
				row++
			}
		}
	}
}
