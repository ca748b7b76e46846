// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// MatMul multiplies [M, K] x [K, N] into [M, N]. Rank-3 inputs with a shared
// leading batch dimension are multiplied per batch.
func (b *Backend) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	xd := float32Data(x, "MatMul")
	yd := float32Data(y, "MatMul")
	xs, ys := x.Shape(), y.Shape()

	switch {
	case len(xs) == 2 && len(ys) == 2:
		if xs[1] != ys[0] {
			panic(fmt.Sprintf("cpu: MatMul inner dimensions mismatch: %v x %v", xs, ys))
		}
		out := tensor.NewRawZeros(tensor.Shape{xs[0], ys[1]}, tensor.Float32)
		matmul2d(out.AsFloat32(), xd, yd, xs[0], xs[1], ys[1])
		return out

	case len(xs) == 3 && len(ys) == 3:
		if xs[0] != ys[0] || xs[2] != ys[1] {
			panic(fmt.Sprintf("cpu: batched MatMul shape mismatch: %v x %v", xs, ys))
		}
		batch, m, k, n := xs[0], xs[1], xs[2], ys[2]
		out := tensor.NewRawZeros(tensor.Shape{batch, m, n}, tensor.Float32)
		dst := out.AsFloat32()
		for i := 0; i < batch; i++ {
			matmul2d(dst[i*m*n:(i+1)*m*n], xd[i*m*k:(i+1)*m*k], yd[i*k*n:(i+1)*k*n], m, k, n)
		}
		return out

	default:
		panic(fmt.Sprintf("cpu: MatMul requires rank-2 or rank-3 tensors, got %v x %v", xs, ys))
	}
}

// matmul2d computes dst[M,N] = a[M,K] * b[K,N] with the k-loop in the middle
// so the inner loop walks both b and dst contiguously.
func matmul2d(dst, a, b []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		ar := a[i*k : (i+1)*k]
		dr := dst[i*n : (i+1)*n]
		for p := 0; p < k; p++ {
			av := ar[p]
			if av == 0 {
				continue
			}
			br := b[p*n : (p+1)*n]
			for j := range dr {
				dr[j] += av * br[j]
			}
		}
	}
}
