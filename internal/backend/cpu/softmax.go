// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"math"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Softmax normalizes along dim with the max subtracted for stability.
func (b *Backend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	src := float32Data(x, "Softmax")
	outer, size, inner := reduceDims(x.Shape(), dim, "Softmax")
	out := tensor.NewRawZeros(x.Shape(), tensor.Float32)
	dst := out.AsFloat32()

	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			max := float32(math.Inf(-1))
			for d := 0; d < size; d++ {
				if v := src[(o*size+d)*inner+i]; v > max {
					max = v
				}
			}
			sum := float32(0)
			for d := 0; d < size; d++ {
				e := float32(math.Exp(float64(src[(o*size+d)*inner+i] - max)))
				dst[(o*size+d)*inner+i] = e
				sum += e
			}
			for d := 0; d < size; d++ {
				dst[(o*size+d)*inner+i] /= sum
			}
		}
	}
	return out
}

// CrossEntropy computes mean softmax cross-entropy between logits [N, C] and
// int32 class targets [N], returning a scalar of shape [1].
func (b *Backend) CrossEntropy(logits, targets *tensor.RawTensor) *tensor.RawTensor {
	src := float32Data(logits, "CrossEntropy")
	ls := logits.Shape()
	if len(ls) != 2 {
		panic(fmt.Sprintf("cpu: CrossEntropy requires rank-2 logits, got %v", ls))
	}
	tgt := targets.AsInt32()
	n, c := ls[0], ls[1]
	if len(tgt) != n {
		panic(fmt.Sprintf("cpu: CrossEntropy target count %d does not match batch %d", len(tgt), n))
	}

	loss := float64(0)
	for i := 0; i < n; i++ {
		row := src[i*c : (i+1)*c]
		max := float32(math.Inf(-1))
		for _, v := range row {
			if v > max {
				max = v
			}
		}
		sum := float64(0)
		for _, v := range row {
			sum += math.Exp(float64(v - max))
		}
		t := int(tgt[i])
		if t < 0 || t >= c {
			panic(fmt.Sprintf("cpu: CrossEntropy target %d out of range for %d classes", t, c))
		}
		loss += math.Log(sum) - float64(row[t]-max)
	}

	out := tensor.NewRawZeros(tensor.Shape{1}, tensor.Float32)
	out.AsFloat32()[0] = float32(loss / float64(n))
	return out
}
