// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nn

import (
	"math"
	"math/rand"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// xavierInit fills a new tensor with values from N(0, sqrt(2/(fanIn+fanOut))).
func xavierInit(shape tensor.Shape, fanIn, fanOut int, rng *rand.Rand) *tensor.RawTensor {
	stddev := float32(math.Sqrt(2.0 / float64(fanIn+fanOut)))
	return tensor.NewRawRandn(shape, stddev, rng)
}
