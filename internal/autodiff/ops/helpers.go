// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// reduceBroadcast folds a gradient computed in the broadcast output shape
// back down to the original input shape by summing over broadcast
// dimensions.
func reduceBroadcast(grad *tensor.RawTensor, inputShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(inputShape) {
		return grad
	}

	result := grad
	// Sum away extra leading dimensions.
	for len(result.Shape()) > len(inputShape) {
		result = backend.SumDim(result, 0, false)
	}
	// Sum dimensions the input held at size 1.
	for d := range inputShape {
		if inputShape[d] == 1 && result.Shape()[d] != 1 {
			result = backend.SumDim(result, d, true)
		}
	}
	return backend.Reshape(result, inputShape)
}

// onesLike returns a tensor of ones with the same shape as t.
func onesLike(t *tensor.RawTensor) *tensor.RawTensor {
	return tensor.NewRawFull(t.Shape(), 1)
}
