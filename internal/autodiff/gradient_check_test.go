// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package autodiff

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihirkhandekar/supervision/internal/backend/cpu"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// numericalGrad perturbs each element of target and measures the change in
// the scalar produced by forward.
func numericalGrad(target *tensor.RawTensor, forward func() float32) []float32 {
	const eps = 1e-2
	data := target.AsFloat32()
	grads := make([]float32, len(data))
	for i := range data {
		orig := data[i]
		data[i] = orig + eps
		plus := forward()
		data[i] = orig - eps
		minus := forward()
		data[i] = orig
		grads[i] = (plus - minus) / (2 * eps)
	}
	return grads
}

func TestConv2DGradientMatchesNumerical(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	backend := cpu.New()

	input := tensor.NewRawRandn(tensor.Shape{1, 2, 4, 4}, 1, rng)
	kernel := tensor.NewRawRandn(tensor.Shape{3, 2, 3, 3}, 0.5, rng)

	forward := func() float32 {
		return backend.Sum(backend.Conv2D(input, kernel, 1, 1)).AsFloat32()[0]
	}

	ad := New(backend)
	loss := ad.Sum(ad.Conv2D(input, kernel, 1, 1))
	grads, err := ad.Tape().Backward(loss, ad)
	require.NoError(t, err)

	wantInput := numericalGrad(input, forward)
	gotInput := grads[input].AsFloat32()
	for i := range wantInput {
		assert.InDelta(t, wantInput[i], gotInput[i], 5e-2)
	}

	wantKernel := numericalGrad(kernel, forward)
	gotKernel := grads[kernel].AsFloat32()
	for i := range wantKernel {
		assert.InDelta(t, wantKernel[i], gotKernel[i], 5e-2)
	}
}

func TestSoftmaxGradientMatchesNumerical(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	backend := cpu.New()

	logits := tensor.NewRawRandn(tensor.Shape{2, 5}, 1, rng)
	weights := tensor.NewRawRandn(tensor.Shape{2, 5}, 1, rng)

	forward := func() float32 {
		return backend.Sum(backend.Mul(backend.Softmax(logits, 1), weights)).AsFloat32()[0]
	}

	ad := New(backend)
	loss := ad.Sum(ad.Mul(ad.Softmax(logits, 1), weights))
	grads, err := ad.Tape().Backward(loss, ad)
	require.NoError(t, err)

	want := numericalGrad(logits, forward)
	got := grads[logits].AsFloat32()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 5e-2)
	}
}
