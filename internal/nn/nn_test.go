// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihirkhandekar/supervision/internal/backend/cpu"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

func TestConv2DOutputShape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := cpu.New()
	layer := NewConv2D(b, 3, 96, 11, 4, 5, "relu", rng)

	input := tensor.NewRawZeros(tensor.Shape{2, 3, 224, 224}, tensor.Float32)
	out := layer.Forward(input)
	assert.Equal(t, tensor.Shape{2, 96, 56, 56}, out.Shape())
}

func TestConv2DActivationApplied(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	b := cpu.New()
	layer := NewConv2D(b, 1, 1, 1, 1, 0, "relu", rng)

	input, err := tensor.NewRawFromFloat32([]float32{-100, 100}, tensor.Shape{1, 1, 1, 2})
	require.NoError(t, err)
	out := layer.Forward(input)
	for _, v := range out.AsFloat32() {
		assert.GreaterOrEqual(t, v, float32(0))
	}

	layer.SetActivation("")
	assert.Equal(t, "", layer.Activation())
}

func TestLinearForward(t *testing.T) {
	b := cpu.New()
	layer := NewLinear(b, 2, 3, "", rand.New(rand.NewSource(3)))
	copy(layer.weight.Data(), []float32{1, 2, 3, 4, 5, 6})
	copy(layer.bias.Data(), []float32{1, 1, 1})

	input, err := tensor.NewRawFromFloat32([]float32{1, 1}, tensor.Shape{1, 2})
	require.NoError(t, err)
	out := layer.Forward(input)
	assert.Equal(t, []float32{6, 8, 10}, out.AsFloat32())
}

func TestMaxPool2DShape(t *testing.T) {
	b := cpu.New()
	layer := NewMaxPool2D(b, 3, 2)

	input := tensor.NewRawZeros(tensor.Shape{1, 96, 56, 56}, tensor.Float32)
	out := layer.Forward(input)
	assert.Equal(t, tensor.Shape{1, 96, 27, 27}, out.Shape())
}

func TestBatchNorm2DTrainingNormalizes(t *testing.T) {
	b := cpu.New()
	bn := NewBatchNorm2D(b, 1)
	bn.SetTraining(true)

	input, err := tensor.NewRawFromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
	require.NoError(t, err)
	out := bn.Forward(input)

	// Normalized output has zero mean and (near) unit variance.
	data := out.AsFloat32()
	mean := float32(0)
	for _, v := range data {
		mean += v
	}
	mean /= 4
	assert.InDelta(t, 0, mean, 1e-5)
	assert.InDelta(t, -1.34, data[0], 0.01)
	assert.InDelta(t, 1.34, data[3], 0.01)
}

func TestBatchNorm2DInferenceUsesRunningStats(t *testing.T) {
	b := cpu.New()
	bn := NewBatchNorm2D(b, 1)
	bn.SetTraining(false)

	// Fresh running stats are mean 0, var 1: output is roughly the input.
	input, err := tensor.NewRawFromFloat32([]float32{1, -1}, tensor.Shape{1, 1, 1, 2})
	require.NoError(t, err)
	out := bn.Forward(input)
	assert.InDelta(t, 1, out.AsFloat32()[0], 1e-3)
	assert.InDelta(t, -1, out.AsFloat32()[1], 1e-3)
}

func TestBatchNorm2DBuffers(t *testing.T) {
	bn := NewBatchNorm2D(cpu.New(), 4)
	buffers := bn.Buffers()
	require.Len(t, buffers, 2)
	assert.Equal(t, "running_mean", buffers[0].Name)
	assert.Equal(t, "running_var", buffers[1].Name)
	assert.Len(t, bn.Parameters(), 2)
}

func TestDropoutInferenceIdentity(t *testing.T) {
	b := cpu.New()
	d := NewDropout(b, 0.5, rand.New(rand.NewSource(4)))
	d.SetTraining(false)

	input, err := tensor.NewRawFromFloat32([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)
	assert.Equal(t, input, d.Forward(input))
}

func TestDropoutTrainingMasksAndScales(t *testing.T) {
	b := cpu.New()
	d := NewDropout(b, 0.5, rand.New(rand.NewSource(5)))
	d.SetTraining(true)

	input := tensor.NewRawFull(tensor.Shape{1000}, 1)
	out := d.Forward(input)

	zeros := 0
	for _, v := range out.AsFloat32() {
		if v == 0 {
			zeros++
		} else {
			assert.InDelta(t, 2, v, 1e-6)
		}
	}
	assert.Greater(t, zeros, 300)
	assert.Less(t, zeros, 700)
}

func TestFlatten(t *testing.T) {
	b := cpu.New()
	f := NewFlatten(b)
	input := tensor.NewRawZeros(tensor.Shape{2, 256, 6, 6}, tensor.Float32)
	assert.Equal(t, tensor.Shape{2, 9216}, f.Forward(input).Shape())
}

func TestAccuracy(t *testing.T) {
	b := cpu.New()
	preds, err := tensor.NewRawFromFloat32([]float32{
		0.9, 0.1,
		0.2, 0.8,
		0.6, 0.4,
	}, tensor.Shape{3, 2})
	require.NoError(t, err)
	targets, err := tensor.NewRawFromInt32([]int32{0, 1, 1}, tensor.Shape{3})
	require.NoError(t, err)

	assert.InDelta(t, 2.0/3.0, Accuracy(b, preds, targets), 1e-6)
}
