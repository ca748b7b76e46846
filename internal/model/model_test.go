// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package model

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihirkhandekar/supervision/internal/backend/cpu"
	"github.com/mihirkhandekar/supervision/internal/nn"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// tinyModel builds a small conv net with the same layer vocabulary as the
// full assembly but cheap enough for tests.
func tinyModel(backend tensor.Backend, rng *rand.Rand) *Model[tensor.Backend] {
	m := New[tensor.Backend](backend)
	m.Add("conv2d_1", nn.NewConv2D[tensor.Backend](backend, 1, 4, 3, 1, 1, "relu", rng))
	m.Add("maxpool_1", nn.NewMaxPool2D[tensor.Backend](backend, 2, 2))
	m.Add("flatten", nn.NewFlatten[tensor.Backend](backend))
	m.Add("dense_1", nn.NewLinear[tensor.Backend](backend, 4*4*4, 3, "", rng))
	m.Add("softmax", nn.NewSoftmax[tensor.Backend](backend, 1))
	return m
}

func TestForwardCachesLayerOutputs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := tinyModel(cpu.New(), rng)

	input := tensor.NewRawFull(tensor.Shape{1, 1, 8, 8}, 0.5)
	out := m.Forward(input)
	assert.Equal(t, tensor.Shape{1, 3}, out.Shape())

	conv, err := m.LayerOutput("conv2d_1")
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 4, 8, 8}, conv.Shape())

	pooled, err := m.LayerOutput("maxpool_1")
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 4, 4, 4}, pooled.Shape())

	assert.Equal(t, out, m.Output())
	assert.Equal(t, input, m.Input())
}

func TestLayerOutputUnknownName(t *testing.T) {
	m := tinyModel(cpu.New(), rand.New(rand.NewSource(2)))
	m.Forward(tensor.NewRawFull(tensor.Shape{1, 1, 8, 8}, 1))

	_, err := m.LayerOutput("conv2d_99")
	assert.ErrorIs(t, err, ErrLayerNotFound)
}

func TestHasLayerBeforeForward(t *testing.T) {
	m := tinyModel(cpu.New(), rand.New(rand.NewSource(3)))
	assert.True(t, m.HasLayer("dense_1"))
	assert.False(t, m.HasLayer("dense_9"))
}

func TestDuplicateLayerNamePanics(t *testing.T) {
	backend := cpu.New()
	m := New[tensor.Backend](backend)
	m.Add("maxpool_1", nn.NewMaxPool2D[tensor.Backend](backend, 2, 2))
	assert.Panics(t, func() {
		m.Add("maxpool_1", nn.NewMaxPool2D[tensor.Backend](backend, 2, 2))
	})
}

func TestSoftmaxOutputSumsToOne(t *testing.T) {
	m := tinyModel(cpu.New(), rand.New(rand.NewSource(4)))
	out := m.Forward(tensor.NewRawFull(tensor.Shape{1, 1, 8, 8}, 0.1))

	sum := float32(0)
	for _, v := range out.AsFloat32() {
		sum += v
	}
	assert.InDelta(t, 1, sum, 1e-5)
}

func TestStateDictRoundtrip(t *testing.T) {
	backend := cpu.New()
	src := tinyModel(backend, rand.New(rand.NewSource(5)))
	dst := tinyModel(backend, rand.New(rand.NewSource(6)))

	path := filepath.Join(t.TempDir(), "tiny.sprv")
	require.NoError(t, src.Save(path))
	require.NoError(t, dst.Load(path))

	input := tensor.NewRawFull(tensor.Shape{1, 1, 8, 8}, 0.3)
	assert.Equal(t, src.Forward(input).AsFloat32(), dst.Forward(input).AsFloat32())
}

func TestLoadStateDictMissingTensor(t *testing.T) {
	m := tinyModel(cpu.New(), rand.New(rand.NewSource(7)))
	err := m.LoadStateDict(map[string]*tensor.RawTensor{})
	assert.Error(t, err)
}

func TestLoadStateDictShapeMismatch(t *testing.T) {
	m := tinyModel(cpu.New(), rand.New(rand.NewSource(8)))
	state := m.StateDict()
	state["conv2d_1.weight"] = tensor.NewRawZeros(tensor.Shape{1, 1}, tensor.Float32)
	assert.Error(t, m.LoadStateDict(state))
}

func TestAlexNetLayerNames(t *testing.T) {
	m := NewAlexNet(cpu.New(), ClassCount, rand.New(rand.NewSource(9)))
	assert.Equal(t, []string{
		"conv2d_1", "batchnorm_1", "maxpool_1",
		"conv2d_2", "batchnorm_2", "maxpool_2",
		"conv2d_3", "conv2d_4", "conv2d_5", "maxpool_3",
		"flatten",
		"dense_1", "dropout_1", "dense_2", "dropout_2", "dense_3",
		"softmax",
	}, m.LayerNames())
	assert.True(t, m.HasLayer(DefaultTargetLayer))
}

func TestAlexNetParameterShapes(t *testing.T) {
	m := NewAlexNet(cpu.New(), ClassCount, rand.New(rand.NewSource(10)))
	state := m.StateDict()

	assert.Equal(t, tensor.Shape{96, 3, 11, 11}, state["conv2d_1.weight"].Shape())
	assert.Equal(t, tensor.Shape{256, 96, 5, 5}, state["conv2d_2.weight"].Shape())
	assert.Equal(t, tensor.Shape{256, 384, 3, 3}, state["conv2d_5.weight"].Shape())
	assert.Equal(t, tensor.Shape{9216, 4096}, state["dense_1.weight"].Shape())
	assert.Equal(t, tensor.Shape{4096, 100}, state["dense_3.weight"].Shape())
	assert.Equal(t, tensor.Shape{96, 1, 1}, state["batchnorm_1.running_mean"].Shape())
}
