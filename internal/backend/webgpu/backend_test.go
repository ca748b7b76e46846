// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package webgpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// newTestBackend skips the test when no WebGPU implementation is present.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := New()
	if err != nil {
		t.Skipf("webgpu not available: %v", err)
	}
	t.Cleanup(backend.Release)
	return backend
}

func rawF32(t *testing.T, shape tensor.Shape, values []float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRawFromFloat32(values, shape)
	require.NoError(t, err)
	return raw
}

func TestBackendIdentity(t *testing.T) {
	backend := newTestBackend(t)
	assert.Equal(t, "webgpu", backend.Name())
	assert.Equal(t, tensor.WebGPU, backend.Device())
}

func TestAdd(t *testing.T) {
	backend := newTestBackend(t)
	a := rawF32(t, tensor.Shape{4}, []float32{1, 2, 3, 4})
	b := rawF32(t, tensor.Shape{4}, []float32{10, 20, 30, 40})
	result := backend.Add(a, b)
	assert.Equal(t, []float32{11, 22, 33, 44}, result.AsFloat32())
}

func TestBroadcastFallsBackToCPU(t *testing.T) {
	backend := newTestBackend(t)
	a := rawF32(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
	b := rawF32(t, tensor.Shape{1, 2}, []float32{10, 20})
	result := backend.Add(a, b)
	assert.Equal(t, []float32{11, 22, 13, 24}, result.AsFloat32())
}

func TestScalarOps(t *testing.T) {
	backend := newTestBackend(t)
	a := rawF32(t, tensor.Shape{3}, []float32{2, 4, 6})
	assert.Equal(t, []float32{1, 2, 3}, backend.DivScalar(a, 2).AsFloat32())
	assert.Equal(t, []float32{3, 5, 7}, backend.AddScalar(a, 1).AsFloat32())
}

func TestRelu(t *testing.T) {
	backend := newTestBackend(t)
	a := rawF32(t, tensor.Shape{4}, []float32{-2, -0.5, 0, 3})
	assert.Equal(t, []float32{0, 0, 0, 3}, backend.Relu(a).AsFloat32())
}

func TestMatMul(t *testing.T) {
	backend := newTestBackend(t)
	a := rawF32(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	b := rawF32(t, tensor.Shape{3, 2}, []float32{7, 8, 9, 10, 11, 12})
	result := backend.MatMul(a, b)
	assert.Equal(t, tensor.Shape{2, 2}, result.Shape())
	assert.Equal(t, []float32{58, 64, 139, 154}, result.AsFloat32())
}

func TestConvDelegatesToCPU(t *testing.T) {
	backend := newTestBackend(t)
	input := rawF32(t, tensor.Shape{1, 1, 2, 2}, []float32{1, 2, 3, 4})
	kernel := rawF32(t, tensor.Shape{1, 1, 1, 1}, []float32{2})
	result := backend.Conv2D(input, kernel, 1, 0)
	assert.Equal(t, tensor.Shape{1, 1, 2, 2}, result.Shape())
	assert.Equal(t, []float32{2, 4, 6, 8}, result.AsFloat32())
}
