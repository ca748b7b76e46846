// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihirkhandekar/supervision/internal/nn"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

func param(t *testing.T, values []float32) *nn.Parameter[tensor.Backend] {
	t.Helper()
	raw, err := tensor.NewRawFromFloat32(values, tensor.Shape{len(values)})
	require.NoError(t, err)
	return nn.NewParameter[tensor.Backend]("w", raw)
}

func gradsFor(t *testing.T, p *nn.Parameter[tensor.Backend], values []float32) map[*tensor.RawTensor]*tensor.RawTensor {
	t.Helper()
	g, err := tensor.NewRawFromFloat32(values, tensor.Shape{len(values)})
	require.NoError(t, err)
	return map[*tensor.RawTensor]*tensor.RawTensor{p.Value: g}
}

func TestSGDVanillaStep(t *testing.T) {
	p := param(t, []float32{1, 2})
	sgd := NewSGD[tensor.Backend](0.1, 0, 0)

	sgd.Step([]*nn.Parameter[tensor.Backend]{p}, gradsFor(t, p, []float32{1, -1}))
	assert.InDelta(t, 0.9, p.Data()[0], 1e-6)
	assert.InDelta(t, 2.1, p.Data()[1], 1e-6)
}

func TestSGDMomentumAccumulates(t *testing.T) {
	p := param(t, []float32{0})
	sgd := NewSGD[tensor.Backend](1, 0.9, 0)

	// First step: v = 1, w = -1. Second: v = 0.9 + 1 = 1.9, w = -2.9.
	sgd.Step([]*nn.Parameter[tensor.Backend]{p}, gradsFor(t, p, []float32{1}))
	assert.InDelta(t, -1, p.Data()[0], 1e-6)
	sgd.Step([]*nn.Parameter[tensor.Backend]{p}, gradsFor(t, p, []float32{1}))
	assert.InDelta(t, -2.9, p.Data()[0], 1e-6)
}

func TestSGDWeightDecay(t *testing.T) {
	p := param(t, []float32{10})
	sgd := NewSGD[tensor.Backend](0.1, 0, 0.5)

	// v = 0 + 0 + 0.5*10 = 5, w = 10 - 0.5 = 9.5.
	sgd.Step([]*nn.Parameter[tensor.Backend]{p}, gradsFor(t, p, []float32{0}))
	assert.InDelta(t, 9.5, p.Data()[0], 1e-6)
}

func TestSGDSkipsParamsWithoutGrads(t *testing.T) {
	p := param(t, []float32{3})
	sgd := NewSGD[tensor.Backend](0.1, 0.9, 0.1)

	sgd.Step([]*nn.Parameter[tensor.Backend]{p}, nil)
	assert.Equal(t, float32(3), p.Data()[0])
}
