// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package autodiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihirkhandekar/supervision/internal/autodiff/ops"
	"github.com/mihirkhandekar/supervision/internal/backend/cpu"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

func rawF32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRawFromFloat32(data, shape)
	require.NoError(t, err)
	return raw
}

func TestTapeRecordsOperations(t *testing.T) {
	ad := New(cpu.New())
	a := rawF32(t, []float32{1, 2}, tensor.Shape{2})
	b := rawF32(t, []float32{3, 4}, tensor.Shape{2})

	sum := ad.Add(a, b)
	ad.Sum(sum)

	assert.Equal(t, 2, ad.Tape().Len())
	assert.Equal(t, "Add", ad.Tape().Operations()[0].Name())
	assert.Equal(t, "Sum", ad.Tape().Operations()[1].Name())
}

func TestBackwardSimpleChain(t *testing.T) {
	ad := New(cpu.New())
	a := rawF32(t, []float32{1, 2, 3}, tensor.Shape{3})
	b := rawF32(t, []float32{4, 5, 6}, tensor.Shape{3})

	// loss = sum(a * b); dloss/da = b, dloss/db = a.
	prod := ad.Mul(a, b)
	loss := ad.Sum(prod)

	grads, err := ad.Tape().Backward(loss, ad)
	require.NoError(t, err)
	assert.Equal(t, []float32{4, 5, 6}, grads[a].AsFloat32())
	assert.Equal(t, []float32{1, 2, 3}, grads[b].AsFloat32())
}

func TestBackwardAccumulatesFanOut(t *testing.T) {
	ad := New(cpu.New())
	a := rawF32(t, []float32{2}, tensor.Shape{1})

	// loss = a*a + a; dloss/da = 2a + 1 = 5.
	sq := ad.Mul(a, a)
	loss := ad.Sum(ad.Add(sq, a))

	grads, err := ad.Tape().Backward(loss, ad)
	require.NoError(t, err)
	assert.Equal(t, []float32{5}, grads[a].AsFloat32())
}

func TestBackwardReluDefault(t *testing.T) {
	ad := New(cpu.New())
	x := rawF32(t, []float32{-1, 2, -3, 4}, tensor.Shape{4})

	loss := ad.Sum(ad.Relu(x))

	grads, err := ad.Tape().Backward(loss, ad)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 0, 1}, grads[x].AsFloat32())
}

func TestBackwardMatMul(t *testing.T) {
	ad := New(cpu.New())
	a := rawF32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawF32(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	loss := ad.Sum(ad.MatMul(a, b))

	grads, err := ad.Tape().Backward(loss, ad)
	require.NoError(t, err)
	// dL/da = ones @ b^T: each row is [5+6, 7+8].
	assert.Equal(t, []float32{11, 15, 11, 15}, grads[a].AsFloat32())
	// dL/db = a^T @ ones: rows are column sums of a.
	assert.Equal(t, []float32{4, 4, 6, 6}, grads[b].AsFloat32())
}

func TestBackwardMaxDimRoutesToWinner(t *testing.T) {
	ad := New(cpu.New())
	x := rawF32(t, []float32{1, 5, 3, 9, 2, 4}, tensor.Shape{2, 3})

	maxed, _ := ad.MaxDim(x, 1, false)
	loss := ad.Sum(maxed)

	grads, err := ad.Tape().Backward(loss, ad)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 0, 1, 0, 0}, grads[x].AsFloat32())
}

func TestBackwardCrossEntropy(t *testing.T) {
	ad := New(cpu.New())
	logits := rawF32(t, []float32{0, 0}, tensor.Shape{1, 2})
	targets, err := tensor.NewRawFromInt32([]int32{0}, tensor.Shape{1})
	require.NoError(t, err)

	loss := ad.CrossEntropy(logits, targets)

	grads, gerr := ad.Tape().Backward(loss, ad)
	require.NoError(t, gerr)
	// softmax - onehot = [0.5-1, 0.5-0].
	assert.InDelta(t, -0.5, grads[logits].AsFloat32()[0], 1e-6)
	assert.InDelta(t, 0.5, grads[logits].AsFloat32()[1], 1e-6)
}

func TestBackwardRequiresScalarLoss(t *testing.T) {
	ad := New(cpu.New())
	a := rawF32(t, []float32{1, 2}, tensor.Shape{2})
	b := rawF32(t, []float32{3, 4}, tensor.Shape{2})

	out := ad.Add(a, b)
	_, err := ad.Tape().Backward(out, ad)
	assert.Error(t, err)
}

func TestBackwardRejectsForeignTensor(t *testing.T) {
	ad := New(cpu.New())
	foreign := rawF32(t, []float32{1}, tensor.Shape{1})

	_, err := ad.Tape().Backward(foreign, ad)
	assert.Error(t, err)
}

func TestRegistryIdempotentRegister(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	first := func(g, _, _ *tensor.RawTensor, _ tensor.Backend) *tensor.RawTensor {
		calls++
		return g
	}
	second := func(g, _, _ *tensor.RawTensor, _ tensor.Backend) *tensor.RawTensor {
		t.Fatal("second registration must not replace the first")
		return g
	}

	reg.Register("rule", first)
	reg.Register("rule", second)

	rule, err := reg.Lookup("rule")
	require.NoError(t, err)
	rule(nil, nil, nil, nil)
	assert.Equal(t, 1, calls)
}

func TestRegistryLookupUnknown(t *testing.T) {
	_, err := NewRegistry().Lookup("missing")
	assert.Error(t, err)
}

func TestConfigRejectsUnknownRule(t *testing.T) {
	_, err := NewWithConfig(cpu.New(), GradientConfig{
		Registry:  NewRegistry(),
		Overrides: map[string]string{"Relu": "missing"},
	})
	assert.Error(t, err)
}

func TestConfigRejectsUnknownOperation(t *testing.T) {
	reg := NewRegistry()
	reg.Register("rule", ops.GuidedReLURule)
	_, err := NewWithConfig(cpu.New(), GradientConfig{
		Registry:  reg,
		Overrides: map[string]string{"MatMul": "rule"},
	})
	assert.Error(t, err)
}

func TestReluOverrideGuided(t *testing.T) {
	reg := NewRegistry()
	reg.Register("GuidedBackProp", ops.GuidedReLURule)
	ad, err := NewWithConfig(cpu.New(), GradientConfig{
		Registry:  reg,
		Overrides: map[string]string{"Relu": "GuidedBackProp"},
	})
	require.NoError(t, err)

	// One input per sign combination of (input, upstream gradient). The
	// upstream gradient here is d(sum(relu(x)*w))/d(relu(x)) = w.
	x := rawF32(t, []float32{1, 1, -1, -1}, tensor.Shape{4})
	w := rawF32(t, []float32{2, -2, 2, -2}, tensor.Shape{4})

	loss := ad.Sum(ad.Mul(ad.Relu(x), w))

	grads, gerr := ad.Tape().Backward(loss, ad)
	require.NoError(t, gerr)
	// Only (input > 0, gradient > 0) passes.
	assert.Equal(t, []float32{2, 0, 0, 0}, grads[x].AsFloat32())
}

func TestGuidedReLURuleTruthTable(t *testing.T) {
	grad := tensor.NewRawFull(tensor.Shape{4}, 0)
	copy(grad.AsFloat32(), []float32{1, -1, 1, -1})
	input := tensor.NewRawFull(tensor.Shape{4}, 0)
	copy(input.AsFloat32(), []float32{1, 1, -1, -1})

	out := ops.GuidedReLURule(grad, input, nil, nil)
	assert.Equal(t, []float32{1, 0, 0, 0}, out.AsFloat32())
}
