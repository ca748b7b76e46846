// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeNumElements(t *testing.T) {
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 5, Shape{5}.NumElements())
}

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, Shape{1, 2, 3}.Validate())
	assert.Error(t, Shape{2, 0, 3}.Validate())
	assert.Error(t, Shape{-1}.Validate())
}

func TestShapeComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{1}, Shape{7}.ComputeStrides())
}

func TestBroadcastShapes(t *testing.T) {
	shape, needed, err := BroadcastShapes(Shape{4, 1, 3}, Shape{2, 3})
	require.NoError(t, err)
	assert.True(t, needed)
	assert.Equal(t, Shape{4, 2, 3}, shape)

	shape, needed, err = BroadcastShapes(Shape{2, 3}, Shape{2, 3})
	require.NoError(t, err)
	assert.False(t, needed)
	assert.Equal(t, Shape{2, 3}, shape)

	_, _, err = BroadcastShapes(Shape{2, 3}, Shape{4, 3})
	assert.Error(t, err)
}

func TestRawTensorViews(t *testing.T) {
	raw, err := NewRawFromFloat32([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)

	view, err := raw.View(Shape{3, 2})
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, view.Shape())

	// Views share the buffer.
	view.AsFloat32()[0] = 42
	assert.Equal(t, float32(42), raw.AsFloat32()[0])

	_, err = raw.View(Shape{4, 2})
	assert.Error(t, err)
}

func TestRawTensorUniqueness(t *testing.T) {
	raw := NewRawZeros(Shape{2, 2}, Float32)
	assert.True(t, raw.IsUnique())

	view, err := raw.View(Shape{4})
	require.NoError(t, err)
	assert.False(t, raw.IsUnique())

	view.Release()
	assert.True(t, raw.IsUnique())

	raw.ForceNonUnique()
	assert.False(t, raw.IsUnique())
}

func TestRawTensorDTypeMismatchPanics(t *testing.T) {
	raw := NewRawZeros(Shape{2}, Float32)
	assert.Panics(t, func() { raw.AsInt32() })
	assert.Panics(t, func() { raw.AsUint8() })
}

func TestDataTypeSizes(t *testing.T) {
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 4, Int32.Size())
	assert.Equal(t, 1, Uint8.Size())
}

func TestInferDataType(t *testing.T) {
	assert.Equal(t, Float32, inferDataType[float32]())
	assert.Equal(t, Int32, inferDataType[int32]())
	assert.Equal(t, Uint8, inferDataType[uint8]())
}
