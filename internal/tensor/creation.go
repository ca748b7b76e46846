// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"math/rand"
)

// NewRawZeros allocates a zero-filled raw tensor.
func NewRawZeros(shape Shape, dtype DataType) *RawTensor {
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		panic(fmt.Sprintf("NewRawZeros: %v", err))
	}
	return raw
}

// NewRawFull allocates a float32 raw tensor filled with value.
func NewRawFull(shape Shape, value float32) *RawTensor {
	raw := NewRawZeros(shape, Float32)
	data := raw.AsFloat32()
	for i := range data {
		data[i] = value
	}
	return raw
}

// NewRawRandn allocates a float32 raw tensor with values drawn from a
// normal distribution with the given standard deviation.
func NewRawRandn(shape Shape, stddev float32, rng *rand.Rand) *RawTensor {
	raw := NewRawZeros(shape, Float32)
	data := raw.AsFloat32()
	for i := range data {
		data[i] = float32(rng.NormFloat64()) * stddev
	}
	return raw
}

// NewRawFromFloat32 copies a float32 slice into a new raw tensor.
func NewRawFromFloat32(data []float32, shape Shape) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v", len(data), shape)
	}
	raw, err := NewRaw(shape, Float32)
	if err != nil {
		return nil, err
	}
	copy(raw.AsFloat32(), data)
	return raw, nil
}

// NewRawFromInt32 copies an int32 slice into a new raw tensor.
func NewRawFromInt32(data []int32, shape Shape) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v", len(data), shape)
	}
	raw, err := NewRaw(shape, Int32)
	if err != nil {
		return nil, err
	}
	copy(raw.AsInt32(), data)
	return raw, nil
}

// NewRawFromUint8 copies a uint8 slice into a new raw tensor.
func NewRawFromUint8(data []uint8, shape Shape) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v", len(data), shape)
	}
	raw, err := NewRaw(shape, Uint8)
	if err != nil {
		return nil, err
	}
	copy(raw.AsUint8(), data)
	return raw, nil
}
