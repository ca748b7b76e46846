// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"math/rand"
)

// Tensor is a typed, backend-bound view over a RawTensor. The type parameter
// T fixes the element type at compile time; B carries the backend so that
// operations on mismatched backends fail to type-check.
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
}

// New wraps data in a tensor of the given shape.
func New[T DType, B Backend](backend B, data []T, shape Shape) (*Tensor[T, B], error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v", len(data), shape)
	}
	raw, err := NewRaw(shape, inferDataType[T]())
	if err != nil {
		return nil, err
	}
	copyIntoRaw(raw, data)
	return &Tensor[T, B]{raw: raw, backend: backend}, nil
}

// Zeros creates a zero-filled tensor.
func Zeros[T DType, B Backend](backend B, shape Shape) *Tensor[T, B] {
	raw := NewRawZeros(shape, inferDataType[T]())
	return &Tensor[T, B]{raw: raw, backend: backend}
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](backend B, shape Shape) *Tensor[T, B] {
	t := Zeros[T, B](backend, shape)
	data := t.Data()
	for i := range data {
		data[i] = T(1)
	}
	return t
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](backend B, shape Shape, value T) *Tensor[T, B] {
	t := Zeros[T, B](backend, shape)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a float32 tensor with normally distributed values.
func Randn[B Backend](backend B, shape Shape, stddev float32, rng *rand.Rand) *Tensor[float32, B] {
	raw := NewRawRandn(shape, stddev, rng)
	return &Tensor[float32, B]{raw: raw, backend: backend}
}

// FromRaw wraps an existing RawTensor. The raw tensor's dtype must match T.
func FromRaw[T DType, B Backend](backend B, raw *RawTensor) (*Tensor[T, B], error) {
	if raw.DType() != inferDataType[T]() {
		return nil, fmt.Errorf("raw tensor dtype %s does not match requested type %s",
			raw.DType(), inferDataType[T]())
	}
	return &Tensor[T, B]{raw: raw, backend: backend}, nil
}

// Raw returns the underlying RawTensor.
func (t *Tensor[T, B]) Raw() *RawTensor { return t.raw }

// Backend returns the backend this tensor is bound to.
func (t *Tensor[T, B]) Backend() B { return t.backend }

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() Shape { return t.raw.Shape() }

// DType returns the tensor's data type.
func (t *Tensor[T, B]) DType() DataType { return t.raw.DType() }

// NumElements returns the number of elements.
func (t *Tensor[T, B]) NumElements() int { return t.raw.NumElements() }

// Data returns a typed view over the tensor's buffer. Mutations are visible
// to all views sharing the buffer.
func (t *Tensor[T, B]) Data() []T {
	switch any(t).(type) {
	case *Tensor[float32, B]:
		return any(t.raw.AsFloat32()).([]T)
	case *Tensor[int32, B]:
		return any(t.raw.AsInt32()).([]T)
	case *Tensor[uint8, B]:
		return any(t.raw.AsUint8()).([]T)
	default:
		panic(fmt.Sprintf("unsupported tensor element type %T", *new(T)))
	}
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor[T, B]) At(indices ...int) T {
	return t.Data()[t.flatIndex(indices)]
}

// Set writes the element at the given multi-dimensional index.
func (t *Tensor[T, B]) Set(value T, indices ...int) {
	t.Data()[t.flatIndex(indices)] = value
}

// Item returns the value of a single-element tensor.
func (t *Tensor[T, B]) Item() T {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item called on tensor with %d elements", t.NumElements()))
	}
	return t.Data()[0]
}

// Clone returns a deep copy.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.raw.Clone(), backend: t.backend}
}

func (t *Tensor[T, B]) flatIndex(indices []int) int {
	shape := t.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("index rank %d does not match tensor rank %d", len(indices), len(shape)))
	}
	strides := shape.ComputeStrides()
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of range for dimension %d (size %d)", idx, i, shape[i]))
		}
		flat += idx * strides[i]
	}
	return flat
}

func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor[%s](shape=%v, backend=%s)", t.DType(), t.Shape(), t.backend.Name())
}

func copyIntoRaw[T DType](raw *RawTensor, data []T) {
	switch raw.DType() {
	case Float32:
		dst := raw.AsFloat32()
		for i, v := range data {
			dst[i] = float32(v)
		}
	case Int32:
		dst := raw.AsInt32()
		for i, v := range data {
			dst[i] = int32(v)
		}
	case Uint8:
		dst := raw.AsUint8()
		for i, v := range data {
			dst[i] = uint8(v)
		}
	}
}
