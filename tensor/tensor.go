// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package tensor is the public API for tensors and backends.
//
// The heavy lifting lives in internal/tensor; this package re-exports the
// types an application needs:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](backend, tensor.Shape{2, 3})
//	y := tensor.Ones[float32](backend, tensor.Shape{2, 3})
//	z := x.Add(y)
package tensor

import (
	"math/rand"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// DType constrains the element types a typed tensor may hold.
type DType = tensor.DType

// DataType identifies the element type of a RawTensor.
type DataType = tensor.DataType

const (
	Float32 DataType = tensor.Float32
	Int32   DataType = tensor.Int32
	Uint8   DataType = tensor.Uint8
)

// Device identifies where a backend computes.
type Device = tensor.Device

const (
	CPU    Device = tensor.CPU
	WebGPU Device = tensor.WebGPU
)

// Shape holds tensor dimensions, outermost first.
type Shape = tensor.Shape

// RawTensor is the untyped tensor representation backends operate on.
type RawTensor = tensor.RawTensor

// Backend is the set of primitive operations a compute device provides.
type Backend = tensor.Backend

// Tensor is the typed, backend-bound tensor.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// New builds a tensor from a typed slice.
func New[T DType, B Backend](backend B, data []T, shape Shape) (*Tensor[T, B], error) {
	return tensor.New[T](backend, data, shape)
}

// Zeros returns a zero-filled tensor.
func Zeros[T DType, B Backend](backend B, shape Shape) *Tensor[T, B] {
	return tensor.Zeros[T, B](backend, shape)
}

// Ones returns a one-filled tensor.
func Ones[T DType, B Backend](backend B, shape Shape) *Tensor[T, B] {
	return tensor.Ones[T, B](backend, shape)
}

// Full returns a tensor filled with value.
func Full[T DType, B Backend](backend B, shape Shape, value T) *Tensor[T, B] {
	return tensor.Full[T, B](backend, shape, value)
}

// Randn returns a float32 tensor with normally distributed entries.
func Randn[B Backend](backend B, shape Shape, stddev float32, rng *rand.Rand) *Tensor[float32, B] {
	return tensor.Randn(backend, shape, stddev, rng)
}

// FromRaw wraps a RawTensor, checking that T matches its dtype.
func FromRaw[T DType, B Backend](backend B, raw *RawTensor) (*Tensor[T, B], error) {
	return tensor.FromRaw[T](backend, raw)
}

// Raw constructors.

var (
	NewRaw            = tensor.NewRaw
	NewRawFromBytes   = tensor.NewRawFromBytes
	NewRawZeros       = tensor.NewRawZeros
	NewRawFull        = tensor.NewRawFull
	NewRawRandn       = tensor.NewRawRandn
	NewRawFromFloat32 = tensor.NewRawFromFloat32
	NewRawFromInt32   = tensor.NewRawFromInt32
	NewRawFromUint8   = tensor.NewRawFromUint8
	BroadcastShapes   = tensor.BroadcastShapes
)
