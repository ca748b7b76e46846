// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Device identifies where tensor memory lives.
type Device int

const (
	CPU Device = iota
	WebGPU
)

func (d Device) String() string {
	switch d {
	case CPU:
		return "cpu"
	case WebGPU:
		return "webgpu"
	default:
		return fmt.Sprintf("device(%d)", int(d))
	}
}

// tensorBuffer is a reference-counted byte buffer shared between tensor views.
type tensorBuffer struct {
	data     []byte
	refcount atomic.Int64
	// nonUnique pins the buffer as shared even at refcount 1. Set by
	// ForceNonUnique when a buffer participates in a gradient tape and
	// must not be mutated in place.
	nonUnique atomic.Bool
}

func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{data: make([]byte, size)}
	buf.refcount.Store(1)
	return buf
}

// RawTensor is the untyped tensor representation that backends operate on.
// It carries a shape, a data type and a refcounted byte buffer. Typed views
// over the buffer are obtained through AsFloat32, AsInt32 and AsUint8.
type RawTensor struct {
	shape  Shape
	dtype  DataType
	buffer *tensorBuffer
	device Device
}

// NewRaw allocates a zeroed raw tensor of the given shape and dtype.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	size := shape.NumElements() * dtype.Size()
	return &RawTensor{
		shape:  shape.Clone(),
		dtype:  dtype,
		buffer: newTensorBuffer(size),
		device: CPU,
	}, nil
}

// NewRawFromBytes wraps an existing byte slice without copying. The slice
// length must match shape.NumElements() * dtype.Size().
func NewRawFromBytes(data []byte, shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	expected := shape.NumElements() * dtype.Size()
	if len(data) != expected {
		return nil, fmt.Errorf("data length %d does not match shape %v with dtype %s (expected %d bytes)",
			len(data), shape, dtype, expected)
	}
	buf := &tensorBuffer{data: data}
	buf.refcount.Store(1)
	return &RawTensor{
		shape:  shape.Clone(),
		dtype:  dtype,
		buffer: buf,
		device: CPU,
	}, nil
}

// Shape returns the tensor's shape. The caller must not mutate it.
func (r *RawTensor) Shape() Shape { return r.shape }

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType { return r.dtype }

// Device returns where the tensor's memory lives.
func (r *RawTensor) Device() Device { return r.device }

// NumElements returns the number of elements.
func (r *RawTensor) NumElements() int { return r.shape.NumElements() }

// Bytes returns the underlying byte buffer.
func (r *RawTensor) Bytes() []byte { return r.buffer.data }

// AsFloat32 returns a float32 view over the buffer. Panics if the dtype
// does not match.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("AsFloat32 called on %s tensor", r.dtype))
	}
	if len(r.buffer.data) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.buffer.data[0])), r.NumElements())
}

// AsInt32 returns an int32 view over the buffer. Panics if the dtype does
// not match.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("AsInt32 called on %s tensor", r.dtype))
	}
	if len(r.buffer.data) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&r.buffer.data[0])), r.NumElements())
}

// AsUint8 returns a uint8 view over the buffer. Panics if the dtype does
// not match.
func (r *RawTensor) AsUint8() []uint8 {
	if r.dtype != Uint8 {
		panic(fmt.Sprintf("AsUint8 called on %s tensor", r.dtype))
	}
	return r.buffer.data
}

// Clone returns a deep copy with its own buffer.
func (r *RawTensor) Clone() *RawTensor {
	clone, err := NewRaw(r.shape, r.dtype)
	if err != nil {
		panic(fmt.Sprintf("clone of valid tensor failed: %v", err))
	}
	copy(clone.buffer.data, r.buffer.data)
	clone.device = r.device
	return clone
}

// View returns a new RawTensor sharing this tensor's buffer with a different
// shape. The element count must match.
func (r *RawTensor) View(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("cannot view shape %v as %v: element count mismatch", r.shape, shape)
	}
	r.buffer.refcount.Add(1)
	return &RawTensor{
		shape:  shape.Clone(),
		dtype:  r.dtype,
		buffer: r.buffer,
		device: r.device,
	}, nil
}

// Release decrements the buffer refcount.
func (r *RawTensor) Release() {
	r.buffer.refcount.Add(-1)
}

// IsUnique reports whether this tensor is the sole owner of its buffer and
// the buffer has not been pinned as shared. Backends may mutate unique
// buffers in place.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.refcount.Load() == 1 && !r.buffer.nonUnique.Load()
}

// ForceNonUnique pins the buffer as shared. Used when a tensor is captured
// by a gradient tape and must survive unmodified until Backward.
func (r *RawTensor) ForceNonUnique() {
	r.buffer.nonUnique.Store(true)
}

func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor(shape=%v, dtype=%s, device=%s)", r.shape, r.dtype, r.device)
}
