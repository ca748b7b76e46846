// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nn

import "github.com/mihirkhandekar/supervision/internal/tensor"

// ReLU applies the backend rectifier as a standalone layer.
type ReLU[B tensor.Backend] struct {
	backend B
}

func NewReLU[B tensor.Backend](backend B) *ReLU[B] {
	return &ReLU[B]{backend: backend}
}

func (r *ReLU[B]) Forward(input *tensor.RawTensor) *tensor.RawTensor {
	return r.backend.Relu(input)
}

func (r *ReLU[B]) Parameters() []*Parameter[B] { return nil }

// Softmax normalizes along the class axis as a standalone layer.
type Softmax[B tensor.Backend] struct {
	backend B
	dim     int
}

func NewSoftmax[B tensor.Backend](backend B, dim int) *Softmax[B] {
	return &Softmax[B]{backend: backend, dim: dim}
}

func (s *Softmax[B]) Forward(input *tensor.RawTensor) *tensor.RawTensor {
	return s.backend.Softmax(input, s.dim)
}

func (s *Softmax[B]) Parameters() []*Parameter[B] { return nil }

// Flatten reshapes [N, ...] to [N, rest].
type Flatten[B tensor.Backend] struct {
	backend B
}

func NewFlatten[B tensor.Backend](backend B) *Flatten[B] {
	return &Flatten[B]{backend: backend}
}

func (f *Flatten[B]) Forward(input *tensor.RawTensor) *tensor.RawTensor {
	shape := input.Shape()
	rest := 1
	for _, d := range shape[1:] {
		rest *= d
	}
	return f.backend.Reshape(input, tensor.Shape{shape[0], rest})
}

func (f *Flatten[B]) Parameters() []*Parameter[B] { return nil }
