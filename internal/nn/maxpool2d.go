// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nn

import "github.com/mihirkhandekar/supervision/internal/tensor"

// MaxPool2D pools with a square window. It has no parameters.
type MaxPool2D[B tensor.Backend] struct {
	backend    B
	kernelSize int
	stride     int
}

func NewMaxPool2D[B tensor.Backend](backend B, kernelSize, stride int) *MaxPool2D[B] {
	return &MaxPool2D[B]{backend: backend, kernelSize: kernelSize, stride: stride}
}

func (m *MaxPool2D[B]) Forward(input *tensor.RawTensor) *tensor.RawTensor {
	out, _ := m.backend.MaxPool2D(input, m.kernelSize, m.stride)
	return out
}

func (m *MaxPool2D[B]) Parameters() []*Parameter[B] { return nil }
