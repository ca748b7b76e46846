// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nn

import "github.com/mihirkhandekar/supervision/internal/tensor"

// Parameter is a named trainable tensor.
type Parameter[B tensor.Backend] struct {
	Name  string
	Value *tensor.RawTensor
}

// NewParameter wraps value as a parameter.
func NewParameter[B tensor.Backend](name string, value *tensor.RawTensor) *Parameter[B] {
	return &Parameter[B]{Name: name, Value: value}
}

// Data returns the parameter's float32 values for in-place updates.
func (p *Parameter[B]) Data() []float32 {
	return p.Value.AsFloat32()
}
