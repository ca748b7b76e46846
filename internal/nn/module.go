// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package nn provides neural network layers built on the tensor backend
// primitives. Layers run their forward pass through whatever backend they
// are bound to; wrapping that backend in an AutodiffBackend makes the same
// layer code differentiable.
package nn

import "github.com/mihirkhandekar/supervision/internal/tensor"

// Module is a layer or composite of layers.
type Module[B tensor.Backend] interface {
	// Forward computes the layer output for input.
	Forward(input *tensor.RawTensor) *tensor.RawTensor
	// Parameters returns the module's trainable parameters.
	Parameters() []*Parameter[B]
}

// TrainingAware is implemented by modules whose forward pass differs between
// training and inference, such as Dropout and BatchNorm2D.
type TrainingAware interface {
	SetTraining(training bool)
}

// Buffered is implemented by modules carrying non-trainable state that must
// be persisted alongside parameters, such as BatchNorm2D running statistics.
type Buffered[B tensor.Backend] interface {
	Buffers() []*Parameter[B]
}

// Rectified is implemented by layers carrying a configurable activation.
// The activation is applied through the backend primitive, never inlined in
// the layer, so a gradient override installed on the backend covers every
// rectifier in the model. Guided backpropagation depends on this: it rebuilds
// the model under an override backend and never calls SetActivation.
type Rectified interface {
	Activation() string
	SetActivation(name string)
}
