// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package nn is the public API for neural network layers.
package nn

import (
	"math/rand"

	"github.com/mihirkhandekar/supervision/internal/nn"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Module is a layer: a forward pass plus named parameters.
type Module[B tensor.Backend] = nn.Module[B]

// TrainingAware is implemented by layers whose forward pass differs between
// training and inference.
type TrainingAware = nn.TrainingAware

// Buffered is implemented by layers carrying non-learned persistent state.
type Buffered[B tensor.Backend] = nn.Buffered[B]

// Rectified is implemented by layers with a configurable activation.
type Rectified = nn.Rectified

// Parameter is a named learnable tensor.
type Parameter[B tensor.Backend] = nn.Parameter[B]

type (
	Conv2D[B tensor.Backend]      = nn.Conv2D[B]
	Linear[B tensor.Backend]      = nn.Linear[B]
	MaxPool2D[B tensor.Backend]   = nn.MaxPool2D[B]
	BatchNorm2D[B tensor.Backend] = nn.BatchNorm2D[B]
	Dropout[B tensor.Backend]     = nn.Dropout[B]
	ReLU[B tensor.Backend]        = nn.ReLU[B]
	Softmax[B tensor.Backend]     = nn.Softmax[B]
	Flatten[B tensor.Backend]     = nn.Flatten[B]
)

func NewConv2D[B tensor.Backend](backend B, inChannels, outChannels, kernelSize, stride, padding int, activation string, rng *rand.Rand) *Conv2D[B] {
	return nn.NewConv2D(backend, inChannels, outChannels, kernelSize, stride, padding, activation, rng)
}

func NewLinear[B tensor.Backend](backend B, inFeatures, outFeatures int, activation string, rng *rand.Rand) *Linear[B] {
	return nn.NewLinear(backend, inFeatures, outFeatures, activation, rng)
}

func NewMaxPool2D[B tensor.Backend](backend B, kernelSize, stride int) *MaxPool2D[B] {
	return nn.NewMaxPool2D(backend, kernelSize, stride)
}

func NewBatchNorm2D[B tensor.Backend](backend B, channels int) *BatchNorm2D[B] {
	return nn.NewBatchNorm2D(backend, channels)
}

func NewDropout[B tensor.Backend](backend B, rate float32, rng *rand.Rand) *Dropout[B] {
	return nn.NewDropout(backend, rate, rng)
}

func NewReLU[B tensor.Backend](backend B) *ReLU[B] {
	return nn.NewReLU(backend)
}

func NewSoftmax[B tensor.Backend](backend B, dim int) *Softmax[B] {
	return nn.NewSoftmax(backend, dim)
}

func NewFlatten[B tensor.Backend](backend B) *Flatten[B] {
	return nn.NewFlatten(backend)
}

// Accuracy reports the fraction of rows whose argmax matches the target.
var Accuracy = nn.Accuracy
