// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package model

import (
	"math/rand"

	"github.com/mihirkhandekar/supervision/internal/nn"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// DefaultTargetLayer is the last convolution layer, the usual target for
// class activation mapping.
const DefaultTargetLayer = "conv2d_5"

// AlexNet assembly constants for CIFAR-100 at 224x224.
const (
	ImageHeight = 224
	ImageWidth  = 224
	ClassCount  = 100
)

// NewAlexNet assembles the SuperVision architecture: five convolution
// layers (batch normalization after the first two, in place of the paper's
// local response normalization), three overlapping max pools, then three
// fully connected layers and a softmax output. Input is [N, 3, 224, 224].
func NewAlexNet[B tensor.Backend](backend B, classCount int, rng *rand.Rand) *Model[B] {
	m := New(backend)

	// 96 kernels of 11x11 at stride 4 over the 224x224x3 input.
	m.Add("conv2d_1", nn.NewConv2D(backend, 3, 96, 11, 4, 5, "relu", rng))
	m.Add("batchnorm_1", nn.NewBatchNorm2D(backend, 96))
	m.Add("maxpool_1", nn.NewMaxPool2D(backend, 3, 2))

	// 256 kernels of 5x5.
	m.Add("conv2d_2", nn.NewConv2D(backend, 96, 256, 5, 1, 2, "relu", rng))
	m.Add("batchnorm_2", nn.NewBatchNorm2D(backend, 256))
	m.Add("maxpool_2", nn.NewMaxPool2D(backend, 3, 2))

	// Three 3x3 convolution layers without pooling between them.
	m.Add("conv2d_3", nn.NewConv2D(backend, 256, 384, 3, 1, 1, "relu", rng))
	m.Add("conv2d_4", nn.NewConv2D(backend, 384, 384, 3, 1, 1, "relu", rng))
	m.Add("conv2d_5", nn.NewConv2D(backend, 384, 256, 3, 1, 1, "relu", rng))
	m.Add("maxpool_3", nn.NewMaxPool2D(backend, 3, 2))

	m.Add("flatten", nn.NewFlatten(backend))

	// Fully connected layers of 4096 neurons, dropout on the first two.
	m.Add("dense_1", nn.NewLinear(backend, 256*6*6, 4096, "", rng))
	m.Add("dropout_1", nn.NewDropout(backend, 0.5, rng))
	m.Add("dense_2", nn.NewLinear(backend, 4096, 4096, "", rng))
	m.Add("dropout_2", nn.NewDropout(backend, 0.5, rng))
	m.Add("dense_3", nn.NewLinear(backend, 4096, classCount, "", rng))

	m.Add("softmax", nn.NewSoftmax(backend, 1))
	return m
}
