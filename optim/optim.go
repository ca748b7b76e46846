// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package optim is the public API for optimizers.
package optim

import (
	"github.com/mihirkhandekar/supervision/internal/optim"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Optimizer updates parameters from a gradient map.
type Optimizer[B tensor.Backend] = optim.Optimizer[B]

// SGD is stochastic gradient descent with momentum and weight decay.
type SGD[B tensor.Backend] = optim.SGD[B]

// NewSGD builds an SGD optimizer.
func NewSGD[B tensor.Backend](lr, momentum, weightDecay float32) *SGD[B] {
	return optim.NewSGD[B](lr, momentum, weightDecay)
}
