// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package optim implements parameter update rules.
package optim

import (
	"github.com/mihirkhandekar/supervision/internal/nn"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Optimizer updates parameters from a gradient map produced by a tape
// backward pass.
type Optimizer[B tensor.Backend] interface {
	// Step applies one update. Parameters absent from grads are skipped.
	Step(params []*nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor)
}
