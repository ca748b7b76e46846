// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Dropout zeroes a fraction of activations during training, scaling the
// survivors by 1/(1-rate) so inference needs no rescaling. The mask multiply
// runs through the backend, so the gradient masks itself on the tape.
type Dropout[B tensor.Backend] struct {
	backend  B
	rate     float32
	training bool
	rng      *rand.Rand
}

func NewDropout[B tensor.Backend](backend B, rate float32, rng *rand.Rand) *Dropout[B] {
	return &Dropout[B]{backend: backend, rate: rate, rng: rng}
}

func (d *Dropout[B]) Forward(input *tensor.RawTensor) *tensor.RawTensor {
	if !d.training || d.rate == 0 {
		return input
	}
	mask := tensor.NewRawZeros(input.Shape(), tensor.Float32)
	data := mask.AsFloat32()
	scale := 1 / (1 - d.rate)
	for i := range data {
		if d.rng.Float32() >= d.rate {
			data[i] = scale
		}
	}
	return d.backend.Mul(input, mask)
}

func (d *Dropout[B]) Parameters() []*Parameter[B] { return nil }

func (d *Dropout[B]) SetTraining(training bool) { d.training = training }
