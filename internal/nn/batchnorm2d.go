// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nn

import "github.com/mihirkhandekar/supervision/internal/tensor"

// BatchNorm2D normalizes each channel of a [N, C, H, W] tensor. The forward
// pass is composed from backend primitives, so the backward pass comes from
// the tape with no dedicated gradient code.
//
// Training mode normalizes with batch statistics and updates the running
// estimates; inference mode normalizes with the running estimates.
type BatchNorm2D[B tensor.Backend] struct {
	backend  B
	gamma    *Parameter[B] // [C, 1, 1]
	beta     *Parameter[B] // [C, 1, 1]
	runMean  *tensor.RawTensor
	runVar   *tensor.RawTensor
	eps      float32
	momentum float32
	training bool
}

func NewBatchNorm2D[B tensor.Backend](backend B, channels int) *BatchNorm2D[B] {
	shape := tensor.Shape{channels, 1, 1}
	return &BatchNorm2D[B]{
		backend:  backend,
		gamma:    NewParameter[B]("gamma", tensor.NewRawFull(shape, 1)),
		beta:     NewParameter[B]("beta", tensor.NewRawZeros(shape, tensor.Float32)),
		runMean:  tensor.NewRawZeros(shape, tensor.Float32),
		runVar:   tensor.NewRawFull(shape, 1),
		eps:      1e-3,
		momentum: 0.99,
	}
}

func (bn *BatchNorm2D[B]) Forward(input *tensor.RawTensor) *tensor.RawTensor {
	mean, variance := bn.runMean, bn.runVar
	if bn.training {
		mean = bn.channelMean(input)
		diff := bn.backend.Sub(input, mean)
		variance = bn.channelMean(bn.backend.Mul(diff, diff))
		bn.updateRunning(bn.runMean, mean)
		bn.updateRunning(bn.runVar, variance)
	}
	centered := bn.backend.Sub(input, mean)
	denom := bn.backend.Sqrt(bn.backend.AddScalar(variance, bn.eps))
	normed := bn.backend.Div(centered, denom)
	return bn.backend.Add(bn.backend.Mul(normed, bn.gamma.Value), bn.beta.Value)
}

// channelMean averages over batch and spatial dimensions, returning [C, 1, 1].
func (bn *BatchNorm2D[B]) channelMean(x *tensor.RawTensor) *tensor.RawTensor {
	m := bn.backend.MeanDim(x, 0, false)  // [C, H, W]
	m = bn.backend.MeanDim(m, 1, false)   // [C, W]
	m = bn.backend.MeanDim(m, 1, false)   // [C]
	return bn.backend.Reshape(m, tensor.Shape{x.Shape()[1], 1, 1})
}

// updateRunning blends batch statistics into the running estimate off-tape.
func (bn *BatchNorm2D[B]) updateRunning(running, batch *tensor.RawTensor) {
	r := running.AsFloat32()
	b := batch.AsFloat32()
	for i := range r {
		r[i] = bn.momentum*r[i] + (1-bn.momentum)*b[i]
	}
}

func (bn *BatchNorm2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{bn.gamma, bn.beta}
}

func (bn *BatchNorm2D[B]) SetTraining(training bool) { bn.training = training }

// Buffers exposes the running statistics for persistence. They are not
// trainable and stay out of Parameters.
func (bn *BatchNorm2D[B]) Buffers() []*Parameter[B] {
	return []*Parameter[B]{
		NewParameter[B]("running_mean", bn.runMean),
		NewParameter[B]("running_var", bn.runVar),
	}
}
