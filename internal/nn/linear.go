// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Linear is a fully connected layer computing input @ weight + bias.
type Linear[B tensor.Backend] struct {
	backend    B
	weight     *Parameter[B] // [In, Out]
	bias       *Parameter[B] // [Out]
	activation string
}

// NewLinear creates a fully connected layer with Xavier-initialized weights.
func NewLinear[B tensor.Backend](backend B, inFeatures, outFeatures int, activation string, rng *rand.Rand) *Linear[B] {
	weight := xavierInit(tensor.Shape{inFeatures, outFeatures}, inFeatures, outFeatures, rng)
	bias := tensor.NewRawZeros(tensor.Shape{outFeatures}, tensor.Float32)
	return &Linear[B]{
		backend:    backend,
		weight:     NewParameter[B]("weight", weight),
		bias:       NewParameter[B]("bias", bias),
		activation: activation,
	}
}

func (l *Linear[B]) Forward(input *tensor.RawTensor) *tensor.RawTensor {
	out := l.backend.MatMul(input, l.weight.Value)
	out = l.backend.Add(out, l.bias.Value)
	if l.activation == "relu" {
		out = l.backend.Relu(out)
	}
	return out
}

func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

func (l *Linear[B]) Activation() string        { return l.activation }
func (l *Linear[B]) SetActivation(name string) { l.activation = name }
