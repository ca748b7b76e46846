// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Conv2D is a 2D convolution layer with bias and an optional rectifying
// activation applied through the backend primitive.
type Conv2D[B tensor.Backend] struct {
	backend    B
	weight     *Parameter[B] // [Cout, Cin, KH, KW]
	bias       *Parameter[B] // [Cout, 1, 1], broadcast over N, H, W
	stride     int
	padding    int
	activation string
}

// NewConv2D creates a convolution layer with Xavier-initialized weights.
func NewConv2D[B tensor.Backend](backend B, inChannels, outChannels, kernelSize, stride, padding int, activation string, rng *rand.Rand) *Conv2D[B] {
	fanIn := inChannels * kernelSize * kernelSize
	fanOut := outChannels * kernelSize * kernelSize
	weight := xavierInit(tensor.Shape{outChannels, inChannels, kernelSize, kernelSize}, fanIn, fanOut, rng)
	bias := tensor.NewRawZeros(tensor.Shape{outChannels, 1, 1}, tensor.Float32)
	return &Conv2D[B]{
		backend:    backend,
		weight:     NewParameter[B]("weight", weight),
		bias:       NewParameter[B]("bias", bias),
		stride:     stride,
		padding:    padding,
		activation: activation,
	}
}

func (c *Conv2D[B]) Forward(input *tensor.RawTensor) *tensor.RawTensor {
	out := c.backend.Conv2D(input, c.weight.Value, c.stride, c.padding)
	out = c.backend.Add(out, c.bias.Value)
	if c.activation == "relu" {
		out = c.backend.Relu(out)
	}
	return out
}

func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{c.weight, c.bias}
}

func (c *Conv2D[B]) Activation() string        { return c.activation }
func (c *Conv2D[B]) SetActivation(name string) { c.activation = name }
