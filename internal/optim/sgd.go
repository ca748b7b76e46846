// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/mihirkhandekar/supervision/internal/nn"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// SGD implements stochastic gradient descent with classical momentum and
// decoupled L2 weight decay:
//
//	v = momentum*v + grad + weightDecay*param
//	param -= lr * v
type SGD[B tensor.Backend] struct {
	lr          float32
	momentum    float32
	weightDecay float32
	velocity    map[*tensor.RawTensor][]float32
}

// NewSGD creates an SGD optimizer.
func NewSGD[B tensor.Backend](lr, momentum, weightDecay float32) *SGD[B] {
	return &SGD[B]{
		lr:          lr,
		momentum:    momentum,
		weightDecay: weightDecay,
		velocity:    make(map[*tensor.RawTensor][]float32),
	}
}

func (s *SGD[B]) Step(params []*nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, p := range params {
		grad, ok := grads[p.Value]
		if !ok {
			continue
		}
		g := grad.AsFloat32()
		w := p.Data()

		v, ok := s.velocity[p.Value]
		if !ok {
			v = make([]float32, len(w))
			s.velocity[p.Value] = v
		}
		for i := range w {
			v[i] = s.momentum*v[i] + g[i] + s.weightDecay*w[i]
			w[i] -= s.lr * v[i]
		}
	}
}
