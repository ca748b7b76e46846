// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package model provides a named-layer sequential container with per-layer
// output capture, plus the AlexNet assembly used throughout the project.
package model

import (
	"errors"
	"fmt"

	"github.com/mihirkhandekar/supervision/internal/nn"
	"github.com/mihirkhandekar/supervision/internal/serialization"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// ErrLayerNotFound is returned when a named layer lookup fails.
var ErrLayerNotFound = errors.New("model: layer not found")

type namedLayer[B tensor.Backend] struct {
	name  string
	layer nn.Module[B]
}

// Model is an ordered sequence of named layers. Forward runs them in order
// and caches every intermediate output, so callers can read any layer's
// activation after a pass. Names must be unique.
type Model[B tensor.Backend] struct {
	backend B
	layers  []namedLayer[B]
	outputs map[string]*tensor.RawTensor
	input   *tensor.RawTensor
}

// New creates an empty model bound to backend.
func New[B tensor.Backend](backend B) *Model[B] {
	return &Model[B]{
		backend: backend,
		outputs: make(map[string]*tensor.RawTensor),
	}
}

// Backend returns the backend the model's layers run on.
func (m *Model[B]) Backend() B { return m.backend }

// Add appends a named layer. Panics on a duplicate name, which is a
// programming error in model assembly.
func (m *Model[B]) Add(name string, layer nn.Module[B]) {
	for _, nl := range m.layers {
		if nl.name == name {
			panic(fmt.Sprintf("model: duplicate layer name %q", name))
		}
	}
	m.layers = append(m.layers, namedLayer[B]{name: name, layer: layer})
}

// Forward runs every layer in order and returns the final output. Each
// layer's output is cached under its name until the next Forward call.
func (m *Model[B]) Forward(input *tensor.RawTensor) *tensor.RawTensor {
	m.input = input
	m.outputs = make(map[string]*tensor.RawTensor, len(m.layers))
	x := input
	for _, nl := range m.layers {
		x = nl.layer.Forward(x)
		m.outputs[nl.name] = x
	}
	return x
}

// Input returns the tensor most recently passed to Forward.
func (m *Model[B]) Input() *tensor.RawTensor { return m.input }

// Output returns the final output of the most recent Forward pass.
func (m *Model[B]) Output() *tensor.RawTensor {
	if len(m.layers) == 0 {
		return nil
	}
	return m.outputs[m.layers[len(m.layers)-1].name]
}

// LayerOutput returns the cached output of the named layer from the most
// recent Forward pass.
func (m *Model[B]) LayerOutput(name string) (*tensor.RawTensor, error) {
	out, ok := m.outputs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLayerNotFound, name)
	}
	return out, nil
}

// HasLayer reports whether a layer with the given name exists, regardless of
// whether Forward has run.
func (m *Model[B]) HasLayer(name string) bool {
	for _, nl := range m.layers {
		if nl.name == name {
			return true
		}
	}
	return false
}

// LayerNames returns the layer names in forward order.
func (m *Model[B]) LayerNames() []string {
	names := make([]string, len(m.layers))
	for i, nl := range m.layers {
		names[i] = nl.name
	}
	return names
}

// Parameters returns every trainable parameter of every layer.
func (m *Model[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	for _, nl := range m.layers {
		params = append(params, nl.layer.Parameters()...)
	}
	return params
}

// SetTraining switches training/inference behavior on every layer that
// distinguishes the two.
func (m *Model[B]) SetTraining(training bool) {
	for _, nl := range m.layers {
		if ta, ok := nl.layer.(nn.TrainingAware); ok {
			ta.SetTraining(training)
		}
	}
}

// StateDict collects every parameter and persistent buffer keyed by
// "<layer>.<name>".
func (m *Model[B]) StateDict() map[string]*tensor.RawTensor {
	state := make(map[string]*tensor.RawTensor)
	for _, nl := range m.layers {
		for _, p := range nl.layer.Parameters() {
			state[nl.name+"."+p.Name] = p.Value
		}
		if buffered, ok := nl.layer.(nn.Buffered[B]); ok {
			for _, b := range buffered.Buffers() {
				state[nl.name+"."+b.Name] = b.Value
			}
		}
	}
	return state
}

// LoadStateDict copies values from state into the model's parameters and
// buffers. Every model tensor must be present with a matching shape.
func (m *Model[B]) LoadStateDict(state map[string]*tensor.RawTensor) error {
	for key, dst := range m.StateDict() {
		src, ok := state[key]
		if !ok {
			return fmt.Errorf("model: state dict missing tensor %q", key)
		}
		if !src.Shape().Equal(dst.Shape()) {
			return fmt.Errorf("model: tensor %q shape %v does not match %v",
				key, src.Shape(), dst.Shape())
		}
		copy(dst.Bytes(), src.Bytes())
	}
	return nil
}

// Save persists the model's state dict to path.
func (m *Model[B]) Save(path string) error {
	return serialization.Save(path, m.StateDict())
}

// Load reads a state dict artifact from path into the model.
func (m *Model[B]) Load(path string) error {
	state, err := serialization.Load(path)
	if err != nil {
		return err
	}
	return m.LoadStateDict(state)
}
