// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package autodiff

import (
	"fmt"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Backward runs reverse-mode accumulation from loss through every recorded
// operation and returns the gradient of each tensor that participated in
// the graph, keyed by the tensor itself. The loss must be a single-element
// tensor produced by an operation on this tape.
func (t *GradientTape) Backward(loss *tensor.RawTensor, backend tensor.Backend) (map[*tensor.RawTensor]*tensor.RawTensor, error) {
	if loss.NumElements() != 1 {
		return nil, fmt.Errorf("backward requires a scalar loss, got shape %v", loss.Shape())
	}

	found := false
	for _, op := range t.operations {
		if op.Output() == loss {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("loss tensor was not produced by an operation on this tape")
	}

	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	grads[loss] = tensor.NewRawFull(loss.Shape(), 1)

	// Operations were recorded in execution order; walking them backwards
	// visits every node after all of its consumers.
	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outGrad, ok := grads[op.Output()]
		if !ok {
			continue
		}
		inGrads := op.Backward(outGrad, backend)
		inputs := op.Inputs()
		if len(inGrads) != len(inputs) {
			return nil, fmt.Errorf("%s backward returned %d gradients for %d inputs",
				op.Name(), len(inGrads), len(inputs))
		}
		for j, in := range inputs {
			if inGrads[j] == nil {
				continue
			}
			if existing, ok := grads[in]; ok {
				grads[in] = backend.Add(existing, inGrads[j])
			} else {
				grads[in] = inGrads[j]
			}
		}
	}
	return grads, nil
}
