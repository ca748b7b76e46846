// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package autodiff

import "github.com/mihirkhandekar/supervision/internal/autodiff/ops"

// GradientTape records operations in execution order so that Backward can
// replay them in reverse. A tape is not safe for concurrent recording.
type GradientTape struct {
	operations []ops.Operation
}

// NewGradientTape creates an empty tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{}
}

// Record appends an operation. Inputs and output are pinned so later
// in-place optimizations cannot invalidate the recorded graph.
func (t *GradientTape) Record(op ops.Operation) {
	for _, in := range op.Inputs() {
		in.ForceNonUnique()
	}
	op.Output().ForceNonUnique()
	t.operations = append(t.operations, op)
}

// Operations returns the recorded operations in execution order.
func (t *GradientTape) Operations() []ops.Operation {
	return t.operations
}

// Reset clears the tape for reuse.
func (t *GradientTape) Reset() {
	t.operations = t.operations[:0]
}

// Len returns the number of recorded operations.
func (t *GradientTape) Len() int {
	return len(t.operations)
}
