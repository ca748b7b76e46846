// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ops

import "github.com/mihirkhandekar/supervision/internal/tensor"

// CrossEntropyOp records mean softmax cross-entropy between logits [N, C]
// and int32 class targets [N].
type CrossEntropyOp struct {
	logits  *tensor.RawTensor
	targets *tensor.RawTensor
	output  *tensor.RawTensor
}

func NewCrossEntropy(logits, targets, output *tensor.RawTensor) *CrossEntropyOp {
	return &CrossEntropyOp{logits: logits, targets: targets, output: output}
}

func (op *CrossEntropyOp) Name() string                { return "CrossEntropy" }
func (op *CrossEntropyOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.logits} }
func (op *CrossEntropyOp) Output() *tensor.RawTensor   { return op.output }

// Backward computes (softmax(logits) - onehot(targets)) / N, scaled by the
// incoming scalar gradient.
func (op *CrossEntropyOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	probs := backend.Softmax(op.logits, 1)
	grad := probs.Clone()

	n := op.logits.Shape()[0]
	c := op.logits.Shape()[1]
	data := grad.AsFloat32()
	targets := op.targets.AsInt32()
	scale := outputGrad.AsFloat32()[0] / float32(n)
	for i := 0; i < n; i++ {
		data[i*c+int(targets[i])] -= 1
	}
	for i := range data {
		data[i] *= scale
	}
	return []*tensor.RawTensor{grad}
}
