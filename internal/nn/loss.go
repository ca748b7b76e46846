// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package nn

import "github.com/mihirkhandekar/supervision/internal/tensor"

// Accuracy returns the fraction of rows of predictions [N, C] whose argmax
// matches the int32 targets [N].
func Accuracy(backend tensor.Backend, predictions, targets *tensor.RawTensor) float32 {
	pred := backend.Argmax(predictions, 1).AsInt32()
	want := targets.AsInt32()
	correct := 0
	for i := range pred {
		if pred[i] == want[i] {
			correct++
		}
	}
	return float32(correct) / float32(len(pred))
}
