// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/mihirkhandekar/supervision/internal/imageio"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Batch is a stacked set of preprocessed samples: Images is
// [N, 3, height, width] float32, Labels is [N] int32 fine labels.
type Batch struct {
	Images *tensor.RawTensor
	Labels *tensor.RawTensor
}

// MakeBatch resizes every sample to height x width and stacks them. The
// per-image resizes fan out over a bounded goroutine pool.
func MakeBatch(samples []Sample, height, width int) (*Batch, error) {
	n := len(samples)
	if n == 0 {
		return nil, fmt.Errorf("dataset: empty batch")
	}

	images := tensor.NewRawZeros(tensor.Shape{n, channels, height, width}, tensor.Float32)
	labels := tensor.NewRawZeros(tensor.Shape{n}, tensor.Int32)
	dst := images.AsFloat32()
	lbl := labels.AsInt32()
	stride := channels * height * width

	p := pool.New().WithMaxGoroutines(runtime.NumCPU()).WithErrors()
	for i, s := range samples {
		p.Go(func() error {
			resized, err := imageio.ResizeBilinear(s.Image, height, width)
			if err != nil {
				return fmt.Errorf("dataset: resize sample %d: %w", i, err)
			}
			copy(dst[i*stride:(i+1)*stride], resized.AsFloat32())
			return nil
		})
		lbl[i] = int32(s.Fine)
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return &Batch{Images: images, Labels: labels}, nil
}

// Batches splits samples into consecutive batches of batchSize, dropping the
// trailing remainder, and preprocesses each to height x width.
func Batches(samples []Sample, batchSize, height, width int) ([]*Batch, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("dataset: batch size must be positive, got %d", batchSize)
	}
	var batches []*Batch
	for start := 0; start+batchSize <= len(samples); start += batchSize {
		b, err := MakeBatch(samples[start:start+batchSize], height, width)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}
