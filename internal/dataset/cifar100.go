// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package dataset loads the CIFAR-100 binary distribution and prepares
// training batches.
//
// Each record in the binary files is one coarse label byte, one fine label
// byte, then 3072 pixel bytes (red, green and blue 32x32 planes in row-major
// order).
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

const (
	// ImageSize is the side length of a CIFAR image.
	ImageSize = 32
	// ClassCount is the number of fine labels.
	ClassCount = 100

	channels   = 3
	pixelBytes = channels * ImageSize * ImageSize
	recordSize = 2 + pixelBytes

	// TrainFile and TestFile are the file names of the binary distribution.
	TrainFile = "train.bin"
	TestFile  = "test.bin"
)

// Sample is one labeled image. Image is [3, 32, 32] float32 with raw pixel
// values in [0, 255].
type Sample struct {
	Image  *tensor.RawTensor
	Coarse int
	Fine   int
}

// Load reads every record from a CIFAR-100 binary file.
func Load(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	if len(data) == 0 || len(data)%recordSize != 0 {
		return nil, fmt.Errorf("dataset: %s: size %d is not a multiple of the %d-byte record",
			path, len(data), recordSize)
	}

	samples := make([]Sample, 0, len(data)/recordSize)
	for off := 0; off < len(data); off += recordSize {
		img := tensor.NewRawZeros(tensor.Shape{channels, ImageSize, ImageSize}, tensor.Float32)
		pixels := img.AsFloat32()
		for i, b := range data[off+2 : off+recordSize] {
			pixels[i] = float32(b)
		}
		samples = append(samples, Sample{
			Image:  img,
			Coarse: int(data[off]),
			Fine:   int(data[off+1]),
		})
	}
	return samples, nil
}

// LoadTrain reads train.bin from dir.
func LoadTrain(dir string) ([]Sample, error) {
	return Load(filepath.Join(dir, TrainFile))
}

// LoadTest reads test.bin from dir.
func LoadTest(dir string) ([]Sample, error) {
	return Load(filepath.Join(dir, TestFile))
}
