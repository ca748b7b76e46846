// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// writeRecords builds a synthetic CIFAR-100 binary file with n records whose
// pixels are all set to fill.
func writeRecords(t *testing.T, n int, fill byte) string {
	t.Helper()
	data := make([]byte, n*recordSize)
	for i := 0; i < n; i++ {
		off := i * recordSize
		data[off] = byte(i % 20)      // coarse
		data[off+1] = byte(i % 100)   // fine
		for j := 2; j < recordSize; j++ {
			data[off+j] = fill
		}
	}
	path := filepath.Join(t.TempDir(), "test.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadParsesRecords(t *testing.T) {
	path := writeRecords(t, 3, 200)
	samples, err := Load(path)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, 0, samples[0].Fine)
	assert.Equal(t, 1, samples[1].Fine)
	assert.Equal(t, 2, samples[2].Coarse)
	assert.Equal(t, tensor.Shape{3, 32, 32}, samples[0].Image.Shape())
	assert.Equal(t, float32(200), samples[0].Image.AsFloat32()[0])
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, recordSize-1), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.bin"))
	assert.Error(t, err)
}

func TestMakeBatchStacksAndResizes(t *testing.T) {
	path := writeRecords(t, 4, 100)
	samples, err := Load(path)
	require.NoError(t, err)

	batch, err := MakeBatch(samples, 64, 64)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 3, 64, 64}, batch.Images.Shape())
	assert.Equal(t, tensor.Shape{4}, batch.Labels.Shape())
	assert.Equal(t, []int32{0, 1, 2, 3}, batch.Labels.AsInt32())
	// Constant pixels survive the resize.
	for _, v := range batch.Images.AsFloat32() {
		assert.InDelta(t, 100, v, 1e-3)
	}
}

func TestMakeBatchEmpty(t *testing.T) {
	_, err := MakeBatch(nil, 32, 32)
	assert.Error(t, err)
}

func TestBatchesDropsRemainder(t *testing.T) {
	path := writeRecords(t, 5, 10)
	samples, err := Load(path)
	require.NoError(t, err)

	batches, err := Batches(samples, 2, 32, 32)
	require.NoError(t, err)
	assert.Len(t, batches, 2)

	_, err = Batches(samples, 0, 32, 32)
	assert.Error(t, err)
}
