// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package imageio

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

func TestFromImageToImageRoundtrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 128, A: 255})
	img.Set(0, 1, color.RGBA{B: 64, A: 255})

	tens := FromImage(img)
	assert.Equal(t, tensor.Shape{3, 2, 2}, tens.Shape())
	data := tens.AsFloat32()
	assert.Equal(t, float32(255), data[0]) // R at (0,0)
	assert.Equal(t, float32(128), data[5]) // G at (1,0)
	assert.Equal(t, float32(64), data[10]) // B at (0,1)

	back, err := ToImage(tens)
	require.NoError(t, err)
	r, _, _, _ := back.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestToImageRejectsWrongShape(t *testing.T) {
	_, err := ToImage(tensor.NewRawZeros(tensor.Shape{1, 4, 4}, tensor.Float32))
	assert.Error(t, err)
}

func TestToImageClips(t *testing.T) {
	tens, err := tensor.NewRawFromFloat32([]float32{300, -5, 100}, tensor.Shape{3, 1, 1})
	require.NoError(t, err)
	img, err := ToImage(tens)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), img.Pix[0])
	assert.Equal(t, uint8(0), img.Pix[1])
	assert.Equal(t, uint8(100), img.Pix[2])
}

func TestWriteJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "test.jpg")
	tens := tensor.NewRawFull(tensor.Shape{3, 8, 8}, 128)

	require.NoError(t, WriteJPEG(path, tens))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestResizeBilinearShapeAndConstant(t *testing.T) {
	tens := tensor.NewRawFull(tensor.Shape{3, 32, 32}, 7)
	out, err := ResizeBilinear(tens, 224, 224)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 224, 224}, out.Shape())
	// A constant image stays constant under bilinear interpolation.
	for _, v := range out.AsFloat32() {
		assert.InDelta(t, 7, v, 1e-4)
	}
}

func TestResizeBilinearIdentity(t *testing.T) {
	tens, err := tensor.NewRawFromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{1, 2, 2})
	require.NoError(t, err)
	out, rerr := ResizeBilinear(tens, 2, 2)
	require.NoError(t, rerr)
	assert.Equal(t, tens.AsFloat32(), out.AsFloat32())
}

func TestResizeBilinearInterpolates(t *testing.T) {
	tens, err := tensor.NewRawFromFloat32([]float32{0, 100}, tensor.Shape{1, 1, 2})
	require.NoError(t, err)
	out, rerr := ResizeBilinear(tens, 1, 4)
	require.NoError(t, rerr)
	data := out.AsFloat32()
	// Monotone left to right.
	for i := 1; i < len(data); i++ {
		assert.GreaterOrEqual(t, data[i], data[i-1])
	}
	assert.Equal(t, float32(0), data[0])
	assert.Equal(t, float32(100), data[3])
}
