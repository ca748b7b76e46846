// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package imageio converts between image.Image and the [C, H, W] float32
// tensors the model consumes, and provides JPEG persistence and bilinear
// resizing.
//
// Pixel tensors hold raw intensities in [0, 255]; scaling to other ranges
// is the caller's concern.
package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

const jpegQuality = 90

// FromImage converts an image to a [3, H, W] float32 tensor with values in
// [0, 255].
func FromImage(img image.Image) *tensor.RawTensor {
	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()
	out := tensor.NewRawZeros(tensor.Shape{3, h, w}, tensor.Float32)
	data := out.AsFloat32()
	plane := h * w
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			data[y*w+x] = float32(r >> 8)
			data[plane+y*w+x] = float32(g >> 8)
			data[2*plane+y*w+x] = float32(b >> 8)
		}
	}
	return out
}

// ToImage converts a [3, H, W] float32 tensor with values in [0, 255] to an
// RGBA image. Values outside the range are clipped.
func ToImage(t *tensor.RawTensor) (*image.RGBA, error) {
	shape := t.Shape()
	if len(shape) != 3 || shape[0] != 3 {
		return nil, fmt.Errorf("imageio: expected [3, H, W] tensor, got %v", shape)
	}
	h, w := shape[1], shape[2]
	data := t.AsFloat32()
	plane := h * w

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			img.Pix[i] = clipByte(data[y*w+x])
			img.Pix[i+1] = clipByte(data[plane+y*w+x])
			img.Pix[i+2] = clipByte(data[2*plane+y*w+x])
			img.Pix[i+3] = 255
		}
	}
	return img, nil
}

// WriteJPEG encodes a [3, H, W] tensor to a JPEG file, creating parent
// directories as needed.
func WriteJPEG(path string, t *tensor.RawTensor) error {
	img, err := ToImage(t)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("imageio: create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return nil
}

// ResizeBilinear resizes a [C, H, W] float32 tensor to [C, height, width].
func ResizeBilinear(t *tensor.RawTensor, height, width int) (*tensor.RawTensor, error) {
	shape := t.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("imageio: expected [C, H, W] tensor, got %v", shape)
	}
	c, h, w := shape[0], shape[1], shape[2]
	src := t.AsFloat32()
	out := tensor.NewRawZeros(tensor.Shape{c, height, width}, tensor.Float32)
	dst := out.AsFloat32()

	scaleY := float32(h) / float32(height)
	scaleX := float32(w) / float32(width)
	for ch := 0; ch < c; ch++ {
		plane := src[ch*h*w : (ch+1)*h*w]
		outPlane := dst[ch*height*width : (ch+1)*height*width]
		for y := 0; y < height; y++ {
			sy := (float32(y)+0.5)*scaleY - 0.5
			y0 := int(sy)
			if sy < 0 {
				y0, sy = 0, 0
			}
			y1 := y0 + 1
			if y1 >= h {
				y1 = h - 1
			}
			fy := sy - float32(y0)
			for x := 0; x < width; x++ {
				sx := (float32(x)+0.5)*scaleX - 0.5
				x0 := int(sx)
				if sx < 0 {
					x0, sx = 0, 0
				}
				x1 := x0 + 1
				if x1 >= w {
					x1 = w - 1
				}
				fx := sx - float32(x0)

				top := plane[y0*w+x0]*(1-fx) + plane[y0*w+x1]*fx
				bottom := plane[y1*w+x0]*(1-fx) + plane[y1*w+x1]*fx
				outPlane[y*width+x] = top*(1-fy) + bottom*fy
			}
		}
	}
	return out, nil
}

func clipByte(v float32) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
