// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package vis

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// jetStops are the anchor colors of the heatmap ramp, cold to hot.
var jetStops = []colorful.Color{
	{R: 0, G: 0, B: 0.5},
	{R: 0, G: 0, B: 1},
	{R: 0, G: 1, B: 1},
	{R: 0, G: 1, B: 0},
	{R: 1, G: 1, B: 0},
	{R: 1, G: 0, B: 0},
	{R: 0.5, G: 0, B: 0},
}

// jetColor maps v in [0, 1] onto the ramp.
func jetColor(v float64) colorful.Color {
	if v <= 0 {
		return jetStops[0]
	}
	if v >= 1 {
		return jetStops[len(jetStops)-1]
	}
	scaled := v * float64(len(jetStops)-1)
	i := int(scaled)
	return jetStops[i].BlendRgb(jetStops[i+1], scaled-float64(i))
}

// OverlayHeatmap colorizes a [H, W] heatmap in [0, 1] and blends it
// additively into a [3, H, W] image, rescaling the result to peak at 255.
func OverlayHeatmap(image, heatmap *tensor.RawTensor) (*tensor.RawTensor, error) {
	is := image.Shape()
	hs := heatmap.Shape()
	if len(is) != 3 || is[0] != 3 {
		return nil, fmt.Errorf("vis: overlay expects [3, H, W] image, got %v", is)
	}
	if len(hs) != 2 || hs[0] != is[1] || hs[1] != is[2] {
		return nil, fmt.Errorf("vis: heatmap shape %v does not match image %v", hs, is)
	}

	h, w := is[1], is[2]
	plane := h * w
	src := image.AsFloat32()
	hm := heatmap.AsFloat32()

	// Shift the image to start at zero and cap it at 255 before blending.
	min := src[0]
	for _, v := range src {
		if v < min {
			min = v
		}
	}

	out := tensor.NewRawZeros(is, tensor.Float32)
	dst := out.AsFloat32()
	max := float32(0)
	for i := 0; i < plane; i++ {
		c := jetColor(float64(hm[i]))
		channels := [3]float32{float32(c.R), float32(c.G), float32(c.B)}
		for ch := 0; ch < 3; ch++ {
			pixel := src[ch*plane+i] - min
			if pixel > 255 {
				pixel = 255
			}
			v := pixel + 255*channels[ch]
			dst[ch*plane+i] = v
			if v > max {
				max = v
			}
		}
	}
	if max > 0 {
		scale := 255 / max
		for i := range dst {
			dst[i] *= scale
		}
	}
	return out, nil
}

// NormalizeImage recenters a tensor to zero mean and 0.1 standard
// deviation, shifts by +0.5, clips to [0, 1] and scales to [0, 255]. Used
// to turn raw gradient tensors into displayable images. Applying it to its
// own output moves values only within float tolerance.
func NormalizeImage(t *tensor.RawTensor) *tensor.RawTensor {
	src := t.AsFloat32()
	n := float64(len(src))

	mean := 0.0
	for _, v := range src {
		mean += float64(v)
	}
	mean /= n

	variance := 0.0
	for _, v := range src {
		d := float64(v) - mean
		variance += d * d
	}
	std := math.Sqrt(variance / n)

	out := tensor.NewRawZeros(t.Shape(), tensor.Float32)
	dst := out.AsFloat32()
	for i, v := range src {
		x := (float64(v)-mean)/(std+1e-5)*0.1 + 0.5
		if x < 0 {
			x = 0
		}
		if x > 1 {
			x = 1
		}
		dst[i] = float32(x * 255)
	}
	return out
}

// MulHeatmap multiplies each channel of a [3, H, W] tensor by a [H, W]
// heatmap, the combination step of guided Grad-CAM.
func MulHeatmap(saliency, heatmap *tensor.RawTensor) (*tensor.RawTensor, error) {
	ss := saliency.Shape()
	hs := heatmap.Shape()
	if len(ss) != 3 || len(hs) != 2 || hs[0] != ss[1] || hs[1] != ss[2] {
		return nil, fmt.Errorf("vis: cannot combine saliency %v with heatmap %v", ss, hs)
	}
	plane := ss[1] * ss[2]
	src := saliency.AsFloat32()
	hm := heatmap.AsFloat32()
	out := tensor.NewRawZeros(ss, tensor.Float32)
	dst := out.AsFloat32()
	for ch := 0; ch < ss[0]; ch++ {
		for i := 0; i < plane; i++ {
			dst[ch*plane+i] = src[ch*plane+i] * hm[i]
		}
	}
	return out, nil
}
