// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package vis

import (
	"fmt"

	"github.com/mihirkhandekar/supervision/internal/imageio"
	"github.com/mihirkhandekar/supervision/internal/model"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// GradCAM computes a class activation heatmap for a single image. The class
// score for categoryIndex is backpropagated to the named convolution layer;
// the layer's channels are weighted by their spatially averaged gradients,
// summed, rectified, resized to height x width and normalized to [0, 1].
//
// When no positive evidence reaches the layer (the rectified map is all
// zero), the zero map is returned rather than dividing by a zero maximum.
func GradCAM[B Backend](m *model.Model[B], image *tensor.RawTensor, categoryIndex int, layerName string, height, width int) (*tensor.RawTensor, error) {
	if !m.HasLayer(layerName) {
		return nil, fmt.Errorf("%w: %q", model.ErrLayerNotFound, layerName)
	}

	backend := m.Backend()
	backend.Tape().Reset()
	m.SetTraining(false)

	out := m.Forward(image)
	classes := out.Shape()[len(out.Shape())-1]
	if categoryIndex < 0 || categoryIndex >= classes {
		return nil, fmt.Errorf("vis: category %d out of range for %d classes", categoryIndex, classes)
	}

	idx, err := tensor.NewRawFromInt32([]int32{int32(categoryIndex)}, tensor.Shape{1})
	if err != nil {
		return nil, err
	}
	classScore := backend.Gather(out, idx)

	grads, err := backend.Tape().Backward(classScore, backend)
	if err != nil {
		return nil, fmt.Errorf("vis: grad-cam backward: %w", err)
	}
	convOut, err := m.LayerOutput(layerName)
	if err != nil {
		return nil, err
	}

	shape := convOut.Shape() // [1, C, H, W]
	c, h, w := shape[1], shape[2], shape[3]
	activations := convOut.AsFloat32()

	cam := tensor.NewRawZeros(tensor.Shape{1, h, w}, tensor.Float32)
	camData := cam.AsFloat32()
	if convGrad, ok := grads[convOut]; ok {
		gradData := convGrad.AsFloat32()
		plane := h * w
		for ch := 0; ch < c; ch++ {
			// Channel weight: spatial mean of the gradient.
			weight := float32(0)
			for i := 0; i < plane; i++ {
				weight += gradData[ch*plane+i]
			}
			weight /= float32(plane)
			for i := 0; i < plane; i++ {
				camData[i] += weight * activations[ch*plane+i]
			}
		}
	}
	for i, v := range camData {
		if v < 0 {
			camData[i] = 0
		}
	}

	resized, err := imageio.ResizeBilinear(cam, height, width)
	if err != nil {
		return nil, err
	}
	heatmap := resized.AsFloat32()

	max := float32(0)
	for _, v := range heatmap {
		if v > max {
			max = v
		}
	}
	if max > 0 {
		for i := range heatmap {
			heatmap[i] /= max
		}
	}

	view, err := resized.View(tensor.Shape{height, width})
	if err != nil {
		return nil, err
	}
	return view, nil
}
