// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mihirkhandekar/supervision/internal/autodiff"
	"github.com/mihirkhandekar/supervision/internal/backend/cpu"
	"github.com/mihirkhandekar/supervision/internal/dataset"
	"github.com/mihirkhandekar/supervision/internal/imageio"
	"github.com/mihirkhandekar/supervision/internal/model"
	"github.com/mihirkhandekar/supervision/internal/tensor"
	"github.com/mihirkhandekar/supervision/internal/vis"
)

func runExplain(args []string) error {
	fs := flag.NewFlagSet("explain", flag.ExitOnError)
	modelPath := fs.String("p", "saved_models/alexnet.sprv", "path to the trained model artifact")
	outputDir := fs.String("o", "output", "directory for the visualization images")
	dataDir := fs.String("d", "data/cifar-100-binary", "directory holding the CIFAR-100 binary files")
	seed := fs.Int64("seed", 0, "seed for the test image selection (0 = time-based)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	inner := cpu.New()
	backend := autodiff.New(inner)
	m := model.NewAlexNet(backend, model.ClassCount, rng)
	if err := m.Load(*modelPath); err != nil {
		return err
	}

	// Pick a random test image and scale it to the network input size.
	samples, err := dataset.LoadTest(*dataDir)
	if err != nil {
		return err
	}
	index := rng.Intn(len(samples))
	batch, err := dataset.MakeBatch(samples[index:index+1], model.ImageHeight, model.ImageWidth)
	if err != nil {
		return err
	}
	img, err := batch.Images.View(tensor.Shape{3, model.ImageHeight, model.ImageWidth})
	if err != nil {
		return err
	}

	prefix := filepath.Join(*outputDir, strconv.Itoa(index))
	if err := imageio.WriteJPEG(prefix+".jpg", img); err != nil {
		return err
	}

	// Classify.
	m.SetTraining(false)
	m.Forward(batch.Images)
	predicted := int(inner.Argmax(m.Output(), 1).AsInt32()[0])
	fmt.Printf("Supplied image was classified as [%d] by the model.\n", predicted)
	fmt.Printf("True classification for the image is [%d].\n", samples[index].Fine)

	// Class activation heatmap on the last convolution layer.
	heatmap, err := vis.GradCAM(m, batch.Images, predicted, model.DefaultTargetLayer,
		model.ImageHeight, model.ImageWidth)
	if err != nil {
		return err
	}
	overlay, err := vis.OverlayHeatmap(img, heatmap)
	if err != nil {
		return err
	}
	if err := imageio.WriteJPEG(prefix+"_gradcam.jpg", overlay); err != nil {
		return err
	}

	// Guided backpropagation saliency. The model is rebuilt under a backend
	// whose ReLU gradient is overridden, then reloaded from the artifact.
	saliency, err := vis.GuidedBackprop(inner, *modelPath, model.DefaultTargetLayer,
		func(guided *autodiff.AutodiffBackend[*cpu.Backend]) *model.Model[*autodiff.AutodiffBackend[*cpu.Backend]] {
			return model.NewAlexNet(guided, model.ClassCount, rng)
		}, batch.Images)
	if err != nil {
		return err
	}
	saliencyImg, err := saliency.View(tensor.Shape{3, model.ImageHeight, model.ImageWidth})
	if err != nil {
		return err
	}
	if err := imageio.WriteJPEG(prefix+"_saliency.jpg", vis.NormalizeImage(saliencyImg)); err != nil {
		return err
	}

	// Guided Grad-CAM: saliency gated by the class activation map.
	guided, err := vis.MulHeatmap(saliencyImg, heatmap)
	if err != nil {
		return err
	}
	if err := imageio.WriteJPEG(prefix+"_guided-gradcam.jpg", vis.NormalizeImage(guided)); err != nil {
		return err
	}

	fmt.Printf("Wrote visualizations to %s\n", *outputDir)
	return nil
}
