// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/mihirkhandekar/supervision/internal/autodiff"
	"github.com/mihirkhandekar/supervision/internal/backend/cpu"
	"github.com/mihirkhandekar/supervision/internal/backend/webgpu"
	"github.com/mihirkhandekar/supervision/internal/config"
	"github.com/mihirkhandekar/supervision/internal/dataset"
	"github.com/mihirkhandekar/supervision/internal/model"
	"github.com/mihirkhandekar/supervision/internal/nn"
	"github.com/mihirkhandekar/supervision/internal/optim"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("c", "", "path to a YAML training config (built-in defaults when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	switch cfg.Backend {
	case "webgpu":
		gpu, err := webgpu.New()
		if err != nil {
			return err
		}
		defer gpu.Release()
		return trainModel(cfg, gpu)
	default:
		return trainModel(cfg, cpu.New())
	}
}

func trainModel[B tensor.Backend](cfg config.Train, inner B) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	backend := autodiff.New(inner)

	fmt.Printf("Loading CIFAR-100 from %s\n", cfg.DataDir)
	trainSamples, err := dataset.LoadTrain(cfg.DataDir)
	if err != nil {
		return err
	}
	testSamples, err := dataset.LoadTest(cfg.DataDir)
	if err != nil {
		return err
	}
	fmt.Printf("  train: %d samples, test: %d samples\n", len(trainSamples), len(testSamples))

	fmt.Printf("Preparing %dx%d batches of %d\n", cfg.ImageHeight, cfg.ImageWidth, cfg.BatchSize)
	trainBatches, err := dataset.Batches(trainSamples, cfg.BatchSize, cfg.ImageHeight, cfg.ImageWidth)
	if err != nil {
		return err
	}
	testBatches, err := dataset.Batches(testSamples, cfg.BatchSize, cfg.ImageHeight, cfg.ImageWidth)
	if err != nil {
		return err
	}

	m := model.NewAlexNet(backend, model.ClassCount, rng)
	fmt.Printf("Model: AlexNet, %d classes, backend %s\n", model.ClassCount, backend.Name())
	fmt.Printf("Optimizer: SGD (lr=%g, momentum=%g, weight_decay=%g)\n",
		cfg.LearningRate, cfg.Momentum, cfg.WeightDecay)

	optimizer := optim.NewSGD[*autodiff.AutodiffBackend[B]](
		cfg.LearningRate, cfg.Momentum, cfg.WeightDecay)

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		loss, acc, err := trainEpoch(m, backend, optimizer, trainBatches)
		if err != nil {
			return err
		}
		testAcc := evaluate(m, backend, testBatches)
		fmt.Printf("Epoch %3d/%d: loss=%.4f train_acc=%.2f%% test_acc=%.2f%%\n",
			epoch, cfg.Epochs, loss, acc*100, testAcc*100)
	}

	m.SetTraining(false)
	if err := m.Save(cfg.ModelPath); err != nil {
		return err
	}
	fmt.Printf("Saved model to %s\n", cfg.ModelPath)
	return nil
}

// trainEpoch runs one pass over the batches and returns the mean loss and
// accuracy.
func trainEpoch[B tensor.Backend](
	m *model.Model[*autodiff.AutodiffBackend[B]],
	backend *autodiff.AutodiffBackend[B],
	optimizer *optim.SGD[*autodiff.AutodiffBackend[B]],
	batches []*dataset.Batch,
) (float32, float32, error) {
	var lossSum, accSum float32
	m.SetTraining(true)
	for _, batch := range batches {
		backend.Tape().Reset()
		m.Forward(batch.Images)

		// The loss uses the pre-softmax logits.
		logits, err := m.LayerOutput("dense_3")
		if err != nil {
			return 0, 0, err
		}
		loss := backend.CrossEntropy(logits, batch.Labels)

		grads, err := backend.Tape().Backward(loss, backend)
		if err != nil {
			return 0, 0, err
		}
		optimizer.Step(m.Parameters(), grads)

		lossSum += loss.AsFloat32()[0]
		accSum += nn.Accuracy(backend, logits, batch.Labels)
	}
	n := float32(len(batches))
	return lossSum / n, accSum / n, nil
}

// evaluate returns the mean accuracy over the batches without recording
// gradients beyond what the tape reset discards.
func evaluate[B tensor.Backend](
	m *model.Model[*autodiff.AutodiffBackend[B]],
	backend *autodiff.AutodiffBackend[B],
	batches []*dataset.Batch,
) float32 {
	var accSum float32
	m.SetTraining(false)
	for _, batch := range batches {
		backend.Tape().Reset()
		m.Forward(batch.Images)
		accSum += nn.Accuracy(backend, m.Output(), batch.Labels)
	}
	m.SetTraining(true)
	return accSum / float32(len(batches))
}
