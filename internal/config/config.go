// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads and validates training configuration.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Train holds the training hyperparameters and paths.
type Train struct {
	// DataDir contains the CIFAR-100 binary files.
	DataDir string `yaml:"data_dir" validate:"required"`
	// ModelPath is where the trained artifact is written.
	ModelPath string `yaml:"model_path" validate:"required"`

	Epochs       int     `yaml:"epochs" validate:"gt=0"`
	BatchSize    int     `yaml:"batch_size" validate:"gt=0"`
	LearningRate float32 `yaml:"learning_rate" validate:"gt=0"`
	Momentum     float32 `yaml:"momentum" validate:"gte=0,lt=1"`
	WeightDecay  float32 `yaml:"weight_decay" validate:"gte=0"`

	ImageHeight int `yaml:"image_height" validate:"gt=0"`
	ImageWidth  int `yaml:"image_width" validate:"gt=0"`

	// Backend selects the compute device.
	Backend string `yaml:"backend" validate:"oneof=cpu webgpu"`

	// Seed fixes weight initialization and shuffling.
	Seed int64 `yaml:"seed"`
}

// Default returns the training configuration matching the reference
// hyperparameters.
func Default() Train {
	return Train{
		DataDir:      "data/cifar-100-binary",
		ModelPath:    "saved_models/alexnet.sprv",
		Epochs:       90,
		BatchSize:    64,
		LearningRate: 0.02,
		Momentum:     0.9,
		WeightDecay:  5e-4,
		ImageHeight:  224,
		ImageWidth:   224,
		Backend:      "cpu",
		Seed:         1,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Train, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Train) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
