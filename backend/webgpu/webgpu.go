// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package webgpu is the public entry point for the WebGPU backend.
package webgpu

import (
	"github.com/mihirkhandekar/supervision/internal/backend/webgpu"
)

// Backend computes through WebGPU compute pipelines, delegating operations
// without a WGSL kernel to the CPU backend.
type Backend = webgpu.Backend

// New initializes the WebGPU device. Returns an error when no WebGPU
// implementation is available on the system.
func New() (*Backend, error) { return webgpu.New() }
