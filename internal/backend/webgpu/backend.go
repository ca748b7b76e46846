// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package webgpu implements a GPU backend over WebGPU using go-webgpu's
// zero-CGO bindings. Elementwise, scalar, unary and rank-2 matrix multiply
// kernels run as WGSL compute shaders; the remaining operations delegate to
// an embedded CPU backend so the backend is usable for every model op.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/mihirkhandekar/supervision/internal/backend/cpu"
	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Backend computes on the GPU through WebGPU compute pipelines.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	mu        sync.RWMutex
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline

	// cpu handles operations without a WGSL kernel.
	cpu *cpu.Backend
}

// New initializes the WebGPU instance, adapter and device. Returns an error
// when no WebGPU implementation is available.
func New() (backend *Backend, err error) {
	// The native library loads lazily and panics when absent.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, ierr := wgpu.CreateInstance(nil)
	if ierr != nil {
		return nil, fmt.Errorf("webgpu: create instance: %w", ierr)
	}
	adapter, aerr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if aerr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: request adapter: %w", aerr)
	}
	device, derr := adapter.RequestDevice(nil)
	if derr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: request device: %w", derr)
	}
	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: no queue on device")
	}

	return &Backend{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
		cpu:       cpu.New(),
	}, nil
}

// Release frees every GPU resource.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.pipelines {
		p.Release()
	}
	for _, s := range b.shaders {
		s.Release()
	}
	b.device.Release()
	b.adapter.Release()
	b.instance.Release()
}

func (b *Backend) Name() string          { return "webgpu" }
func (b *Backend) Device() tensor.Device { return tensor.WebGPU }

func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, ok := b.shaders[name]; ok {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)
	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()
	return shader
}

func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, ok := b.pipelines[name]; ok {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")
	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()
	return pipeline
}
