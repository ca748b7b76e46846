// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package parallel fans independent kernel iterations out over worker
// goroutines. The CPU backend uses it to spread convolution and pooling
// work across samples and channel planes.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls fan-out behavior.
type Config struct {
	Enabled    bool // run iterations concurrently
	NumWorkers int  // goroutines to spread chunks over
	MinItems   int  // below this the loop runs inline
}

// DefaultConfig sizes the pool to the CPU count. MinItems is low because
// each iteration is a whole sample or channel plane, not a single element.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinItems:   2,
	}
}

// For executes f(i) for i in [0, n), chunked over workers. Each index runs
// exactly once; f must not touch state shared across indices without its
// own synchronization.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinItems || cfg.NumWorkers < 2 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := (n + cfg.NumWorkers - 1) / cfg.NumWorkers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForBatch iterates the (sample, channel) grid common to pooling and
// normalization kernels.
func ForBatch(batch, channels int, f func(b, c int), cfg Config) {
	For(batch*channels, func(k int) {
		f(k/channels, k%channels)
	}, cfg)
}
