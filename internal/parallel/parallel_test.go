// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForVisitsEveryIndexOnce(t *testing.T) {
	n := 100
	counts := make([]int32, n)
	For(n, func(i int) {
		atomic.AddInt32(&counts[i], 1)
	}, DefaultConfig())
	for i, c := range counts {
		assert.Equal(t, int32(1), c, "index %d", i)
	}
}

func TestForSequentialWhenDisabled(t *testing.T) {
	cfg := Config{Enabled: false}
	order := []int{}
	For(4, func(i int) { order = append(order, i) }, cfg)
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestForSmallLoopRunsInline(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinItems: 10}
	order := []int{}
	For(3, func(i int) { order = append(order, i) }, cfg)
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestForBatchCoversGrid(t *testing.T) {
	batch, channels := 4, 8
	var visited [4][8]atomic.Bool
	ForBatch(batch, channels, func(b, c int) {
		visited[b][c].Store(true)
	}, DefaultConfig())
	for b := 0; b < batch; b++ {
		for c := 0; c < channels; c++ {
			assert.True(t, visited[b][c].Load(), "(%d,%d)", b, c)
		}
	}
}
