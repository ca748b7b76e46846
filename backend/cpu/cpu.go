// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cpu is the public entry point for the pure-Go CPU backend.
package cpu

import (
	"github.com/mihirkhandekar/supervision/internal/backend/cpu"
)

// Backend computes on the host CPU.
type Backend = cpu.Backend

// New returns a CPU backend.
func New() *Backend { return cpu.New() }
