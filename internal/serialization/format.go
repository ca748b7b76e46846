// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package serialization reads and writes model weight artifacts.
//
// Layout:
//
//	bytes 0-3    magic "SPRV"
//	bytes 4-7    format version, little-endian uint32
//	bytes 8-15   header length, little-endian uint64
//	             JSON header (tensor names, dtypes, shapes, offsets)
//	             zero padding to a 64-byte boundary
//	             raw tensor data, each tensor at its recorded offset
//
// Offsets in the header are relative to the start of the data section.
package serialization

import (
	"fmt"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

const (
	// FormatVersion is the current artifact version.
	FormatVersion uint32 = 1

	headerOffset  = 16
	dataAlignment = 64
)

var magic = [4]byte{'S', 'P', 'R', 'V'}

// tensorEntry describes one tensor in the JSON header.
type tensorEntry struct {
	Name   string `json:"name"`
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Offset uint64 `json:"offset"`
	Size   uint64 `json:"size"`
}

// header is the JSON document between the fixed prefix and the data section.
type header struct {
	Tensors []tensorEntry `json:"tensors"`
}

func alignUp(n, alignment int) int {
	rem := n % alignment
	if rem == 0 {
		return n
	}
	return n + alignment - rem
}

func parseDType(name string) (tensor.DataType, error) {
	switch name {
	case "float32":
		return tensor.Float32, nil
	case "int32":
		return tensor.Int32, nil
	case "uint8":
		return tensor.Uint8, nil
	default:
		return 0, fmt.Errorf("%w: unknown dtype %q", ErrCorrupted, name)
	}
}
