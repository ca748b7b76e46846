// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Save writes tensors to path, creating parent directories as needed.
// Tensors are written in sorted name order so artifacts are deterministic.
func Save(path string, tensors map[string]*tensor.RawTensor) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		names = append(names, name)
	}
	sort.Strings(names)

	hdr := header{Tensors: make([]tensorEntry, 0, len(names))}
	offset := uint64(0)
	for _, name := range names {
		t := tensors[name]
		size := uint64(len(t.Bytes()))
		hdr.Tensors = append(hdr.Tensors, tensorEntry{
			Name:   name,
			DType:  t.DType().String(),
			Shape:  t.Shape(),
			Offset: offset,
			Size:   size,
		})
		offset = uint64(alignUp(int(offset+size), dataAlignment))
	}

	hdrJSON, err := json.Marshal(hdr)
	if err != nil {
		return fmt.Errorf("serialization: encode header: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("serialization: create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("serialization: create artifact: %w", err)
	}
	defer f.Close()

	prefix := make([]byte, headerOffset)
	copy(prefix, magic[:])
	binary.LittleEndian.PutUint32(prefix[4:], FormatVersion)
	binary.LittleEndian.PutUint64(prefix[8:], uint64(len(hdrJSON)))
	if _, err := f.Write(prefix); err != nil {
		return fmt.Errorf("serialization: write prefix: %w", err)
	}
	if _, err := f.Write(hdrJSON); err != nil {
		return fmt.Errorf("serialization: write header: %w", err)
	}

	dataStart := alignUp(headerOffset+len(hdrJSON), dataAlignment)
	pos := headerOffset + len(hdrJSON)
	if err := writeZeros(f, dataStart-pos); err != nil {
		return err
	}
	pos = 0
	for _, entry := range hdr.Tensors {
		if err := writeZeros(f, int(entry.Offset)-pos); err != nil {
			return err
		}
		data := tensors[entry.Name].Bytes()
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("serialization: write tensor %s: %w", entry.Name, err)
		}
		pos = int(entry.Offset) + len(data)
	}
	return nil
}

func writeZeros(f *os.File, n int) error {
	if n <= 0 {
		return nil
	}
	if _, err := f.Write(make([]byte, n)); err != nil {
		return fmt.Errorf("serialization: write padding: %w", err)
	}
	return nil
}
