// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

// Load reads every tensor from the artifact at path.
func Load(path string) (map[string]*tensor.RawTensor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("serialization: read artifact: %w", err)
	}
	if len(raw) < headerOffset {
		return nil, fmt.Errorf("%w: file too short", ErrCorrupted)
	}
	if !bytes.Equal(raw[:4], magic[:]) {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint32(raw[4:8]); v != FormatVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, v)
	}

	hdrLen := binary.LittleEndian.Uint64(raw[8:16])
	if headerOffset+hdrLen > uint64(len(raw)) {
		return nil, fmt.Errorf("%w: header extends past end of file", ErrCorrupted)
	}
	var hdr header
	if err := json.Unmarshal(raw[headerOffset:headerOffset+hdrLen], &hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	dataStart := uint64(alignUp(headerOffset+int(hdrLen), dataAlignment))
	tensors := make(map[string]*tensor.RawTensor, len(hdr.Tensors))
	for _, entry := range hdr.Tensors {
		dtype, err := parseDType(entry.DType)
		if err != nil {
			return nil, err
		}
		shape := tensor.Shape(entry.Shape)
		if uint64(shape.NumElements()*dtype.Size()) != entry.Size {
			return nil, fmt.Errorf("%w: tensor %s size does not match shape", ErrCorrupted, entry.Name)
		}
		start := dataStart + entry.Offset
		end := start + entry.Size
		if end > uint64(len(raw)) {
			return nil, fmt.Errorf("%w: tensor %s extends past end of file", ErrCorrupted, entry.Name)
		}
		data := make([]byte, entry.Size)
		copy(data, raw[start:end])
		t, err := tensor.NewRawFromBytes(data, shape, dtype)
		if err != nil {
			return nil, fmt.Errorf("%w: tensor %s: %v", ErrCorrupted, entry.Name, err)
		}
		tensors[entry.Name] = t
	}
	return tensors, nil
}
