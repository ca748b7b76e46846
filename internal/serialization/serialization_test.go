// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package serialization

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihirkhandekar/supervision/internal/tensor"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models", "test.sprv")

	weight, err := tensor.NewRawFromFloat32([]float32{1.5, -2.5, 3.5, 4.5, 0, -1}, tensor.Shape{2, 3})
	require.NoError(t, err)
	labels, err := tensor.NewRawFromInt32([]int32{7, 8, 9}, tensor.Shape{3})
	require.NoError(t, err)

	require.NoError(t, Save(path, map[string]*tensor.RawTensor{
		"layer.weight": weight,
		"labels":       labels,
	}))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	got := loaded["layer.weight"]
	assert.Equal(t, tensor.Shape{2, 3}, got.Shape())
	assert.Equal(t, weight.AsFloat32(), got.AsFloat32())

	assert.Equal(t, []int32{7, 8, 9}, loaded["labels"].AsInt32())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.sprv"))
	assert.Error(t, err)
}

func TestLoadBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.sprv")
	require.NoError(t, os.WriteFile(path, append([]byte("NOPE"), make([]byte, 12)...), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestLoadUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.sprv")
	data := make([]byte, 16)
	copy(data, "SPRV")
	binary.LittleEndian.PutUint32(data[4:], 99)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestLoadTruncated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.sprv")
	w := tensor.NewRawFull(tensor.Shape{128}, 1)
	require.NoError(t, Save(path, map[string]*tensor.RawTensor{"w": w}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-64], 0o644))

	_, lerr := Load(path)
	assert.ErrorIs(t, lerr, ErrCorrupted)
}

func TestSaveDeterministic(t *testing.T) {
	dir := t.TempDir()
	tensors := map[string]*tensor.RawTensor{
		"b": tensor.NewRawFull(tensor.Shape{3}, 2),
		"a": tensor.NewRawFull(tensor.Shape{5}, 1),
	}

	p1 := filepath.Join(dir, "one.sprv")
	p2 := filepath.Join(dir, "two.sprv")
	require.NoError(t, Save(p1, tensors))
	require.NoError(t, Save(p2, tensors))

	d1, err := os.ReadFile(p1)
	require.NoError(t, err)
	d2, err := os.ReadFile(p2)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}
