// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package serialization

import "errors"

var (
	// ErrBadMagic means the file does not start with the artifact magic.
	ErrBadMagic = errors.New("serialization: bad magic")
	// ErrUnsupportedVersion means the artifact was written by a newer format.
	ErrUnsupportedVersion = errors.New("serialization: unsupported format version")
	// ErrCorrupted means the header and data sections disagree.
	ErrCorrupted = errors.New("serialization: corrupted artifact")
)
