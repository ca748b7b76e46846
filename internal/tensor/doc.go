// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package tensor provides the core tensor types: the untyped RawTensor that
// backends compute on, the generic typed Tensor wrapper, and the Backend
// interface that compute devices implement.
package tensor
