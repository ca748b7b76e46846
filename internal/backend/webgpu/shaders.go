// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package webgpu

import "fmt"

const workgroupSize = 256

// binaryShaderWGSL builds an elementwise kernel for two same-shape inputs.
func binaryShaderWGSL(expr string) string {
	return fmt.Sprintf(`
struct Params {
    size: u32,
}

@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> out: array<f32>;
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = gid.x;
    if (i >= params.size) {
        return;
    }
    out[i] = %s;
}
`, workgroupSize, expr)
}

// scalarShaderWGSL builds a kernel applying a scalar carried in the uniform.
func scalarShaderWGSL(expr string) string {
	return fmt.Sprintf(`
struct Params {
    size: u32,
    scalar: f32,
}

@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> out: array<f32>;
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = gid.x;
    if (i >= params.size) {
        return;
    }
    out[i] = %s;
}
`, workgroupSize, expr)
}

// unaryShaderWGSL builds a single-input elementwise kernel.
func unaryShaderWGSL(expr string) string {
	return fmt.Sprintf(`
struct Params {
    size: u32,
}

@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> out: array<f32>;
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = gid.x;
    if (i >= params.size) {
        return;
    }
    out[i] = %s;
}
`, workgroupSize, expr)
}

var (
	addShader = binaryShaderWGSL("a[i] + b[i]")
	subShader = binaryShaderWGSL("a[i] - b[i]")
	mulShader = binaryShaderWGSL("a[i] * b[i]")
	divShader = binaryShaderWGSL("a[i] / b[i]")

	addScalarShader = scalarShaderWGSL("a[i] + params.scalar")
	subScalarShader = scalarShaderWGSL("a[i] - params.scalar")
	mulScalarShader = scalarShaderWGSL("a[i] * params.scalar")
	divScalarShader = scalarShaderWGSL("a[i] / params.scalar")

	expShader  = unaryShaderWGSL("exp(a[i])")
	logShader  = unaryShaderWGSL("log(a[i])")
	sqrtShader = unaryShaderWGSL("sqrt(a[i])")
	reluShader = unaryShaderWGSL("max(a[i], 0.0)")
)

// matmulShader multiplies row-major a [m,k] by b [k,n] into out [m,n].
// One invocation computes one output element.
var matmulShader = fmt.Sprintf(`
struct Params {
    m: u32,
    k: u32,
    n: u32,
}

@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> out: array<f32>;
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let i = gid.x;
    if (i >= params.m * params.n) {
        return;
    }
    let row = i / params.n;
    let col = i %% params.n;
    var acc = 0.0;
    for (var p = 0u; p < params.k; p = p + 1u) {
        acc = acc + a[row * params.k + p] * b[p * params.n + col];
    }
    out[i] = acc;
}
`, workgroupSize)
