// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package matmul provides register-blocked single-precision matrix
// multiplication on column-major matrices, built on the 4-lane vector
// operations of package hwy.
//
// Element (i, j) of an r-row matrix is stored at offset j*r + i.
//
// Example usage:
//
//	// C = A * B where A is n x k, B is k x m, C is n x m
//	a := make([]float32, n*k) // column-major
//	b := make([]float32, k*m) // column-major
//	c := make([]float32, n*m) // output, column-major
//
//	matmul.MatMulBlocked(a, b, c, n, m, k) // n, m, k multiples of 4
//
//	want := make([]float32, n*m)
//	matmul.MatMulReference(a, b, want, n, m, k)
//	ok := matmul.ApproxEqual(want, c, n, m)
//
// The kernels are:
//   - MatMulReference: naive triple loop, any dimensions
//   - MatMulBlocked: 4x4 blocks with lane-indexed multiply-add
//   - MatMulBlock4x4: one fully unrolled 4x4 block
//
// Kernels never allocate and keep no state between calls. Calls on
// disjoint buffers may run concurrently; aliased buffers are unsupported.
package matmul
