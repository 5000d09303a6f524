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

// Package blas runs column-major products through gonum's SGEMM. It is an
// independent cross-check and a speed baseline for the matmul kernels.
package blas

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// MatMul computes C = A * B for column-major A (n x k), B (k x m) and
// C (n x m), with the matmul.Kernel signature.
//
// gonum is row-major, and a column-major r×c matrix is the row-major
// c×r transpose, so the product is evaluated as C^T = B^T * A^T.
func MatMul(a, b, c []float32, n, m, k int) {
	bt := blas32.General{Rows: m, Cols: k, Stride: k, Data: b}
	at := blas32.General{Rows: k, Cols: n, Stride: n, Data: a}
	ct := blas32.General{Rows: m, Cols: n, Stride: n, Data: c}
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, bt, at, 0, ct)
}
