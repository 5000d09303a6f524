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

package matmul

import (
	"math"

	"github.com/ajroetker/blockmm/hwy"
)

// MatMulReference computes C = A * B with the naive triple loop where:
//   - A is n x k (column-major)
//   - B is k x m (column-major)
//   - C is n x m (column-major)
//
// It is the correctness oracle for the blocked kernels and accepts any
// positive dimensions. Products are accumulated in ascending t and rounded
// the way the vector lanes round on this target: fused when hwy.HasFMA
// reports true, product then sum otherwise. The arithmetic is written out
// here rather than taken from package hwy.
func MatMulReference(a, b, c []float32, n, m, k int) {
	mustCheckDims(a, b, c, n, m, k, false)

	fused := hwy.HasFMA()
	for i := range n {
		for j := range m {
			var sum float32
			for t := range k {
				x, y := a[colMajor(n, i, t)], b[colMajor(k, t, j)]
				if fused {
					sum = float32(math.FMA(float64(x), float64(y), float64(sum)))
				} else {
					sum += float32(x * y)
				}
			}
			c[colMajor(n, i, j)] = sum
		}
	}
}

// MatMulBlocked computes C = A * B (all column-major, shapes as in
// MatMulReference) one BlockSize×BlockSize block of C at a time.
//
// For each output block (i, j) four column accumulators C0..C3 stay in
// registers across the whole k loop. Every step loads the 4x4 block of A at
// (i, t) as four column vectors, then for each output column c loads
// column j+c of B's block at (t, j) and accumulates
//
//	Cc += A0*B_c[0] + A1*B_c[1] + A2*B_c[2] + A3*B_c[3]
//
// with lane-indexed multiply-adds. n, m and k must be multiples of
// BlockSize; violating that panics.
func MatMulBlocked(a, b, c []float32, n, m, k int) {
	mustCheckDims(a, b, c, n, m, k, true)

	for i := 0; i < n; i += BlockSize {
		for j := 0; j < m; j += BlockSize {
			// Zero accumulators before the k loop
			c0 := hwy.Zero4[float32]()
			c1 := hwy.Zero4[float32]()
			c2 := hwy.Zero4[float32]()
			c3 := hwy.Zero4[float32]()

			for t := 0; t < k; t += BlockSize {
				aIdx := colMajor(n, i, t)
				bIdx := colMajor(k, t, j)

				a0 := hwy.Load4(a[aIdx:])
				a1 := hwy.Load4(a[aIdx+n:])
				a2 := hwy.Load4(a[aIdx+2*n:])
				a3 := hwy.Load4(a[aIdx+3*n:])

				b0 := hwy.Load4(b[bIdx:])
				c0 = hwy.MulAddLane(c0, a0, b0, 0)
				c0 = hwy.MulAddLane(c0, a1, b0, 1)
				c0 = hwy.MulAddLane(c0, a2, b0, 2)
				c0 = hwy.MulAddLane(c0, a3, b0, 3)

				b1 := hwy.Load4(b[bIdx+k:])
				c1 = hwy.MulAddLane(c1, a0, b1, 0)
				c1 = hwy.MulAddLane(c1, a1, b1, 1)
				c1 = hwy.MulAddLane(c1, a2, b1, 2)
				c1 = hwy.MulAddLane(c1, a3, b1, 3)

				b2 := hwy.Load4(b[bIdx+2*k:])
				c2 = hwy.MulAddLane(c2, a0, b2, 0)
				c2 = hwy.MulAddLane(c2, a1, b2, 1)
				c2 = hwy.MulAddLane(c2, a2, b2, 2)
				c2 = hwy.MulAddLane(c2, a3, b2, 3)

				b3 := hwy.Load4(b[bIdx+3*k:])
				c3 = hwy.MulAddLane(c3, a0, b3, 0)
				c3 = hwy.MulAddLane(c3, a1, b3, 1)
				c3 = hwy.MulAddLane(c3, a2, b3, 2)
				c3 = hwy.MulAddLane(c3, a3, b3, 3)
			}

			cIdx := colMajor(n, i, j)
			c0.Store(c[cIdx:])
			c1.Store(c[cIdx+n:])
			c2.Store(c[cIdx+2*n:])
			c3.Store(c[cIdx+3*n:])
		}
	}
}
