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

// Package matgen builds and prints column-major test matrices.
package matgen

import (
	"math/rand"

	"github.com/ajroetker/blockmm/hwy/contrib/matmul"
)

// New returns a deterministic source seeded with seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Fill sets every element of dst to a uniform value in [0, 1).
func Fill(r *rand.Rand, dst []float32) {
	for i := range dst {
		dst[i] = r.Float32()
	}
}

// Random allocates a rows×cols matrix filled by Fill.
func Random(r *rand.Rand, rows, cols int) matmul.Matrix {
	m := matmul.NewMatrix(rows, cols)
	Fill(r, m.Data)
	return m
}

// FillConst sets every element of the rows×cols matrix in dst to v.
func FillConst(dst []float32, rows, cols int, v float32) {
	m := matmul.Matrix{Data: dst, Rows: rows, Cols: cols}
	for i := range rows {
		for j := range cols {
			m.Set(i, j, v)
		}
	}
}

// Identity allocates the n×n identity matrix.
func Identity(n int) matmul.Matrix {
	m := matmul.NewMatrix(n, n)
	for i := range n {
		m.Set(i, i, 1)
	}
	return m
}
