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
	"github.com/juju/errors"

	"github.com/ajroetker/blockmm/hwy"
)

// BlockSize is the edge of the square sub-blocks processed by the blocked
// kernels. It equals the lane count of one vector register.
const BlockSize = hwy.Vec4Lanes

// Block is one BlockSize×BlockSize matrix in column-major order.
type Block [BlockSize * BlockSize]float32

// Matrix is a dense float32 matrix stored in column-major order: element
// (i, j) lives at Data[j*Rows+i]. The buffer is owned by the caller.
type Matrix struct {
	Data []float32
	Rows int
	Cols int
}

// NewMatrix allocates a zeroed rows×cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{Data: make([]float32, rows*cols), Rows: rows, Cols: cols}
}

// Index returns the offset of element (i, j) in Data.
func (m Matrix) Index(i, j int) int {
	return colMajor(m.Rows, i, j)
}

// At returns element (i, j).
func (m Matrix) At(i, j int) float32 {
	return m.Data[colMajor(m.Rows, i, j)]
}

// Set stores v at element (i, j).
func (m Matrix) Set(i, j int, v float32) {
	m.Data[colMajor(m.Rows, i, j)] = v
}

// Col returns column j as a sub-slice of Data.
func (m Matrix) Col(j int) []float32 {
	start := colMajor(m.Rows, 0, j)
	return m.Data[start : start+m.Rows]
}

// Validate checks that the buffer holds exactly Rows*Cols elements.
func (m Matrix) Validate() error {
	if m.Rows <= 0 || m.Cols <= 0 {
		return errors.NotValidf("matrix shape %dx%d", m.Rows, m.Cols)
	}
	if len(m.Data) != m.Rows*m.Cols {
		return errors.NotValidf("matrix length %d for shape %dx%d", len(m.Data), m.Rows, m.Cols)
	}
	return nil
}

// colMajor is the single addressing rule shared by every kernel and the
// comparison oracle.
func colMajor(rows, i, j int) int {
	return j*rows + i
}

// CheckDims reports whether a (n×k), b (k×m) and c (n×m) are valid inputs
// for the kernels. When aligned is true, n, m and k must also be multiples
// of BlockSize, as the blocked kernels require. Errors satisfy
// errors.Is(err, errors.NotValid).
func CheckDims(a, b, c []float32, n, m, k int, aligned bool) error {
	if n <= 0 || m <= 0 || k <= 0 {
		return errors.NotValidf("dimensions n=%d m=%d k=%d", n, m, k)
	}
	if aligned && (n%BlockSize != 0 || m%BlockSize != 0 || k%BlockSize != 0) {
		return errors.NotValidf("dimensions n=%d m=%d k=%d for block size %d", n, m, k, BlockSize)
	}
	if len(a) < n*k {
		return errors.NotValidf("A length %d for %dx%d", len(a), n, k)
	}
	if len(b) < k*m {
		return errors.NotValidf("B length %d for %dx%d", len(b), k, m)
	}
	if len(c) < n*m {
		return errors.NotValidf("C length %d for %dx%d", len(c), n, m)
	}
	return nil
}

// mustCheckDims panics with the CheckDims error. Kernels use it so a
// precondition violation fails fast instead of reading out of bounds.
func mustCheckDims(a, b, c []float32, n, m, k int, aligned bool) {
	if err := CheckDims(a, b, c, n, m, k, aligned); err != nil {
		panic("matmul: " + err.Error())
	}
}
