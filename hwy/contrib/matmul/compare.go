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
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/ajroetker/blockmm/internal/log"
)

// Epsilon is the absolute tolerance of ApproxEqual. Differences are
// compared in float64, so float32(1e-6) itself is still within tolerance.
const Epsilon float64 = 1e-6

// Mismatch describes the first pair of elements that failed ApproxEqual.
type Mismatch struct {
	Row int
	Col int
	A   float32
	B   float32
}

func (m Mismatch) String() string {
	return fmt.Sprintf("i=%d, j=%d, A=%f, B=%f", m.Row, m.Col, m.A, m.B)
}

// approxEqual reports |a-b| < Epsilon. NaN and infinite differences fail
// the comparison and therefore count as not equal.
func approxEqual(a, b float32) bool {
	return float64(math32.Abs(a-b)) < Epsilon
}

// FirstMismatch scans two column-major rows×cols matrices in row-major
// order and returns the first element pair that is not approximately
// equal. ok is false when every pair matches.
func FirstMismatch(a, b []float32, rows, cols int) (mismatch Mismatch, ok bool) {
	if len(a) < rows*cols || len(b) < rows*cols {
		panic("matmul: compared matrices shorter than rows*cols")
	}
	for i := range rows {
		for j := range cols {
			x := a[colMajor(rows, i, j)]
			y := b[colMajor(rows, i, j)]
			if !approxEqual(x, y) {
				return Mismatch{Row: i, Col: j, A: x, B: y}, true
			}
		}
	}
	return Mismatch{}, false
}

// ApproxEqual returns true iff every element of a is within Epsilon of the
// corresponding element of b. On the first mismatch it logs the row,
// column and both values before returning false.
func ApproxEqual(a, b []float32, rows, cols int) bool {
	mismatch, found := FirstMismatch(a, b, rows, cols)
	if !found {
		return true
	}
	log.Logger().Warn("matrices differ",
		zap.Int("row", mismatch.Row),
		zap.Int("col", mismatch.Col),
		zap.Float32("a", mismatch.A),
		zap.Float32("b", mismatch.B))
	return false
}
