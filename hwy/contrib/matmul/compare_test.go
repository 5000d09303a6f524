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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ajroetker/blockmm/internal/log"
)

// observeLogs routes the package logger to an in-memory core for the
// duration of the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := log.ReplaceLogger(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestApproxEqualTolerance(t *testing.T) {
	observeLogs(t)

	a := []float32{1, 2, 3, 4}
	b := []float32{1, 2, 3, 4}
	assert.True(t, ApproxEqual(a, b, 2, 2))

	b[3] = 4 + 5e-7
	assert.True(t, ApproxEqual(a, b, 2, 2), "difference below epsilon")

	b[3] = 4.01
	assert.False(t, ApproxEqual(a, b, 2, 2), "difference above epsilon")

	b[3] = float32(math.NaN())
	assert.False(t, ApproxEqual(a, b, 2, 2), "NaN")

	b[3] = float32(math.Inf(1))
	assert.False(t, ApproxEqual(a, b, 2, 2), "Inf")
}

func TestApproxEqualBoundary(t *testing.T) {
	observeLogs(t)

	four := float32(4)
	ulp4 := math.Nextafter32(four, 5) - four
	tests := []struct {
		name string
		a, b float32
		want bool
	}{
		{"float32(1e-6)", 0, float32(1e-6), true},
		{"next float32 above 1e-6", 0, math.Nextafter32(float32(1e-6), 1), false},
		{"negative float32(1e-6)", float32(1e-6), 0, true},
		{"one ulp at 4", four, four + ulp4, true},
		{"two ulps at 4", four, four + 2*ulp4, true},
		{"three ulps at 4", four, four + 3*ulp4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApproxEqual([]float32{tt.a}, []float32{tt.b}, 1, 1),
				"a=%g b=%g", tt.a, tt.b)
		})
	}
}

func TestFirstMismatchRowMajorOrder(t *testing.T) {
	// 3x2 column-major. Differences at (2,0) (offset 2) and (0,1)
	// (offset 3): the row-major scan reaches (0,1) first.
	a := []float32{0, 0, 0, 0, 0, 0}
	b := []float32{0, 0, 9, 8, 0, 0}

	mismatch, ok := FirstMismatch(a, b, 3, 2)
	require.True(t, ok)
	assert.Equal(t, Mismatch{Row: 0, Col: 1, A: 0, B: 8}, mismatch)
	assert.Equal(t, "i=0, j=1, A=0.000000, B=8.000000", mismatch.String())

	_, ok = FirstMismatch(a, a, 3, 2)
	assert.False(t, ok)
}

func TestFirstMismatchShortInput(t *testing.T) {
	assert.Panics(t, func() { FirstMismatch(make([]float32, 3), make([]float32, 4), 2, 2) })
}

func TestApproxEqualLogsMismatch(t *testing.T) {
	logs := observeLogs(t)

	a := []float32{1, 2, 3, 4}
	b := []float32{1, 2.5, 3, 4.5}
	require.False(t, ApproxEqual(a, b, 2, 2))

	entries := logs.FilterMessage("matrices differ").All()
	require.Len(t, entries, 1, "only the first mismatch is reported")
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(1), fields["row"])
	assert.Equal(t, int64(0), fields["col"])
	assert.Equal(t, float32(2), fields["a"])
	assert.Equal(t, float32(2.5), fields["b"])

	assert.True(t, ApproxEqual(a, a, 2, 2))
	assert.Equal(t, 1, logs.Len(), "equal matrices log nothing")
}
