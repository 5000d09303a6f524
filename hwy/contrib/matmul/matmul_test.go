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
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/ajroetker/blockmm/hwy"
)

// fillRandom fills s with uniform values in [0, 1).
func fillRandom(rng *rand.Rand, s []float32) {
	for i := range s {
		s[i] = rng.Float32()
	}
}

// naiveColMajor is a float64 triple loop, independent of the kernels'
// addressing helper and rounding.
func naiveColMajor(a, b []float32, n, m, k int) []float32 {
	c := make([]float32, n*m)
	for i := range n {
		for j := range m {
			var sum float64
			for t := range k {
				sum += float64(a[t*n+i]) * float64(b[j*k+t])
			}
			c[j*n+i] = float32(sum)
		}
	}
	return c
}

func sizeStr(n, m, k int) string {
	return fmt.Sprintf("%dx%dx%d", n, m, k)
}

func TestMatMulReferenceSmall(t *testing.T) {
	// A is 2x3, B is 3x2, column-major.
	a := []float32{1, 2, 3, 4, 5, 6}
	b := []float32{7, 8, 9, 10, 11, 12}
	c := make([]float32, 4)

	MatMulReference(a, b, c, 2, 2, 3)
	assert.Equal(t, []float32{76, 100, 103, 136}, c)
}

func TestMatMulReferenceOverwritesC(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{1, 0, 0, 1}
	c := []float32{99, 99, 99, 99}

	MatMulReference(a, b, c, 2, 2, 2)
	assert.Equal(t, a, c)
}

func TestMatMulReferenceRounding(t *testing.T) {
	// x*x = 1 + 2^-11 + 2^-24 is not a float32. Accumulated onto
	// -(1 + 2^-11) it leaves 2^-24 when fused and 0 when the product is
	// rounded first.
	x := float32(1) + float32(math.Ldexp(1, -12))
	c0 := -float32(1) - float32(math.Ldexp(1, -11))
	a := []float32{1, x}
	b := []float32{c0, x}
	c := make([]float32, 1)

	MatMulReference(a, b, c, 1, 1, 2)
	want := float32(0)
	if hwy.HasFMA() {
		want = float32(math.Ldexp(1, -24))
	}
	assert.Equal(t, want, c[0], "dispatch %s", hwy.CurrentName())

	// The lane multiply-add rounds the same way.
	assert.Equal(t, hwy.MulAddScalar(x, x, c0), c[0])
}

func TestMatMulReferenceOddSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, dims := range [][3]int{{1, 1, 1}, {3, 5, 7}, {5, 1, 2}, {1, 9, 4}} {
		n, m, k := dims[0], dims[1], dims[2]
		t.Run(sizeStr(n, m, k), func(t *testing.T) {
			a := make([]float32, n*k)
			b := make([]float32, k*m)
			c := make([]float32, n*m)
			fillRandom(rng, a)
			fillRandom(rng, b)

			MatMulReference(a, b, c, n, m, k)
			if diff := cmp.Diff(naiveColMajor(a, b, n, m, k), c, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
				t.Errorf("MatMulReference mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatMulBlockedMatchesReference(t *testing.T) {
	t.Logf("Dispatch level: %s", hwy.CurrentName())

	rng := rand.New(rand.NewSource(1))
	dims := [][3]int{
		{4, 4, 4},
		{8, 8, 8},
		{8, 4, 12},
		{4, 16, 8},
		{12, 8, 4},
		{32, 32, 32},
		{64, 48, 96},
	}
	for _, d := range dims {
		n, m, k := d[0], d[1], d[2]
		t.Run(sizeStr(n, m, k), func(t *testing.T) {
			a := make([]float32, n*k)
			b := make([]float32, k*m)
			want := make([]float32, n*m)
			got := make([]float32, n*m)
			fillRandom(rng, a)
			fillRandom(rng, b)

			MatMulReference(a, b, want, n, m, k)
			MatMulBlocked(a, b, got, n, m, k)

			assert.True(t, ApproxEqual(want, got, n, m))
			if diff := cmp.Diff(naiveColMajor(a, b, n, m, k), got, cmpopts.EquateApprox(1e-5, 1e-6)); diff != "" {
				t.Errorf("MatMulBlocked vs float64 loop (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatMulBlockedBitExact(t *testing.T) {
	// The reference rounds like the lane multiply-add and sums in the same
	// order, so the two kernels agree exactly whatever the dispatch level.
	rng := rand.New(rand.NewSource(5))
	n, m, k := 16, 8, 12
	a := make([]float32, n*k)
	b := make([]float32, k*m)
	fillRandom(rng, a)
	fillRandom(rng, b)

	want := make([]float32, n*m)
	got := make([]float32, n*m)
	MatMulReference(a, b, want, n, m, k)
	MatMulBlocked(a, b, got, n, m, k)
	assert.Equal(t, want, got, "dispatch %s", hwy.CurrentName())
}

func TestMatMulBlockedKnownValues(t *testing.T) {
	// A[i,t] = i + 4t, B[t,j] = 1 when t == j else 0 (the 4x4 identity
	// embedded in a 8x4 B): C must be the first four columns of A.
	n, m, k := 4, 4, 8
	a := make([]float32, n*k)
	for i := range a {
		a[i] = float32(i)
	}
	b := make([]float32, k*m)
	for j := range m {
		b[j*k+j] = 1
	}
	c := make([]float32, n*m)

	MatMulBlocked(a, b, c, n, m, k)
	assert.Equal(t, a[:n*m], c)
}

func TestZeroMatrixLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n, m, k := 8, 12, 4
	a := make([]float32, n*k)
	b := make([]float32, k*m)
	fillRandom(rng, a)
	fillRandom(rng, b)
	zeroA := make([]float32, n*k)
	zeroB := make([]float32, k*m)

	for name, kernel := range map[string]Kernel{"reference": MatMulReference, "blocked": MatMulBlocked} {
		t.Run(name, func(t *testing.T) {
			c := make([]float32, n*m)
			for i := range c {
				c[i] = 42
			}
			kernel(a, zeroB, c, n, m, k)
			assert.Equal(t, make([]float32, n*m), c, "A * 0")

			for i := range c {
				c[i] = 42
			}
			kernel(zeroA, b, c, n, m, k)
			assert.Equal(t, make([]float32, n*m), c, "0 * B")
		})
	}
}

func TestMatMulBlockedPreconditions(t *testing.T) {
	a := make([]float32, 64)
	b := make([]float32, 64)
	c := make([]float32, 64)

	tests := []struct {
		name    string
		n, m, k int
		a, b, c []float32
	}{
		{"unaligned n", 6, 4, 4, a, b, c},
		{"unaligned m", 4, 5, 4, a, b, c},
		{"unaligned k", 4, 4, 3, a, b, c},
		{"zero dimension", 0, 4, 4, a, b, c},
		{"short A", 8, 4, 8, a[:63], b, c},
		{"short B", 4, 8, 8, a, b[:63], c},
		{"short C", 8, 8, 4, a, b, c[:63]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { MatMulBlocked(tt.a, tt.b, tt.c, tt.n, tt.m, tt.k) })
		})
	}

	// The reference kernel accepts unaligned shapes but not short buffers.
	assert.NotPanics(t, func() { MatMulReference(a, b, c, 6, 5, 3) })
	assert.Panics(t, func() { MatMulReference(a[:10], b, c, 4, 4, 4) })
}

func TestMatMulBlockedNoAllocs(t *testing.T) {
	n, m, k := 16, 16, 16
	a := make([]float32, n*k)
	b := make([]float32, k*m)
	c := make([]float32, n*m)
	allocs := testing.AllocsPerRun(10, func() {
		MatMulBlocked(a, b, c, n, m, k)
	})
	assert.Zero(t, allocs)
}

func BenchmarkMatMul(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{16, 64, 128, 256} {
		a := make([]float32, size*size)
		bm := make([]float32, size*size)
		c := make([]float32, size*size)
		fillRandom(rng, a)
		fillRandom(rng, bm)

		b.Run("Reference/"+sizeStr(size, size, size), func(b *testing.B) {
			for b.Loop() {
				MatMulReference(a, bm, c, size, size, size)
			}
		})
		b.Run("Blocked/"+sizeStr(size, size, size), func(b *testing.B) {
			for b.Loop() {
				MatMulBlocked(a, bm, c, size, size, size)
			}
		})
	}
}
