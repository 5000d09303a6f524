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

package hwy

import "math"

// This file provides the Vec4 operations. Every operation works lane by
// lane on fixed-size arrays so the compiler can keep vectors in registers
// and no call allocates.

// Load4 creates a vector from the first four elements of src.
// PRECONDITION: len(src) >= 4.
func Load4[T Floats](src []T) Vec4[T] {
	_ = src[Vec4Lanes-1]
	return Vec4[T]{src[0], src[1], src[2], src[3]}
}

// Store4 writes a vector's four lanes to dst.
// PRECONDITION: len(dst) >= 4.
func Store4[T Floats](v Vec4[T], dst []T) {
	v.Store(dst)
}

// Set4 creates a vector with all lanes set to the same value.
func Set4[T Floats](value T) Vec4[T] {
	return Vec4[T]{value, value, value, value}
}

// Zero4 creates a vector with all lanes set to zero.
func Zero4[T Floats]() Vec4[T] {
	return Vec4[T]{}
}

// Add4 performs element-wise addition.
func Add4[T Floats](a, b Vec4[T]) Vec4[T] {
	return Vec4[T]{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

// Mul4 performs element-wise multiplication.
func Mul4[T Floats](a, b Vec4[T]) Vec4[T] {
	return Vec4[T]{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// GetLane extracts a single lane value from the vector.
// Panics if idx is outside [0, 4).
func GetLane[T Floats](v Vec4[T], idx int) T {
	return v[idx]
}

// BroadcastLane returns a vector with every lane set to v[lane].
func BroadcastLane[T Floats](v Vec4[T], lane int) Vec4[T] {
	return Set4(v[lane])
}

// MulAdd computes a*b + c element-wise.
// The multiply-add is fused when HasFMA reports true.
func MulAdd[T Floats](a, b, c Vec4[T]) Vec4[T] {
	return Vec4[T]{
		mulAddScalar(a[0], b[0], c[0]),
		mulAddScalar(a[1], b[1], c[1]),
		mulAddScalar(a[2], b[2], c[2]),
		mulAddScalar(a[3], b[3], c[3]),
	}
}

// MulAddLane computes acc + a*broadcast(b[lane]), the lane-indexed
// multiply-add of NEON's FMLA (by element) instruction:
//
//	result[i] = acc[i] + a[i]*b[lane]
//
// The multiply-add is fused when HasFMA reports true.
func MulAddLane[T Floats](acc, a, b Vec4[T], lane int) Vec4[T] {
	s := b[lane]
	return Vec4[T]{
		mulAddScalar(a[0], s, acc[0]),
		mulAddScalar(a[1], s, acc[1]),
		mulAddScalar(a[2], s, acc[2]),
		mulAddScalar(a[3], s, acc[3]),
	}
}

// FMA computes a*b + c element-wise as a fused operation, regardless of
// the dispatch level.
func FMA[T Floats](a, b, c Vec4[T]) Vec4[T] {
	return Vec4[T]{
		fmaScalar(a[0], b[0], c[0]),
		fmaScalar(a[1], b[1], c[1]),
		fmaScalar(a[2], b[2], c[2]),
		fmaScalar(a[3], b[3], c[3]),
	}
}

// ReduceSum sums all lanes.
func ReduceSum[T Floats](v Vec4[T]) T {
	return (v[0] + v[1]) + (v[2] + v[3])
}

// MulAddScalar computes a*b + c for one element with the same rounding as
// a single lane of MulAdd and MulAddLane.
func MulAddScalar[T Floats](a, b, c T) T {
	return mulAddScalar(a, b, c)
}

// mulAddScalar computes a*b + c, fused on FMA targets.
func mulAddScalar[T Floats](a, b, c T) T {
	if hasFMA {
		return fmaScalar(a, b, c)
	}
	// The explicit conversion rounds the product and stops the compiler
	// from fusing the expression on arm64.
	return T(a*b) + c
}

// fmaScalar computes a*b + c for a single element without rounding the
// product. For float32 operands the product is exact in float64 and the sum
// is rounded back to float32 on conversion.
func fmaScalar[T Floats](a, b, c T) T {
	return T(math.FMA(float64(a), float64(b), float64(c)))
}
