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

// Package hwy provides a small portable 4-lane vector abstraction with
// runtime CPU dispatch.
//
// Kernels are written once against Vec4 and the lane operations below. On
// targets with hardware fused multiply-add (NEON, AVX2+FMA) the lane FMA is
// math.FMA, which the Go compiler lowers to one native instruction. In
// scalar mode it is an ordinary multiply followed by an add.
//
// Basic usage:
//
//	import "github.com/ajroetker/blockmm/hwy"
//
//	acc := hwy.Zero4[float32]()
//	a := hwy.Load4(col)
//	b := hwy.Load4(weights)
//	acc = hwy.MulAddLane(acc, a, b, 0) // acc += a * b[0]
//	acc.Store(out)
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// Vec4Lanes is the number of lanes in a Vec4. It is the block width of the
// matrix kernels built on this package.
const Vec4Lanes = 4

// Vec4 is a fixed-width vector of four lanes, matching a 128-bit NEON
// float32x4 register. It is a value type: creating, copying and returning
// a Vec4 never allocates.
type Vec4[T Floats] [Vec4Lanes]T

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec4[T]) NumLanes() int {
	return Vec4Lanes
}

// Store writes the vector's four lanes to dst[0:4].
// This is the method form of the hwy.Store4 function.
func (v Vec4[T]) Store(dst []T) {
	_ = dst[Vec4Lanes-1]
	dst[0] = v[0]
	dst[1] = v[1]
	dst[2] = v[2]
	dst[3] = v[3]
}
