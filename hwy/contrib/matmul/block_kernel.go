// Copyright 2024 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import "github.com/ajroetker/blockmm/hwy"

// MatMulBlock4x4 computes C = A * B for exactly one 4x4 block.
//
// It is MatMulBlocked with i = j = t = 0 and the loops removed: A is loaded
// once as four column vectors and each column of C is produced from one
// column of B with four lane-indexed multiply-adds. The array arguments make
// the 16-element shape part of the signature, so there is nothing to check
// at run time.
func MatMulBlock4x4(a, b, c *Block) {
	a0 := hwy.Load4(a[0:])
	a1 := hwy.Load4(a[4:])
	a2 := hwy.Load4(a[8:])
	a3 := hwy.Load4(a[12:])

	// Multiply accumulate in 4x1 blocks, i.e. each column in C
	b0 := hwy.Load4(b[0:])
	c0 := hwy.Zero4[float32]()
	c0 = hwy.MulAddLane(c0, a0, b0, 0)
	c0 = hwy.MulAddLane(c0, a1, b0, 1)
	c0 = hwy.MulAddLane(c0, a2, b0, 2)
	c0 = hwy.MulAddLane(c0, a3, b0, 3)
	c0.Store(c[0:])

	b1 := hwy.Load4(b[4:])
	c1 := hwy.Zero4[float32]()
	c1 = hwy.MulAddLane(c1, a0, b1, 0)
	c1 = hwy.MulAddLane(c1, a1, b1, 1)
	c1 = hwy.MulAddLane(c1, a2, b1, 2)
	c1 = hwy.MulAddLane(c1, a3, b1, 3)
	c1.Store(c[4:])

	b2 := hwy.Load4(b[8:])
	c2 := hwy.Zero4[float32]()
	c2 = hwy.MulAddLane(c2, a0, b2, 0)
	c2 = hwy.MulAddLane(c2, a1, b2, 1)
	c2 = hwy.MulAddLane(c2, a2, b2, 2)
	c2 = hwy.MulAddLane(c2, a3, b2, 3)
	c2.Store(c[8:])

	b3 := hwy.Load4(b[12:])
	c3 := hwy.Zero4[float32]()
	c3 = hwy.MulAddLane(c3, a0, b3, 0)
	c3 = hwy.MulAddLane(c3, a1, b3, 1)
	c3 = hwy.MulAddLane(c3, a2, b3, 2)
	c3 = hwy.MulAddLane(c3, a3, b3, 3)
	c3.Store(c[12:])
}

// MatMul4x4 is the slice form of MatMulBlock4x4.
// Each of a, b and c must hold exactly 16 elements.
func MatMul4x4(a, b, c []float32) {
	if len(a) != len(Block{}) {
		panic("matmul: A is not a 4x4 block")
	}
	if len(b) != len(Block{}) {
		panic("matmul: B is not a 4x4 block")
	}
	if len(c) != len(Block{}) {
		panic("matmul: C is not a 4x4 block")
	}
	MatMulBlock4x4((*Block)(a), (*Block)(b), (*Block)(c))
}
