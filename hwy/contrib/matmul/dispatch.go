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
	"sort"

	"github.com/juju/errors"
	"github.com/samber/lo"
)

// Kernel is the common signature of the matrix kernels: C = A * B with A
// n x k, B k x m and C n x m, all column-major.
type Kernel func(a, b, c []float32, n, m, k int)

// Aligned reports whether n, m and k are all multiples of BlockSize.
func Aligned(n, m, k int) bool {
	return n%BlockSize == 0 && m%BlockSize == 0 && k%BlockSize == 0
}

// MatMulAuto selects the kernel from the shape: the blocked kernel when
// every dimension is a multiple of BlockSize, the reference kernel
// otherwise.
func MatMulAuto(a, b, c []float32, n, m, k int) {
	if Aligned(n, m, k) {
		MatMulBlocked(a, b, c, n, m, k)
		return
	}
	MatMulReference(a, b, c, n, m, k)
}

var kernels = map[string]struct {
	fn      Kernel
	aligned bool
}{
	"reference": {MatMulReference, false},
	"blocked":   {MatMulBlocked, true},
	"auto":      {MatMulAuto, false},
}

// KernelNames returns the names accepted by Multiply, sorted.
func KernelNames() []string {
	names := lo.Keys(kernels)
	sort.Strings(names)
	return names
}

// Multiply validates the shapes of a, b and c and runs the named kernel.
// Unlike the kernels themselves it reports bad input as an error instead
// of panicking.
func Multiply(kernel string, a, b, c Matrix) error {
	kern, ok := kernels[kernel]
	if !ok {
		return errors.NotFoundf("kernel %q", kernel)
	}
	for _, mat := range []Matrix{a, b, c} {
		if err := mat.Validate(); err != nil {
			return errors.Trace(err)
		}
	}
	n, k, m := a.Rows, a.Cols, b.Cols
	if b.Rows != k || c.Rows != n || c.Cols != m {
		return errors.NotValidf("shapes %dx%d * %dx%d -> %dx%d", a.Rows, a.Cols, b.Rows, b.Cols, c.Rows, c.Cols)
	}
	if err := CheckDims(a.Data, b.Data, c.Data, n, m, k, kern.aligned); err != nil {
		return errors.Annotatef(err, "kernel %s", kernel)
	}
	kern.fn(a.Data, b.Data, c.Data, n, m, k)
	return nil
}
