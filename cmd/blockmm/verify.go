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

package main

import (
	"fmt"
	"io"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajroetker/blockmm/hwy"
	"github.com/ajroetker/blockmm/hwy/contrib/matmul"
	"github.com/ajroetker/blockmm/internal/config"
	"github.com/ajroetker/blockmm/internal/log"
	"github.com/ajroetker/blockmm/internal/matgen"
)

const separator = "==============================="

var errMismatch = errors.New("kernels disagree")

var verifyCommand = &cobra.Command{
	Use:   "verify",
	Short: "Multiply random matrices with every kernel and compare the results.",
	RunE:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.Trace(err)
	}
	ok, err := verify(cmd.OutOrStdout(), cfg)
	if err != nil {
		return errors.Trace(err)
	}
	if !ok {
		return errMismatch
	}
	return nil
}

// printFunc writes one column-major matrix.
type printFunc func(w io.Writer, data []float32, rows, cols int) error

// verify multiplies two random matrices with the reference and blocked
// kernels and the leading 4x4 blocks with the fixed-size kernel, printing
// the run to w. It reports whether every comparison passed.
func verify(w io.Writer, cfg *config.Config) (bool, error) {
	n, m, k := cfg.N, cfg.M, cfg.K
	log.Logger().Info("verify",
		zap.String("dispatch", hwy.CurrentName()),
		zap.Bool("fma", hwy.HasFMA()),
		zap.Int("n", n), zap.Int("m", m), zap.Int("k", k),
		zap.Int64("seed", cfg.Seed))

	printMatrix := printFunc(matgen.Fprint)
	if cfg.Table {
		printMatrix = matgen.FprintTable
	}
	show := func(title string, mat matmul.Matrix) error {
		if !cfg.Print {
			return nil
		}
		if title != "" {
			if _, err := fmt.Fprintln(w, title); err != nil {
				return errors.Trace(err)
			}
		}
		return printMatrix(w, mat.Data, mat.Rows, mat.Cols)
	}

	r := matgen.New(cfg.Seed)
	a := matgen.Random(r, n, k)
	b := matgen.Random(r, k, m)
	if err := show("", a); err != nil {
		return false, err
	}
	if err := show("", b); err != nil {
		return false, err
	}

	c := matmul.NewMatrix(n, m)
	matmul.MatMulReference(a.Data, b.Data, c.Data, n, m, k)
	if err := show("C", c); err != nil {
		return false, err
	}
	if cfg.Print {
		fmt.Fprintln(w, separator)
	}

	if err := matmul.CheckDims(a.Data, b.Data, c.Data, n, m, k, true); err != nil {
		return false, errors.Annotate(err, "blocked kernel")
	}
	blocked := matmul.NewMatrix(n, m)
	matgen.FillConst(blocked.Data, n, m, 0)
	matmul.MatMulBlocked(a.Data, b.Data, blocked.Data, n, m, k)
	if err := show("Blocked", blocked); err != nil {
		return false, err
	}
	equal := report(w, "Blocked", c, blocked)

	// The fixed kernel multiplies the leading blocks of A and B.
	var blockA, blockB, want, got matmul.Block
	for j := range matmul.BlockSize {
		for i := range matmul.BlockSize {
			blockA[i+j*matmul.BlockSize] = a.At(i, j)
			blockB[i+j*matmul.BlockSize] = b.At(i, j)
		}
	}
	matmul.MatMulReference(blockA[:], blockB[:], want[:], matmul.BlockSize, matmul.BlockSize, matmul.BlockSize)
	matmul.MatMulBlock4x4(&blockA, &blockB, &got)
	equal4x4 := report(w, "4x4",
		matmul.Matrix{Data: want[:], Rows: matmul.BlockSize, Cols: matmul.BlockSize},
		matmul.Matrix{Data: got[:], Rows: matmul.BlockSize, Cols: matmul.BlockSize})

	return equal && equal4x4, nil
}

// report compares got against the reference result want and prints the
// outcome, with the first differing element when there is one.
func report(w io.Writer, name string, want, got matmul.Matrix) bool {
	equal := matmul.ApproxEqual(want.Data, got.Data, want.Rows, want.Cols)
	if !equal {
		mismatch, _ := matmul.FirstMismatch(want.Data, got.Data, want.Rows, want.Cols)
		fmt.Fprintln(w, mismatch)
	}
	fmt.Fprintf(w, "%s equal to C? %t\n", name, equal)
	fmt.Fprintln(w, separator)
	return equal
}
