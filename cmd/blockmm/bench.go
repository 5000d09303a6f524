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
	"io"
	"os"
	"time"

	"github.com/chewxy/math32"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/blockmm/hwy"
	"github.com/ajroetker/blockmm/hwy/contrib/matmul"
	"github.com/ajroetker/blockmm/internal/blas"
	"github.com/ajroetker/blockmm/internal/config"
	"github.com/ajroetker/blockmm/internal/log"
	"github.com/ajroetker/blockmm/internal/matgen"
)

var benchCommand = &cobra.Command{
	Use:   "bench",
	Short: "Time the kernels on square matrices.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return errors.Trace(err)
		}
		results := bench(cfg, os.Stderr)
		return errors.Trace(writeResults(cmd.OutOrStdout(), results))
	},
}

// benchKernel is one timed implementation. Kernels that share the
// reference's summation order are checked with the absolute oracle; the
// others only report their relative error.
type benchKernel struct {
	name    string
	fn      matmul.Kernel
	checked bool
}

var benchKernels = []benchKernel{
	{"reference", matmul.MatMulReference, true},
	{"blocked", matmul.MatMulBlocked, true},
	{"gonum", blas.MatMul, false},
}

// benchResult is the timing of one kernel at one size.
type benchResult struct {
	Size    int
	Kernel  string
	PerCall time.Duration
	GFLOPS  float64
	// Checked reports whether Equal holds an oracle result.
	Checked bool
	Equal   bool
	// RelErr is the largest |got-want| / |want| against the reference.
	RelErr float64
}

// maxRelErr returns the largest element-wise relative error of got
// against want. Zero entries of want contribute their absolute error.
func maxRelErr(want, got []float32) float64 {
	var worst float32
	for i := range want {
		diff := math32.Abs(got[i] - want[i])
		if scale := math32.Abs(want[i]); scale > 0 {
			diff /= scale
		}
		worst = math32.Max(worst, diff)
	}
	return float64(worst)
}

// bench times every kernel on each configured size, drawing progress on
// progress. Each result is checked against the reference product.
func bench(cfg *config.Config, progress io.Writer) []benchResult {
	sizes := lo.Uniq(cfg.Bench.Sizes)
	bar := progressbar.NewOptions(len(sizes)*len(benchKernels),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("bench"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish())

	var results []benchResult
	r := matgen.New(cfg.Seed)
	for _, size := range sizes {
		a := matgen.Random(r, size, size)
		b := matgen.Random(r, size, size)
		want := matmul.NewMatrix(size, size)
		matmul.MatMulReference(a.Data, b.Data, want.Data, size, size, size)

		flops := 2 * float64(size) * float64(size) * float64(size)
		for _, kernel := range benchKernels {
			c := matmul.NewMatrix(size, size)
			start := time.Now()
			for range cfg.Bench.Iterations {
				kernel.fn(a.Data, b.Data, c.Data, size, size, size)
			}
			perCall := time.Since(start) / time.Duration(cfg.Bench.Iterations)
			result := benchResult{
				Size:    size,
				Kernel:  kernel.name,
				PerCall: perCall,
				GFLOPS:  flops / perCall.Seconds() / 1e9,
				Checked: kernel.checked,
				RelErr:  maxRelErr(want.Data, c.Data),
			}
			if kernel.checked {
				result.Equal = matmul.ApproxEqual(want.Data, c.Data, size, size)
			}
			log.Logger().Debug("bench",
				zap.String("kernel", result.Kernel),
				zap.Int("size", size),
				zap.Duration("per_call", perCall),
				zap.Float64("gflops", result.GFLOPS))
			results = append(results, result)
			_ = bar.Add(1)
		}
	}
	_ = bar.Finish()
	return results
}

// writeResults renders results as a table grouped by size.
func writeResults(w io.Writer, results []benchResult) error {
	p := message.NewPrinter(language.English)
	title := cases.Title(language.English)

	table := tablewriter.NewWriter(w)
	table.Header("size", "kernel", "time/op", "GFLOPS", "equal", "max rel err", "speedup")
	bySize := lo.GroupBy(results, func(r benchResult) int { return r.Size })
	for _, size := range lo.Uniq(lo.Map(results, func(r benchResult, _ int) int { return r.Size })) {
		group := bySize[size]
		base, _ := lo.Find(group, func(r benchResult) bool { return r.Kernel == "reference" })
		for _, r := range group {
			speedup := "-"
			if base.PerCall > 0 && r.PerCall > 0 {
				speedup = p.Sprintf("%.2fx", float64(base.PerCall)/float64(r.PerCall))
			}
			equal := "-"
			if r.Checked {
				equal = p.Sprintf("%t", r.Equal)
			}
			if err := table.Append([]string{
				p.Sprintf("%d", r.Size),
				title.String(r.Kernel),
				r.PerCall.String(),
				p.Sprintf("%.3f", r.GFLOPS),
				equal,
				p.Sprintf("%.2e", r.RelErr),
				speedup,
			}); err != nil {
				return errors.Trace(err)
			}
		}
	}
	table.Footer("", "dispatch", hwy.CurrentName(), "", "", "", "")
	return errors.Trace(table.Render())
}
