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

// Package cpuinfo reports the processor and the vector path the kernels
// run on.
package cpuinfo

import (
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/klauspost/cpuid/v2"
	"github.com/olekukonko/tablewriter"

	"github.com/ajroetker/blockmm/hwy"
)

// Info describes the host CPU and the selected dispatch level.
type Info struct {
	Arch     string
	Brand    string
	Vendor   string
	Cores    int
	Features []string

	Level hwy.DispatchLevel
	Width int
	FMA   bool
}

// Detect collects Info for the running process.
func Detect() Info {
	return Info{
		Arch:     runtime.GOARCH,
		Brand:    cpuid.CPU.BrandName,
		Vendor:   cpuid.CPU.VendorString,
		Cores:    cpuid.CPU.PhysicalCores,
		Features: cpuid.CPU.FeatureSet(),
		Level:    hwy.CurrentLevel(),
		Width:    hwy.CurrentWidth(),
		FMA:      hwy.HasFMA(),
	}
}

// Rows returns the report as key/value pairs.
func (info Info) Rows() [][]string {
	return [][]string{
		{"arch", info.Arch},
		{"cpu", info.Brand},
		{"vendor", info.Vendor},
		{"physical cores", strconv.Itoa(info.Cores)},
		{"features", strings.Join(info.Features, ",")},
		{"dispatch", info.Level.String()},
		{"vector bytes", strconv.Itoa(info.Width)},
		{"fused multiply-add", strconv.FormatBool(info.FMA)},
		{"HWY_NO_SIMD", strconv.FormatBool(hwy.NoSimdEnv())},
		{"cpuid FMA3", strconv.FormatBool(cpuid.CPU.Supports(cpuid.FMA3))},
		{"cpuid ASIMD", strconv.FormatBool(cpuid.CPU.Supports(cpuid.ASIMD))},
	}
}

// Report writes info as a two-column table.
func Report(w io.Writer, info Info) error {
	table := tablewriter.NewWriter(w)
	table.Header("property", "value")
	if err := table.Bulk(info.Rows()); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(table.Render())
}
