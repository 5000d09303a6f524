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

package matgen

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"

	"github.com/ajroetker/blockmm/hwy/contrib/matmul"
)

// Fprint writes the column-major rows×cols matrix in data to w, one matrix
// row per line with every value formatted as "%f ", followed by a blank
// line.
func Fprint(w io.Writer, data []float32, rows, cols int) error {
	m := matmul.Matrix{Data: data, Rows: rows, Cols: cols}
	bw := bufio.NewWriter(w)
	for i := range rows {
		for j := range cols {
			fmt.Fprintf(bw, "%f ", m.At(i, j))
		}
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	return errors.Trace(bw.Flush())
}

// FprintTable writes the same matrix as Fprint as a bordered table with
// row and column indices.
func FprintTable(w io.Writer, data []float32, rows, cols int) error {
	m := matmul.Matrix{Data: data, Rows: rows, Cols: cols}
	header := make([]any, cols+1)
	header[0] = ""
	for j := range cols {
		header[j+1] = strconv.Itoa(j)
	}
	body := make([][]string, rows)
	for i := range rows {
		row := make([]string, cols+1)
		row[0] = strconv.Itoa(i)
		for j := range cols {
			row[j+1] = strconv.FormatFloat(float64(m.At(i, j)), 'f', 6, 32)
		}
		body[i] = row
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)
	if err := table.Bulk(body); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(table.Render())
}
