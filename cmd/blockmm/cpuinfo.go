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
	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/ajroetker/blockmm/internal/cpuinfo"
)

var cpuinfoCommand = &cobra.Command{
	Use:   "cpuinfo",
	Short: "Show the CPU features and the selected vector path.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.Trace(cpuinfo.Report(cmd.OutOrStdout(), cpuinfo.Detect()))
	},
}
