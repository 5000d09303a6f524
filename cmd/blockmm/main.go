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

// Command blockmm multiplies column-major float32 matrices with the
// reference and blocked kernels, checks that they agree and times them.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajroetker/blockmm/internal/config"
	"github.com/ajroetker/blockmm/internal/log"
)

var rootCommand = &cobra.Command{
	Use:          "blockmm",
	Short:        "Blocked 4x4 matrix multiplication with lane-indexed multiply-add.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLogger(cmd.Flags())
	},
	// Without a subcommand, run the verification.
	RunE: runVerify,
}

func init() {
	flags := rootCommand.PersistentFlags()
	log.AddFlags(flags)
	config.AddFlags(flags)
	flags.StringP("config", "c", "", "configuration file path")

	rootCommand.AddCommand(verifyCommand, benchCommand, cpuinfoCommand)
}

// loadConfig reads the configuration for cmd from its flags, the
// environment and the file given by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.LoadConfig(path, cmd.Flags())
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Error("blockmm failed", zap.Error(err))
		os.Exit(1)
	}
}
