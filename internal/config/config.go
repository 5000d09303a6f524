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

// Package config loads driver settings from flags, environment variables
// (prefix BLOCKMM_) and an optional config file.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ajroetker/blockmm/hwy/contrib/matmul"
)

const envPrefix = "BLOCKMM"

// Config holds the settings of one driver run.
type Config struct {
	// N is the number of rows of A and C.
	N int `mapstructure:"n" validate:"gt=0,blockaligned"`
	// M is the number of columns of B and C.
	M int `mapstructure:"m" validate:"gt=0,blockaligned"`
	// K is the number of columns of A and rows of B.
	K int `mapstructure:"k" validate:"gt=0,blockaligned"`
	// Seed seeds the matrix generator.
	Seed int64 `mapstructure:"seed"`
	// Print writes the input and result matrices to stdout.
	Print bool `mapstructure:"print"`
	// Table prints matrices as bordered tables instead of plain rows.
	Table bool `mapstructure:"table"`

	Bench BenchConfig `mapstructure:"bench"`
}

// BenchConfig holds the settings of the bench command.
type BenchConfig struct {
	// Sizes are the square dimensions to time.
	Sizes []int `mapstructure:"sizes" validate:"min=1,dive,gt=0,blockaligned"`
	// Iterations is the number of timed runs per kernel and size.
	Iterations int `mapstructure:"iterations" validate:"gt=0"`
}

// Default returns the configuration of the reference run: 8x8 matrices,
// two blocks per dimension.
func Default() *Config {
	return &Config{
		N:    2 * matmul.BlockSize,
		M:    2 * matmul.BlockSize,
		K:    2 * matmul.BlockSize,
		Seed: 1,
		Bench: BenchConfig{
			Sizes:      []int{16, 64, 128, 256},
			Iterations: 10,
		},
	}
}

// AddFlags registers the configuration flags on flagSet.
func AddFlags(flagSet *pflag.FlagSet) {
	def := Default()
	flagSet.Int("n", def.N, "rows of A and C")
	flagSet.Int("m", def.M, "columns of B and C")
	flagSet.Int("k", def.K, "columns of A and rows of B")
	flagSet.Int64("seed", def.Seed, "seed of the matrix generator")
	flagSet.Bool("print", false, "print input and result matrices")
	flagSet.Bool("table", false, "print matrices as tables")
	flagSet.IntSlice("bench.sizes", def.Bench.Sizes, "square sizes for the bench command")
	flagSet.Int("bench.iterations", def.Bench.Iterations, "timed runs per kernel and size")
}

// LoadConfig merges defaults, the config file at path (if not empty),
// BLOCKMM_* environment variables and flagSet, then validates the result.
func LoadConfig(path string, flagSet *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("n", def.N)
	v.SetDefault("m", def.M)
	v.SetDefault("k", def.K)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("print", def.Print)
	v.SetDefault("table", def.Table)
	v.SetDefault("bench.sizes", def.Bench.Sizes)
	v.SetDefault("bench.iterations", def.Bench.Iterations)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "read config %s", path)
		}
	}
	if flagSet != nil {
		if err := v.BindPFlags(flagSet); err != nil {
			return nil, errors.Trace(err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Trace(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("blockaligned", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%matmul.BlockSize == 0
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks that every dimension is a positive multiple of
// matmul.BlockSize.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.NewNotValid(err, "config")
	}
	return nil
}
