// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import (
	"os"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config carries every recognized pipeline option named in the spec's
// configuration table, along with its default and validation constraint.
type Config struct {
	// BatchSize is the maximum records per batch. Default 10000.
	BatchSize int `yaml:"batch_size" validate:"min=1"`
	// ThreadCount is the ProcessingStage worker count. 0 means detect
	// hardware parallelism via runtime.GOMAXPROCS(0).
	ThreadCount int `yaml:"thread_count" validate:"min=0"`
	// MaxInFlight upper-bounds simultaneously live batches. Default
	// max(4, thread_count*2).
	MaxInFlight int `yaml:"max_in_flight" validate:"min=2"`
	// PoolInitialSize is the batch count pre-allocated at start. Default
	// 10; must be <= PoolMaxSize.
	PoolInitialSize int `yaml:"pool_initial_size" validate:"min=0"`
	// PoolMaxSize upper-bounds recycled batches retained. Default 1000.
	PoolMaxSize int `yaml:"pool_max_size" validate:"min=1"`
	// EnablePoolShrink turns on background idle-pool trimming. Default
	// true.
	EnablePoolShrink bool `yaml:"enable_pool_shrink"`
	// ShrinkInterval is the cadence for the shrink task. Default 30s.
	ShrinkInterval time.Duration `yaml:"shrink_interval" validate:"min=0"`
	// PoolShrinkFloor is the minimum free-list size the shrink task will
	// not trim below.
	PoolShrinkFloor int `yaml:"pool_shrink_floor" validate:"min=0"`
}

var validate = validator.New()

// DefaultConfig returns a Config with every spec-mandated default filled
// in. ThreadCount 0 is left as "detect"; callers wanting a fixed worker
// count should set it explicitly before calling NewPipelineRunner.
func DefaultConfig() Config {
	threadCount := 0
	maxInFlight := defaultMaxInFlight(threadCount)
	return Config{
		BatchSize:        10_000,
		ThreadCount:      threadCount,
		MaxInFlight:      maxInFlight,
		PoolInitialSize:  10,
		PoolMaxSize:      1_000,
		EnablePoolShrink: true,
		ShrinkInterval:   30 * time.Second,
		PoolShrinkFloor:  10,
	}
}

func defaultMaxInFlight(threadCount int) int {
	n := threadCount
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if v := n * 2; v > 4 {
		return v
	}
	return 4
}

// resolvedThreadCount returns c.ThreadCount, or detected hardware
// parallelism when it is 0.
func (c Config) resolvedThreadCount() int {
	if c.ThreadCount > 0 {
		return c.ThreadCount
	}
	return runtime.GOMAXPROCS(0)
}

// Validate checks every constraint the spec's configuration table and
// error taxonomy name, returning a ConfigInvalid *Error on the first
// violation.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return newError(ConfigInvalid, "config field constraint violated", err)
	}
	if c.PoolInitialSize > c.PoolMaxSize {
		return newError(ConfigInvalid, "pool_initial_size must be <= pool_max_size", nil)
	}
	return nil
}

// LoadConfigFile reads a YAML config file, merges it onto DefaultConfig,
// and validates the result.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	// Reset to the sentinel so that, if the file overrides thread_count
	// without also setting max_in_flight, the recomputation below derives
	// max_in_flight from the file's thread_count rather than silently
	// keeping the default's unrelated value.
	cfg.MaxInFlight = 0

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, newError(ConfigInvalid, "reading config file", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, newError(ConfigInvalid, "parsing config file", err)
	}
	if cfg.MaxInFlight == 0 {
		cfg.MaxInFlight = defaultMaxInFlight(cfg.ThreadCount)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
