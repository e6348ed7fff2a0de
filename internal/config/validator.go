package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/viper"

	"hwbench/internal/benchmark"
)

// ValidateConfig validates configuration values and returns an error
// listing every problem found. Call it after Load.
func ValidateConfig() error {
	var errors []string

	for _, key := range []string{"compute.duration", "threads.duration"} {
		if d := viper.GetDuration(key); d <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %v", key, viper.Get(key)))
		}
	}

	if n := viper.GetInt("compute.check_interval"); n <= 0 {
		errors = append(errors, fmt.Sprintf("compute.check_interval must be positive, got: %d", n))
	}

	for _, key := range []string{"memory.l1_mb", "memory.l2_mb", "memory.l3_mb", "memory.ram_mb", "latency.size_mb"} {
		if n := viper.GetInt(key); n <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %d", key, n))
		}
	}

	if n := viper.GetInt("threads.max"); n < 0 {
		errors = append(errors, fmt.Sprintf("threads.max must not be negative, got: %d", n))
	}

	if levels, err := threadLevels(); err != nil {
		errors = append(errors, err.Error())
	} else {
		for i, n := range levels {
			if n <= 0 {
				errors = append(errors, fmt.Sprintf("threads.levels must be positive, got: %d", n))
				break
			}
			if i > 0 && n <= levels[i-1] {
				errors = append(errors, fmt.Sprintf("threads.levels must be strictly ascending, got: %v", levels))
				break
			}
		}
	}

	if _, err := benchmark.ParseChainOrder(viper.GetString("latency.chain")); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		errorMsg := errors[0]
		for i := 1; i < len(errors); i++ {
			errorMsg += "\n  " + errors[i]
		}
		return fmt.Errorf("configuration validation failed:\n  %s", errorMsg)
	}

	return nil
}

// Benchmark maps the loaded configuration onto a suite configuration.
func Benchmark() (benchmark.Config, error) {
	if err := ValidateConfig(); err != nil {
		return benchmark.Config{}, err
	}
	chain, _ := benchmark.ParseChainOrder(viper.GetString("latency.chain"))
	levels, _ := threadLevels()

	return benchmark.Config{
		ComputeDuration: viper.GetDuration("compute.duration"),
		CheckInterval:   viper.GetInt("compute.check_interval"),
		ThreadsDuration: viper.GetDuration("threads.duration"),
		ThreadLevels:    levels,
		MaxThreads:      viper.GetInt("threads.max"),
		L1Size:          viper.GetInt("memory.l1_mb") * benchmark.MiB,
		L2Size:          viper.GetInt("memory.l2_mb") * benchmark.MiB,
		L3Size:          viper.GetInt("memory.l3_mb") * benchmark.MiB,
		RAMSize:         viper.GetInt("memory.ram_mb") * benchmark.MiB,
		LatencySize:     viper.GetInt("latency.size_mb") * benchmark.MiB,
		LatencyChain:    chain,
		LatencySeed:     uint64(viper.GetInt64("latency.seed")),
	}, nil
}

// Quick shortens the durations and working sets for a smoke run.
func Quick(cfg benchmark.Config) benchmark.Config {
	q := benchmark.QuickConfig()
	cfg.ComputeDuration = minDuration(cfg.ComputeDuration, q.ComputeDuration)
	cfg.ThreadsDuration = minDuration(cfg.ThreadsDuration, q.ThreadsDuration)
	cfg.RAMSize = min(cfg.RAMSize, q.RAMSize)
	cfg.LatencySize = min(cfg.LatencySize, q.LatencySize)
	return cfg
}

// threadLevels reads threads.levels from a YAML list or from a comma or
// space separated string such as HWBENCH_THREADS_LEVELS="1,2,4".
func threadLevels() ([]int, error) {
	var levels []int
	for _, item := range viper.GetStringSlice("threads.levels") {
		for _, field := range strings.FieldsFunc(item, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		}) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("threads.levels must be integers, got: %q", field)
			}
			levels = append(levels, n)
		}
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("threads.levels must not be empty")
	}
	return levels, nil
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
