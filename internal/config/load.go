package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// HWBENCH_COMPUTE_DURATION=5s.
const EnvPrefix = "HWBENCH"

// SetDefaults registers the stock benchmark configuration with viper.
func SetDefaults() {
	viper.SetDefault("compute.duration", "2s")
	viper.SetDefault("compute.check_interval", 1024)
	viper.SetDefault("threads.duration", "2s")
	viper.SetDefault("threads.levels", []int{1, 2, 4, 8})
	viper.SetDefault("threads.max", 0)
	viper.SetDefault("memory.l1_mb", 1)
	viper.SetDefault("memory.l2_mb", 4)
	viper.SetDefault("memory.l3_mb", 16)
	viper.SetDefault("memory.ram_mb", 512)
	viper.SetDefault("latency.size_mb", 128)
	viper.SetDefault("latency.chain", "random")
	viper.SetDefault("latency.seed", 1)
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("metrics_file", "")
	viper.SetDefault("metrics_addr", "")
}

// Load initializes the configuration from an optional file, a .env file
// and HWBENCH_* environment variables. A missing config file is not an
// error; an unreadable or malformed one is.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("hwbench")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// WriteDefault writes the default configuration to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	v := viper.New()
	for _, key := range viper.AllKeys() {
		v.Set(key, viper.Get(key))
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
