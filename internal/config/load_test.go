package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		require.NoError(t, Load(""))

		assert.Equal(t, "2s", viper.GetString("compute.duration"))
		assert.Equal(t, 1024, viper.GetInt("compute.check_interval"))
		assert.Equal(t, []int{1, 2, 4, 8}, viper.GetIntSlice("threads.levels"))
		assert.Equal(t, 512, viper.GetInt("memory.ram_mb"))
		assert.Equal(t, "random", viper.GetString("latency.chain"))
	})

	t.Run("Load From Env", func(t *testing.T) {
		viper.Reset()
		t.Setenv("HWBENCH_LATENCY_CHAIN", "sequential")
		t.Setenv("HWBENCH_MEMORY_RAM_MB", "64")

		require.NoError(t, Load(""))
		assert.Equal(t, "sequential", viper.GetString("latency.chain"))
		assert.Equal(t, 64, viper.GetInt("memory.ram_mb"))
	})

	t.Run("Load From File", func(t *testing.T) {
		viper.Reset()
		path := filepath.Join(t.TempDir(), "bench.yaml")
		content := "compute:\n  duration: 5s\nlatency:\n  size_mb: 32\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		require.NoError(t, Load(path))
		assert.Equal(t, "5s", viper.GetString("compute.duration"))
		assert.Equal(t, 32, viper.GetInt("latency.size_mb"))
		assert.Equal(t, 16, viper.GetInt("memory.l3_mb"), "unset keys keep defaults")
	})

	t.Run("Missing Explicit File", func(t *testing.T) {
		viper.Reset()
		err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestWriteDefault(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()
	require.NoError(t, Load(""))

	path := filepath.Join(t.TempDir(), "hwbench.yaml")
	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "chain: random")

	assert.Error(t, WriteDefault(path), "existing files are not overwritten")
}
