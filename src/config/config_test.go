package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1_000_000, cfg.Bench.Orders)
	assert.True(t, cfg.Bench.MinPrice.Equal(decimal.NewFromInt(80)))
	assert.True(t, cfg.Bench.MaxPrice.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, 2*time.Second, cfg.Bench.Warmup)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("BENCH_TICK_FROM_ENV", "0.05")
	path := writeConfig(t, `
service_name: bench-test
bench:
  orders: 5000
  seed: 42
  min_price: 99.5
  max_price: "101"
  tick: ${BENCH_TICK_FROM_ENV}
  warmup: 0s
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bench-test", cfg.ServiceName)
	assert.Equal(t, 5000, cfg.Bench.Orders)
	assert.Equal(t, int64(42), cfg.Bench.Seed)
	assert.True(t, cfg.Bench.MinPrice.Equal(decimal.RequireFromString("99.5")))
	assert.True(t, cfg.Bench.MaxPrice.Equal(decimal.NewFromInt(101)))
	assert.True(t, cfg.Bench.Tick.Equal(decimal.RequireFromString("0.05")))
	assert.Equal(t, time.Duration(0), cfg.Bench.Warmup)
	// untouched keys keep their defaults
	assert.True(t, cfg.Bench.MaxSize.Equal(decimal.NewFromInt(10)))
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "bench:\n  orders: 10\n")
	t.Setenv("BENCH_ORDERS", "250")
	t.Setenv("BENCH_MAX_SIZE", "3")
	t.Setenv("BENCH_WARMUP", "10ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Bench.Orders)
	assert.True(t, cfg.Bench.MaxSize.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 10*time.Millisecond, cfg.Bench.Warmup)
}

func TestLoadFromConfigFileEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeConfig(t, "bench:\n  orders: 7\n"))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Bench.Orders)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "bench: [unclosed"))
	assert.Error(t, err)

	t.Setenv("BENCH_ORDERS", "many")
	_, err = Load(writeConfig(t, "bench:\n  orders: 1\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Default().Bench
	require.NoError(t, valid.Validate())

	cases := map[string]func(b *BenchConfig){
		"no orders":        func(b *BenchConfig) { b.Orders = 0 },
		"zero tick":        func(b *BenchConfig) { b.Tick = decimal.Zero },
		"empty price":      func(b *BenchConfig) { b.MaxPrice = b.MinPrice },
		"zero min size":    func(b *BenchConfig) { b.MinSize = decimal.Zero },
		"inverted sizes":   func(b *BenchConfig) { b.MaxSize = decimal.NewFromInt(1) },
		"negative warm-up": func(b *BenchConfig) { b.Warmup = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			b := Default().Bench
			mutate(&b)
			assert.Error(t, b.Validate())
		})
	}
}
