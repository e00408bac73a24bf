package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// BenchConfig describes one throughput run: how many random orders to
// generate and the ranges they are drawn from, in human units.
type BenchConfig struct {
	Orders   int             `yaml:"orders"`
	Seed     int64           `yaml:"seed"` // 0 picks a time-based seed
	MinPrice decimal.Decimal `yaml:"min_price"`
	MaxPrice decimal.Decimal `yaml:"max_price"` // exclusive
	MinSize  decimal.Decimal `yaml:"min_size"`
	MaxSize  decimal.Decimal `yaml:"max_size"` // exclusive
	Tick     decimal.Decimal `yaml:"tick"`
	Lot      decimal.Decimal `yaml:"lot"`
	Warmup   time.Duration   `yaml:"warmup"`
}

type AppConfig struct {
	ServiceName string      `yaml:"service_name"`
	Bench       BenchConfig `yaml:"bench"`
}

func Default() *AppConfig {
	return &AppConfig{
		ServiceName: "match-engine-bench",
		Bench: BenchConfig{
			Orders:   1_000_000,
			MinPrice: decimal.NewFromInt(80),
			MaxPrice: decimal.NewFromInt(120),
			MinSize:  decimal.NewFromInt(1),
			MaxSize:  decimal.NewFromInt(10),
			Tick:     decimal.NewFromInt(1),
			Lot:      decimal.NewFromInt(1),
			Warmup:   2 * time.Second,
		},
	}
}

// Load starts from Default, applies the YAML file at filePath (or
// CONFIG_FILE) when there is one, then the BENCH_* environment overrides.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	cfg := Default()

	if filePath != "" {
		logger := log.With().Str("func", "config.Load").Str("file_path", filePath).Logger()
		logger.Debug().Msg("Loading config file")

		configBytes, err := os.ReadFile(filePath)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to load config file")
			return nil, fmt.Errorf("read config %s: %w", filePath, err)
		}
		configBytes = []byte(os.ExpandEnv(string(configBytes)))

		if err := yaml.Unmarshal(configBytes, cfg); err != nil {
			logger.Error().Err(err).Msg("Failed to parse config file")
			return nil, fmt.Errorf("parse config %s: %w", filePath, err)
		}
	}

	if err := cfg.Bench.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Bench.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (b *BenchConfig) applyEnv() error {
	if v := os.Getenv("BENCH_ORDERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BENCH_ORDERS: %w", err)
		}
		b.Orders = n
	}
	if v := os.Getenv("BENCH_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("BENCH_SEED: %w", err)
		}
		b.Seed = n
	}
	if v := os.Getenv("BENCH_WARMUP"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BENCH_WARMUP: %w", err)
		}
		b.Warmup = d
	}

	decimals := []struct {
		env string
		dst *decimal.Decimal
	}{
		{"BENCH_MIN_PRICE", &b.MinPrice},
		{"BENCH_MAX_PRICE", &b.MaxPrice},
		{"BENCH_MIN_SIZE", &b.MinSize},
		{"BENCH_MAX_SIZE", &b.MaxSize},
		{"BENCH_TICK", &b.Tick},
		{"BENCH_LOT", &b.Lot},
	}
	for _, d := range decimals {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.env, err)
		}
		*d.dst = parsed
	}
	return nil
}

func (b BenchConfig) Validate() error {
	if b.Orders <= 0 {
		return fmt.Errorf("orders must be positive, got %d", b.Orders)
	}
	if !b.Tick.IsPositive() || !b.Lot.IsPositive() {
		return fmt.Errorf("tick (%s) and lot (%s) must be positive", b.Tick, b.Lot)
	}
	if !b.MinPrice.LessThan(b.MaxPrice) {
		return fmt.Errorf("price range [%s, %s) is empty", b.MinPrice, b.MaxPrice)
	}
	if !b.MinSize.IsPositive() || !b.MinSize.LessThan(b.MaxSize) {
		return fmt.Errorf("size range [%s, %s) must be positive and non-empty", b.MinSize, b.MaxSize)
	}
	if b.Warmup < 0 {
		return fmt.Errorf("warmup must not be negative, got %s", b.Warmup)
	}
	return nil
}
