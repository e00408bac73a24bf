package engine

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicksPrice(t *testing.T) {
	p, err := DefaultTicks.Price(decimal.RequireFromString("150.50"))
	require.NoError(t, err)
	assert.Equal(t, Price(15050), p)
	assert.True(t, decimal.RequireFromString("150.5").Equal(DefaultTicks.PriceDecimal(p)))

	_, err = DefaultTicks.Price(decimal.RequireFromString("150.505"))
	assert.ErrorIs(t, err, ErrOffTick)
}

func TestTicksPriceFromFloat(t *testing.T) {
	p, err := DefaultTicks.PriceFromFloat(99.999)
	require.NoError(t, err)
	assert.Equal(t, Price(10000), p)

	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := DefaultTicks.PriceFromFloat(f)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	}
}

func TestTicksSize(t *testing.T) {
	ticks, err := NewTicks(decimal.RequireFromString("0.5"), decimal.RequireFromString("0.001"))
	require.NoError(t, err)

	s, err := ticks.Size(decimal.RequireFromString("1.25"))
	require.NoError(t, err)
	assert.Equal(t, Size(1250), s)
	assert.True(t, decimal.RequireFromString("1.25").Equal(ticks.SizeDecimal(s)))

	_, err = ticks.Size(decimal.RequireFromString("-1"))
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = ticks.Size(decimal.RequireFromString("0.0001"))
	assert.ErrorIs(t, err, ErrOffTick)

	p, err := ticks.Price(decimal.RequireFromString("10.5"))
	require.NoError(t, err)
	assert.Equal(t, Price(21), p)
}

func TestTicksSizeFromFloat(t *testing.T) {
	s, err := DefaultTicks.SizeFromFloat(7.9)
	require.NoError(t, err)
	assert.Equal(t, Size(7), s)

	for _, f := range []float64{math.NaN(), math.Inf(1), -1} {
		_, err := DefaultTicks.SizeFromFloat(f)
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestTicksRejectOutOfRange(t *testing.T) {
	cases := []struct {
		name    string
		convert func() error
		want    error
	}{
		{"price from float above range", func() error { _, err := DefaultTicks.PriceFromFloat(1e30); return err }, ErrInvalidPrice},
		{"price from float below range", func() error { _, err := DefaultTicks.PriceFromFloat(-1e19); return err }, ErrInvalidPrice},
		{"exact price above range", func() error { _, err := DefaultTicks.Price(decimal.RequireFromString("1e20")); return err }, ErrInvalidPrice},
		{"exact price below range", func() error { _, err := DefaultTicks.Price(decimal.RequireFromString("-1e20")); return err }, ErrInvalidPrice},
		{"size from float above range", func() error { _, err := DefaultTicks.SizeFromFloat(1e25); return err }, ErrInvalidSize},
		{"exact size above range", func() error { _, err := DefaultTicks.Size(decimal.RequireFromString("1e19")); return err }, ErrInvalidSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.convert(), tc.want)
		})
	}
}

func TestTicksAcceptInt64Bounds(t *testing.T) {
	p, err := DefaultTicks.Price(decimal.NewFromInt(math.MaxInt64).Shift(-2))
	require.NoError(t, err)
	assert.Equal(t, Price(math.MaxInt64), p)

	p, err = DefaultTicks.Price(decimal.NewFromInt(math.MinInt64).Shift(-2))
	require.NoError(t, err)
	assert.Equal(t, Price(math.MinInt64), p)

	s, err := DefaultTicks.Size(decimal.NewFromInt(math.MaxInt64))
	require.NoError(t, err)
	assert.Equal(t, Size(math.MaxInt64), s)
}

func TestZeroTicksReturnErrors(t *testing.T) {
	var ticks Ticks
	assert.NotPanics(t, func() {
		_, err := ticks.Price(decimal.NewFromInt(1))
		assert.Error(t, err)
		_, err = ticks.PriceFromFloat(1)
		assert.Error(t, err)
		_, err = ticks.Size(decimal.NewFromInt(1))
		assert.Error(t, err)
		_, err = ticks.SizeFromFloat(1)
		assert.Error(t, err)
	})
}

func TestNewTicksAccessors(t *testing.T) {
	ticks, err := NewTicks(decimal.RequireFromString("0.5"), decimal.RequireFromString("0.001"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.5").Equal(ticks.PriceTick()))
	assert.True(t, decimal.RequireFromString("0.001").Equal(ticks.LotSize()))
}

func TestNewTicksRejectsNonPositive(t *testing.T) {
	_, err := NewTicks(decimal.Zero, decimal.NewFromInt(1))
	assert.Error(t, err)
	_, err = NewTicks(decimal.NewFromInt(1), decimal.NewFromInt(-1))
	assert.Error(t, err)
}
