package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	errZeroTicks = errors.New("ticks not initialised, use NewTicks or DefaultTicks")

	maxUnits = decimal.NewFromInt(math.MaxInt64)
	minUnits = decimal.NewFromInt(math.MinInt64)
)

// Ticks converts between human prices/quantities and the integer Price and
// Size the book works with. The zero value is unusable; build one with
// NewTicks.
type Ticks struct {
	priceTick decimal.Decimal
	lotSize   decimal.Decimal
}

// DefaultTicks uses cents for price and whole units for size.
var DefaultTicks = Ticks{
	priceTick: decimal.New(1, -2),
	lotSize:   decimal.NewFromInt(1),
}

func NewTicks(priceTick, lotSize decimal.Decimal) (Ticks, error) {
	if !priceTick.IsPositive() {
		return Ticks{}, fmt.Errorf("price tick must be positive, got %s", priceTick)
	}
	if !lotSize.IsPositive() {
		return Ticks{}, fmt.Errorf("lot size must be positive, got %s", lotSize)
	}
	return Ticks{priceTick: priceTick, lotSize: lotSize}, nil
}

func (t Ticks) PriceTick() decimal.Decimal {
	return t.priceTick
}

func (t Ticks) LotSize() decimal.Decimal {
	return t.lotSize
}

func (t Ticks) check() error {
	if !t.priceTick.IsPositive() || !t.lotSize.IsPositive() {
		return errZeroTicks
	}
	return nil
}

// Price converts an exact decimal price. It must be a multiple of the tick
// and fit in a Price.
func (t Ticks) Price(d decimal.Decimal) (Price, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	n, err := toUnits(d, t.priceTick, ErrInvalidPrice)
	if err != nil {
		return 0, fmt.Errorf("price %s: %w", d, err)
	}
	return Price(n), nil
}

// PriceFromFloat rounds f to the nearest tick. NaN and infinities are
// rejected since they have no place in a price ordering.
func (t Ticks) PriceFromFloat(f float64) (Price, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("price %v: %w", f, ErrInvalidPrice)
	}
	n, ok := int64Units(decimal.NewFromFloat(f).Div(t.priceTick).Round(0))
	if !ok {
		return 0, fmt.Errorf("price %v: %w", f, ErrInvalidPrice)
	}
	return Price(n), nil
}

// Size converts an exact decimal quantity. It must be a non-negative multiple
// of the lot size.
func (t Ticks) Size(d decimal.Decimal) (Size, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("size %s: %w", d, ErrInvalidSize)
	}
	n, err := toUnits(d, t.lotSize, ErrInvalidSize)
	if err != nil {
		return 0, fmt.Errorf("size %s: %w", d, err)
	}
	return Size(n), nil
}

// SizeFromFloat rounds f down to whole lots.
func (t Ticks) SizeFromFloat(f float64) (Size, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("size %v: %w", f, ErrInvalidSize)
	}
	n, ok := int64Units(decimal.NewFromFloat(f).Div(t.lotSize).Floor())
	if !ok {
		return 0, fmt.Errorf("size %v: %w", f, ErrInvalidSize)
	}
	return Size(n), nil
}

func (t Ticks) PriceDecimal(p Price) decimal.Decimal {
	return decimal.NewFromInt(int64(p)).Mul(t.priceTick)
}

func (t Ticks) SizeDecimal(s Size) decimal.Decimal {
	return decimal.NewFromInt(int64(s)).Mul(t.lotSize)
}

// toUnits divides d by unit exactly. outOfRange is returned when the
// quotient does not fit in an int64.
func toUnits(d, unit decimal.Decimal, outOfRange error) (int64, error) {
	if !d.Mod(unit).IsZero() {
		return 0, ErrOffTick
	}
	n, ok := int64Units(d.Div(unit))
	if !ok {
		return 0, outOfRange
	}
	return n, nil
}

// int64Units returns the integer part of q, or false when q lies outside the
// int64 range and IntPart would wrap.
func int64Units(q decimal.Decimal) (int64, bool) {
	if q.GreaterThan(maxUnits) || q.LessThan(minUnits) {
		return 0, false
	}
	return q.IntPart(), true
}
