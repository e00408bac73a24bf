package bench

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"match-engine/src/config"
	"match-engine/src/engine"
)

// Placer is the part of an order book the harness drives.
type Placer interface {
	Place(o engine.Order) (engine.MatchReport, error)
}

type Result struct {
	Orders          int
	Rejected        int
	Matches         int
	Filled          engine.Size
	Rested          int
	Elapsed         time.Duration
	OrdersPerSecond float64
}

// Generate draws cfg.Orders random limit orders with ids 0..n-1. Prices and
// sizes are whole multiples of the tick and lot inside [min, max).
func Generate(cfg config.BenchConfig, rng *rand.Rand) ([]engine.Order, error) {
	ticks, err := engine.NewTicks(cfg.Tick, cfg.Lot)
	if err != nil {
		return nil, err
	}
	minPrice, maxPrice, err := unitRange(cfg.MinPrice, cfg.MaxPrice, ticks.Price, "price")
	if err != nil {
		return nil, err
	}
	minSize, maxSize, err := unitRange(cfg.MinSize, cfg.MaxSize, sizeUnits(ticks), "size")
	if err != nil {
		return nil, err
	}

	orders := make([]engine.Order, cfg.Orders)
	for i := range orders {
		side := engine.SideBuy
		if rng.Intn(2) == 0 {
			side = engine.SideSell
		}
		price := engine.Price(minPrice + rng.Int63n(maxPrice-minPrice))
		size := engine.Size(minSize + rng.Int63n(maxSize-minSize))
		o, err := engine.NewOrder(engine.OrderID(i), side, price, size)
		if err != nil {
			return nil, err
		}
		orders[i] = o
	}
	return orders, nil
}

func sizeUnits(t engine.Ticks) func(decimal.Decimal) (engine.Price, error) {
	return func(d decimal.Decimal) (engine.Price, error) {
		s, err := t.Size(d)
		return engine.Price(s), err
	}
}

func unitRange(lo, hi decimal.Decimal, convert func(decimal.Decimal) (engine.Price, error), what string) (int64, int64, error) {
	from, err := convert(lo)
	if err != nil {
		return 0, 0, fmt.Errorf("min %s: %w", what, err)
	}
	to, err := convert(hi)
	if err != nil {
		return 0, 0, fmt.Errorf("max %s: %w", what, err)
	}
	if from >= to {
		return 0, 0, fmt.Errorf("%s range [%s, %s) holds no whole increment", what, lo, hi)
	}
	return int64(from), int64(to), nil
}

// Run places every order in sequence and measures the wall time of the loop.
func Run(book Placer, orders []engine.Order) Result {
	res := Result{Orders: len(orders)}

	start := time.Now()
	for _, o := range orders {
		report, err := book.Place(o)
		if err != nil {
			res.Rejected++
			continue
		}
		res.Matches += len(report.Matches)
		res.Filled += report.Filled()
		if report.Rested {
			res.Rested++
		}
	}
	res.Elapsed = time.Since(start)

	if res.Elapsed > 0 {
		res.OrdersPerSecond = float64(res.Orders) / res.Elapsed.Seconds()
	}
	return res
}
