package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"match-engine/src/bench"
	"match-engine/src/config"
	"match-engine/src/engine"
	"match-engine/src/logger"
)

func main() {
	logger.InitLogger()
	defer logger.CloseLogger()

	runID := uuid.New().String()
	log := logger.Component("bench").With().Str("run_id", runID).Logger()

	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error().Err(err).Msg("Invalid benchmark configuration")
		logger.CloseLogger()
		os.Exit(1)
	}

	seed := cfg.Bench.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log.Info().
		Str("service", cfg.ServiceName).
		Int("orders", cfg.Bench.Orders).
		Int64("seed", seed).
		Str("price_range", "["+cfg.Bench.MinPrice.String()+", "+cfg.Bench.MaxPrice.String()+")").
		Str("size_range", "["+cfg.Bench.MinSize.String()+", "+cfg.Bench.MaxSize.String()+")").
		Msg("Generating orders")

	orders, err := bench.Generate(cfg.Bench, rand.New(rand.NewSource(seed)))
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate orders")
		logger.CloseLogger()
		os.Exit(1)
	}

	if cfg.Bench.Warmup > 0 {
		log.Info().Dur("warmup", cfg.Bench.Warmup).Msg("Waiting before run")
		time.Sleep(cfg.Bench.Warmup)
	}

	book := engine.NewOrderBook(engine.WithLogger(logger.Component("engine")))
	res := bench.Run(book, orders)

	log.Info().
		Int("orders", res.Orders).
		Int("rejected", res.Rejected).
		Int("matches", res.Matches).
		Int64("filled", int64(res.Filled)).
		Int("rested", res.Rested).
		Int("resident", book.Len()).
		Dur("elapsed", res.Elapsed).
		Float64("orders_per_sec", res.OrdersPerSecond).
		Msg("Benchmark complete")

	ticks, err := engine.NewTicks(cfg.Bench.Tick, cfg.Bench.Lot)
	if err != nil {
		return
	}
	event := log.Info().
		Str("tick", ticks.PriceTick().String()).
		Str("lot", ticks.LotSize().String())
	if bid, ok := book.BestBid(); ok {
		event = event.Str("best_bid", ticks.PriceDecimal(bid.Price).String()).
			Str("best_bid_size", ticks.SizeDecimal(bid.Size).String())
	}
	if ask, ok := book.BestAsk(); ok {
		event = event.Str("best_ask", ticks.PriceDecimal(ask.Price).String()).
			Str("best_ask_size", ticks.SizeDecimal(ask.Size).String())
	}
	event.Int("bid_levels", book.Bids().Len()).
		Int("ask_levels", book.Asks().Len()).
		Msg("Final book")
}
