package engine

import (
	"fmt"

	"github.com/rs/zerolog"
)

// OrderBook holds the resting limit orders of a single instrument. It is not
// safe for concurrent use, see ConcurrentOrderBook.
type OrderBook struct {
	bids   *PriceLevels
	asks   *PriceLevels
	orders map[OrderID]*Order // book-wide index, union of both sides

	log             zerolog.Logger
	checkInvariants bool
}

type Option func(*OrderBook)

func WithLogger(log zerolog.Logger) Option {
	return func(ob *OrderBook) {
		ob.log = log
	}
}

// WithInvariantChecks makes every mutating call run Validate and panic on a
// violation. Meant for tests and debugging; it walks the whole book.
func WithInvariantChecks(enabled bool) Option {
	return func(ob *OrderBook) {
		ob.checkInvariants = enabled
	}
}

// WithDegree sets the B-tree degree of both sides.
func WithDegree(degree int) Option {
	return func(ob *OrderBook) {
		if degree >= 2 {
			ob.bids = newPriceLevels(false, degree)
			ob.asks = newPriceLevels(true, degree)
		}
	}
}

func NewOrderBook(opts ...Option) *OrderBook {
	ob := &OrderBook{
		bids:   NewPriceLevels(false),
		asks:   NewPriceLevels(true),
		orders: make(map[OrderID]*Order),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(ob)
	}
	return ob
}

func (ob *OrderBook) side(s Side) *PriceLevels {
	if s == SideBuy {
		return ob.bids
	}
	return ob.asks
}

// Place matches o against the opposite side and rests any residual on its
// own side. Invalid orders are rejected with a *RejectError and leave the book
// untouched. An order is also rejected when resting all of it would overflow
// the aggregate size of its level, even if part of it could match.
func (ob *OrderBook) Place(o Order) (MatchReport, error) {
	if err := o.validate(); err != nil {
		ob.logReject(o, err)
		return MatchReport{}, err
	}
	if o.Size == 0 {
		err := reject(o.ID, ErrInvalidSize)
		ob.logReject(o, err)
		return MatchReport{}, err
	}
	if _, exists := ob.orders[o.ID]; exists {
		err := reject(o.ID, ErrDuplicateOrderID)
		ob.logReject(o, err)
		return MatchReport{}, err
	}
	// the residual is not known until matching mutates the book
	if o.Size > ob.side(o.Side).Room(o.Price) {
		err := reject(o.ID, ErrLevelOverflow)
		ob.logReject(o, err)
		return MatchReport{}, err
	}

	opposite := ob.side(o.Side.Opposite())
	report := matchOrder(&o, opposite)
	ob.applyMatches(report, opposite)

	if report.Residual > 0 {
		resting := o
		resting.Size = report.Residual
		ob.orders[resting.ID] = &resting
		ob.side(o.Side).Insert(&resting)
		report.Rested = true
	}

	if e := ob.log.Debug(); e.Enabled() {
		e.Int64("order_id", int64(o.ID)).
			Stringer("side", o.Side).
			Int64("price", int64(o.Price)).
			Int64("size", int64(o.Size)).
			Int("matches", len(report.Matches)).
			Int64("residual", int64(report.Residual)).
			Bool("rested", report.Rested).
			Msg("Order placed")
	}

	ob.assertInvariants("place")
	return report, nil
}

// Cancel removes a resident order. Unknown ids are ignored, so cancelling
// twice is the same as cancelling once. It reports whether an order was removed.
func (ob *OrderBook) Cancel(id OrderID) bool {
	o, ok := ob.orders[id]
	if !ok {
		return false
	}
	ob.side(o.Side).RemoveOrder(id)
	delete(ob.orders, id)

	ob.log.Debug().Int64("order_id", int64(id)).Msg("Order cancelled")
	ob.assertInvariants("cancel")
	return true
}

// Update sets the resident size of an order without changing its price or
// queue position, and never triggers matching. Unknown ids are ignored. A new
// size of zero removes the order.
func (ob *OrderBook) Update(id OrderID, size Size) error {
	if size < 0 {
		return reject(id, ErrInvalidSize)
	}
	o, ok := ob.orders[id]
	if !ok {
		return nil
	}
	// edge case: zero-size orders must not stay resident
	if size == 0 {
		ob.Cancel(id)
		return nil
	}
	side := ob.side(o.Side)
	if size > side.Room(o.Price)+o.Size {
		return reject(id, ErrLevelOverflow)
	}
	side.UpdateOrder(id, size)

	ob.log.Debug().Int64("order_id", int64(id)).Int64("size", int64(size)).Msg("Order updated")
	ob.assertInvariants("update")
	return nil
}

// Quote is the price and aggregate size of a level.
type Quote struct {
	Price Price
	Size  Size
}

func quoteOf(pls *PriceLevels) (Quote, bool) {
	pl := pls.BestLevel()
	if pl == nil {
		return Quote{}, false
	}
	return Quote{Price: pl.price, Size: pl.size}, true
}

func (ob *OrderBook) BestBid() (Quote, bool) {
	return quoteOf(ob.bids)
}

func (ob *OrderBook) BestAsk() (Quote, bool) {
	return quoteOf(ob.asks)
}

// Spread is best ask minus best bid; it needs both sides.
func (ob *OrderBook) Spread() (Price, bool) {
	bid, ok := ob.bids.BestPrice()
	if !ok {
		return 0, false
	}
	ask, ok := ob.asks.BestPrice()
	if !ok {
		return 0, false
	}
	return ask - bid, true
}

func (ob *OrderBook) Bids() *PriceLevels {
	return ob.bids
}

func (ob *OrderBook) Asks() *PriceLevels {
	return ob.asks
}

// Order returns a copy of a resident order.
func (ob *OrderBook) Order(id OrderID) (Order, bool) {
	o, ok := ob.orders[id]
	if !ok {
		return Order{}, false
	}
	return *o, true
}

// Len is the number of resident orders.
func (ob *OrderBook) Len() int {
	return len(ob.orders)
}

// Depth returns up to n levels per side, bids highest first and asks lowest
// first. n <= 0 returns every level.
func (ob *OrderBook) Depth(n int) (bids, asks []LevelSnapshot) {
	return ob.bids.Depth(n), ob.asks.Depth(n)
}

// Validate checks every structural invariant of the book and returns the
// first violation found.
func (ob *OrderBook) Validate() error {
	if err := ob.bids.validate(); err != nil {
		return err
	}
	if err := ob.asks.validate(); err != nil {
		return err
	}
	if n := ob.bids.OrderCount() + ob.asks.OrderCount(); n != len(ob.orders) {
		return fmt.Errorf("book index holds %d orders, sides hold %d", len(ob.orders), n)
	}
	for id, o := range ob.orders {
		if o.ID != id {
			return fmt.Errorf("book index key %d points at order %d", id, o.ID)
		}
		sideOrder, ok := ob.side(o.Side).orders[id]
		if !ok {
			return fmt.Errorf("order %d indexed as %s but missing from that side", id, o.Side)
		}
		if sideOrder != o {
			return fmt.Errorf("order %d has diverging records in book and side index", id)
		}
	}
	return nil
}

func (ob *OrderBook) assertInvariants(op string) {
	if !ob.checkInvariants {
		return
	}
	if err := ob.Validate(); err != nil {
		ob.log.Error().Err(err).Str("op", op).Msg("Order book invariant violated")
		panic(fmt.Sprintf("engine: invariant violated after %s: %v", op, err))
	}
}

func (ob *OrderBook) logReject(o Order, err error) {
	ob.log.Warn().
		Err(err).
		Int64("order_id", int64(o.ID)).
		Stringer("side", o.Side).
		Int64("price", int64(o.Price)).
		Int64("size", int64(o.Size)).
		Msg("Order rejected")
}
