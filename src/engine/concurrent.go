package engine

import "sync"

// ConcurrentOrderBook serialises access to an OrderBook with one lock. A
// Place runs its match, apply and insert steps under the write lock, so other
// goroutines never observe a half-applied match.
type ConcurrentOrderBook struct {
	book *OrderBook
	mu   sync.RWMutex
}

func NewConcurrentOrderBook(opts ...Option) *ConcurrentOrderBook {
	return &ConcurrentOrderBook{book: NewOrderBook(opts...)}
}

func (c *ConcurrentOrderBook) Place(o Order) (MatchReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.book.Place(o)
}

func (c *ConcurrentOrderBook) Cancel(id OrderID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.book.Cancel(id)
}

func (c *ConcurrentOrderBook) Update(id OrderID, size Size) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.book.Update(id, size)
}

func (c *ConcurrentOrderBook) BestBid() (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.book.BestBid()
}

func (c *ConcurrentOrderBook) BestAsk() (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.book.BestAsk()
}

func (c *ConcurrentOrderBook) Order(id OrderID) (Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.book.Order(id)
}

func (c *ConcurrentOrderBook) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.book.Len()
}

func (c *ConcurrentOrderBook) Depth(n int) (bids, asks []LevelSnapshot) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.book.Depth(n)
}

func (c *ConcurrentOrderBook) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.book.Validate()
}
