package engine

import (
	"github.com/gammazero/deque"
)

// PriceLevel is the FIFO queue of resident orders at a single price.
type PriceLevel struct {
	price  Price
	orders deque.Deque[*Order] // fifo ordering for time priority
	size   Size
}

func newPriceLevel(price Price) *PriceLevel {
	return &PriceLevel{price: price}
}

func (pl *PriceLevel) Add(o *Order) {
	pl.orders.PushBack(o)
	pl.size += o.Size
}

// Remove drops the order with the given id. Removing an absent id is a no-op.
func (pl *PriceLevel) Remove(id OrderID) bool {
	i := pl.orders.Index(func(o *Order) bool { return o.ID == id })
	if i < 0 {
		return false
	}
	o := pl.orders.Remove(i)
	pl.size -= o.Size
	return true
}

// resize changes the size of a resident order without touching its position.
func (pl *PriceLevel) resize(o *Order, size Size) {
	pl.size += size - o.Size
	o.Size = size
}

func (pl *PriceLevel) IsEmpty() bool {
	return pl.orders.Len() == 0
}

// Price panics on an empty level; empty levels are never stored in a book.
func (pl *PriceLevel) Price() Price {
	if pl.IsEmpty() {
		panic("engine: Price called on empty price level")
	}
	return pl.price
}

// Size is the aggregate resident size of the level.
func (pl *PriceLevel) Size() Size {
	return pl.size
}

func (pl *PriceLevel) Len() int {
	return pl.orders.Len()
}

func (pl *PriceLevel) at(i int) *Order {
	return pl.orders.At(i)
}

// Orders returns copies of the resident orders in arrival order.
func (pl *PriceLevel) Orders() []Order {
	out := make([]Order, pl.orders.Len())
	for i := range out {
		out[i] = *pl.orders.At(i)
	}
	return out
}
