package engine

import "fmt"

type Side uint8

const (
	SideBuy Side = iota + 1
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the side an order of side s matches against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

type OrderID int64

// Price is a count of ticks. Integer ticks keep price comparison a strict
// total order, see Ticks for conversion from decimal prices.
type Price int64

// Size is a count of lots.
type Size int64

// edge case: a resident order never has Size 0, it is removed instead
type Order struct {
	ID    OrderID
	Side  Side
	Price Price
	Size  Size
}

func NewOrder(id OrderID, side Side, price Price, size Size) (Order, error) {
	o := Order{ID: id, Side: side, Price: price, Size: size}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// MustOrder is NewOrder for literals in tests and benchmarks.
func MustOrder(id OrderID, side Side, price Price, size Size) Order {
	o, err := NewOrder(id, side, price, size)
	if err != nil {
		panic(err)
	}
	return o
}

func (o Order) validate() error {
	if !o.Side.Valid() {
		return reject(o.ID, ErrInvalidSide)
	}
	if o.Size < 0 {
		return reject(o.ID, ErrInvalidSize)
	}
	return nil
}

// crosses reports whether a resting level at price p satisfies the limit of o.
func (o *Order) crosses(p Price) bool {
	if o.Side == SideBuy {
		return p <= o.Price
	}
	return p >= o.Price
}
