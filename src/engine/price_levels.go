package engine

import (
	"fmt"
	"math"

	"github.com/google/btree"
)

const defaultDegree = 32

func byPrice(a, b *PriceLevel) bool {
	return a.price < b.price
}

// PriceLevels is one side of the book. Levels are stored by ascending price;
// ask decides which end is best.
type PriceLevels struct {
	levels *btree.BTreeG[*PriceLevel]
	orders map[OrderID]*Order
	ask    bool
}

func NewPriceLevels(ask bool) *PriceLevels {
	return newPriceLevels(ask, defaultDegree)
}

func newPriceLevels(ask bool, degree int) *PriceLevels {
	return &PriceLevels{
		levels: btree.NewG(degree, byPrice),
		orders: make(map[OrderID]*Order),
		ask:    ask,
	}
}

func (pls *PriceLevels) level(p Price) (*PriceLevel, bool) {
	return pls.levels.Get(&PriceLevel{price: p})
}

// Room is how much more size can rest at p before the level aggregate
// overflows.
func (pls *PriceLevels) Room(p Price) Size {
	pl, ok := pls.level(p)
	if !ok {
		return math.MaxInt64
	}
	return math.MaxInt64 - pl.size
}

// Insert makes o resident on this side. The side keeps the pointer, so o must
// not be shared with another book.
func (pls *PriceLevels) Insert(o *Order) {
	pl, ok := pls.level(o.Price)
	if !ok {
		pl = newPriceLevel(o.Price)
		pls.levels.ReplaceOrInsert(pl)
	}
	pl.Add(o)
	pls.orders[o.ID] = o
}

// RemoveOrder removes a resident order. The id must be resident on this side;
// callers check membership first and a missing id panics.
func (pls *PriceLevels) RemoveOrder(id OrderID) {
	_, pl := pls.mustFind(id)
	pl.Remove(id)
	// edge case: remove empty price level
	if pl.IsEmpty() {
		pls.levels.Delete(pl)
	}
	delete(pls.orders, id)
}

// UpdateOrder sets the resident size of an order in place, keeping its queue
// position. The id must be resident on this side.
func (pls *PriceLevels) UpdateOrder(id OrderID, size Size) {
	o, pl := pls.mustFind(id)
	pl.resize(o, size)
}

func (pls *PriceLevels) mustFind(id OrderID) (*Order, *PriceLevel) {
	o, ok := pls.orders[id]
	if !ok {
		panic(fmt.Sprintf("engine: order %d is not resident on %s side", id, pls.name()))
	}
	pl, ok := pls.level(o.Price)
	if !ok {
		panic(fmt.Sprintf("engine: order %d indexed at %d but no level exists", id, o.Price))
	}
	return o, pl
}

func (pls *PriceLevels) BestLevel() *PriceLevel {
	var (
		pl *PriceLevel
		ok bool
	)
	if pls.ask {
		pl, ok = pls.levels.Min()
	} else {
		pl, ok = pls.levels.Max()
	}
	if !ok {
		return nil
	}
	return pl
}

func (pls *PriceLevels) BestPrice() (Price, bool) {
	pl := pls.BestLevel()
	if pl == nil {
		return 0, false
	}
	return pl.price, true
}

// Ascend walks the levels from best to worst for this side until fn
// returns false.
func (pls *PriceLevels) Ascend(fn func(pl *PriceLevel) bool) {
	if pls.ask {
		pls.levels.Ascend(fn)
	} else {
		pls.levels.Descend(fn)
	}
}

func (pls *PriceLevels) Contains(id OrderID) bool {
	_, ok := pls.orders[id]
	return ok
}

func (pls *PriceLevels) Get(id OrderID) (Order, bool) {
	o, ok := pls.orders[id]
	if !ok {
		return Order{}, false
	}
	return *o, true
}

// Len is the number of price levels.
func (pls *PriceLevels) Len() int {
	return pls.levels.Len()
}

func (pls *PriceLevels) OrderCount() int {
	return len(pls.orders)
}

type LevelSnapshot struct {
	Price  Price
	Size   Size
	Orders int
}

// Depth returns up to n levels in priority order. n <= 0 returns every level.
func (pls *PriceLevels) Depth(n int) []LevelSnapshot {
	capacity := n
	if n <= 0 || n > pls.levels.Len() {
		capacity = pls.levels.Len()
	}
	out := make([]LevelSnapshot, 0, capacity)
	pls.Ascend(func(pl *PriceLevel) bool {
		if n > 0 && len(out) >= n {
			return false
		}
		out = append(out, LevelSnapshot{Price: pl.price, Size: pl.size, Orders: pl.Len()})
		return true
	})
	return out
}

func (pls *PriceLevels) name() string {
	if pls.ask {
		return "ask"
	}
	return "bid"
}

// validate checks that levels and the id index agree.
func (pls *PriceLevels) validate() error {
	var err error
	seen := 0
	pls.levels.Ascend(func(pl *PriceLevel) bool {
		if pl.IsEmpty() {
			err = fmt.Errorf("%s level %d is empty", pls.name(), pl.price)
			return false
		}
		var sum Size
		for i := 0; i < pl.Len(); i++ {
			o := pl.at(i)
			if o.Price != pl.price {
				err = fmt.Errorf("%s order %d priced %d sits in level %d", pls.name(), o.ID, o.Price, pl.price)
				return false
			}
			if o.Size <= 0 {
				err = fmt.Errorf("%s order %d has non-positive size %d", pls.name(), o.ID, o.Size)
				return false
			}
			if indexed, ok := pls.orders[o.ID]; !ok || indexed != o {
				err = fmt.Errorf("%s order %d in level %d is not indexed", pls.name(), o.ID, pl.price)
				return false
			}
			sum += o.Size
			seen++
		}
		if sum != pl.size {
			err = fmt.Errorf("%s level %d caches size %d, orders sum to %d", pls.name(), pl.price, pl.size, sum)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	if seen != len(pls.orders) {
		return fmt.Errorf("%s index holds %d orders, levels hold %d", pls.name(), len(pls.orders), seen)
	}
	return nil
}
