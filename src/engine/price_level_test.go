package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(id OrderID, side Side, price Price, size Size) *Order {
	o := MustOrder(id, side, price, size)
	return &o
}

func TestPriceLevelAddRemove(t *testing.T) {
	pl := newPriceLevel(10)
	assert.Equal(t, Size(0), pl.Size())
	assert.True(t, pl.IsEmpty())

	o := newTestOrder(0, SideBuy, 10, 1)
	pl.Add(o)
	assert.Equal(t, Size(1), pl.Size())
	assert.Equal(t, Price(10), pl.Price())

	assert.True(t, pl.Remove(o.ID))
	assert.Equal(t, Size(0), pl.Size())
	assert.True(t, pl.IsEmpty())

	// removing again is a no-op
	assert.False(t, pl.Remove(o.ID))
	assert.Equal(t, Size(0), pl.Size())
}

func TestPriceLevelAggregatesSize(t *testing.T) {
	pl := newPriceLevel(10)
	pl.Add(newTestOrder(0, SideBuy, 10, 1))
	pl.Add(newTestOrder(1, SideBuy, 10, 2))
	assert.Equal(t, Size(3), pl.Size())
	assert.Equal(t, 2, pl.Len())
}

func TestPriceLevelRemoveKeepsArrivalOrder(t *testing.T) {
	pl := newPriceLevel(10)
	for i := OrderID(1); i <= 9; i++ {
		pl.Add(newTestOrder(i, SideBuy, 10, Size(i)))
	}
	require.True(t, pl.Remove(5))
	require.True(t, pl.Remove(1))

	var ids []OrderID
	for _, o := range pl.Orders() {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []OrderID{2, 3, 4, 6, 7, 8, 9}, ids)
	assert.Equal(t, Size(45-5-1), pl.Size())

	for i := OrderID(1); i <= 9; i++ {
		pl.Remove(i)
	}
	assert.True(t, pl.IsEmpty())
	assert.Equal(t, Size(0), pl.Size())
}

func TestPriceLevelResize(t *testing.T) {
	pl := newPriceLevel(10)
	a := newTestOrder(1, SideSell, 10, 4)
	b := newTestOrder(2, SideSell, 10, 6)
	pl.Add(a)
	pl.Add(b)

	pl.resize(a, 1)
	assert.Equal(t, Size(1), a.Size)
	assert.Equal(t, Size(7), pl.Size())
	assert.Equal(t, OrderID(1), pl.at(0).ID)
}

func TestPriceLevelPriceOnEmptyPanics(t *testing.T) {
	pl := newPriceLevel(10)
	assert.Panics(t, func() { pl.Price() })
}
