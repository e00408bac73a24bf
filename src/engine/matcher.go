package engine

// Match is one resting order hit by an incoming order.
type Match struct {
	OrderID OrderID
	Price   Price
	Size    Size // matched size
	Full    bool // the resting order was consumed entirely
}

type MatchReport struct {
	Matches  []Match
	Residual Size // size of the incoming order left after matching
	Rested   bool // the residual was inserted into the book
}

// Filled is the total size matched against resting orders.
func (r MatchReport) Filled() Size {
	var total Size
	for _, m := range r.Matches {
		total += m.Size
	}
	return total
}

// matchOrder walks the opposite side in priority order and records what the
// incoming order would take. It does not mutate the book.
func matchOrder(o *Order, opposite *PriceLevels) MatchReport {
	report := MatchReport{Residual: o.Size}
	if report.Residual <= 0 {
		return report
	}

	opposite.Ascend(func(pl *PriceLevel) bool {
		// levels beyond the first non-crossable one cannot cross either
		if !o.crosses(pl.price) {
			return false
		}
		for i := 0; i < pl.Len(); i++ {
			resting := pl.at(i)
			if report.Residual >= resting.Size {
				report.Matches = append(report.Matches, Match{
					OrderID: resting.ID,
					Price:   pl.price,
					Size:    resting.Size,
					Full:    true,
				})
				report.Residual -= resting.Size
			} else {
				report.Matches = append(report.Matches, Match{
					OrderID: resting.ID,
					Price:   pl.price,
					Size:    report.Residual,
				})
				report.Residual = 0
			}
			if report.Residual == 0 {
				return false
			}
		}
		return true
	})
	return report
}

// applyMatches removes fully filled resting orders and shrinks the partially
// filled one, which keeps its place at the head of its level.
func (ob *OrderBook) applyMatches(report MatchReport, opposite *PriceLevels) {
	for _, m := range report.Matches {
		if m.Full {
			opposite.RemoveOrder(m.OrderID)
			delete(ob.orders, m.OrderID)
			continue
		}
		resting := ob.orders[m.OrderID]
		opposite.UpdateOrder(m.OrderID, resting.Size-m.Size)
	}
}
