package sim

import "sort"

// PriceStats is one day's price distribution snapshot of the live sell
// orders for a single item type.
type PriceStats struct {
	Type        ItemType
	Min         Money
	Max         Money
	Median      Money
	P25         Money
	P75         Money
	Avg         Money
	TotalOrders int
	Day         int
}

// PriceHistory accumulates daily PriceStats per item type for presentation
// layers. The engine only appends.
type PriceHistory struct {
	Prices map[ItemType][]PriceStats
}

// NewPriceHistory returns an empty history.
func NewPriceHistory() *PriceHistory {
	return &PriceHistory{Prices: make(map[ItemType][]PriceStats)}
}

// Snapshot groups the live sell orders by type and appends one PriceStats
// row per type for the given day.
func (h *PriceHistory) Snapshot(day int, orders []*SellOrder) {
	grouped := make(map[ItemType][]Money)
	for _, o := range orders {
		grouped[o.Type] = append(grouped[o.Type], o.Price)
	}

	types := make([]ItemType, 0, len(grouped))
	for t := range grouped {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, t := range types {
		prices := grouped[t]
		sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })
		n := len(prices)
		stats := PriceStats{
			Type:        t,
			Day:         day,
			Min:         prices[0],
			Max:         prices[n-1],
			Median:      prices[n/2],
			P25:         prices[n/4],
			P75:         prices[n*3/4],
			Avg:         SumMoney(prices).Div(n),
			TotalOrders: n,
		}
		h.Prices[t] = append(h.Prices[t], stats)
	}
}

// Latest returns the most recent snapshot for the type, if any.
func (h *PriceHistory) Latest(t ItemType) (PriceStats, bool) {
	rows := h.Prices[t]
	if len(rows) == 0 {
		return PriceStats{}, false
	}
	return rows[len(rows)-1], true
}
