package trace

// TraceSummary aggregates statistics from a MarketTrace.
type TraceSummary struct {
	TotalTrades  int
	TotalVolume  int64
	MeanPrice    float64
	MaxPrice     int64
	Founded      int
	Liquidated   int
	TradesByType map[string]int // item type → executed trade count
}

// Summarize computes aggregate statistics from a MarketTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(mt *MarketTrace) *TraceSummary {
	summary := &TraceSummary{
		TradesByType: make(map[string]int),
	}
	if mt == nil {
		return summary
	}

	summary.TotalTrades = len(mt.Trades)
	for _, t := range mt.Trades {
		summary.TradesByType[t.ItemType]++
		summary.TotalVolume += t.Price
		if t.Price > summary.MaxPrice {
			summary.MaxPrice = t.Price
		}
	}
	if summary.TotalTrades > 0 {
		summary.MeanPrice = float64(summary.TotalVolume) / float64(summary.TotalTrades)
	}

	for _, l := range mt.Lifecycle {
		if l.Founded {
			summary.Founded++
		} else {
			summary.Liquidated++
		}
	}

	return summary
}
