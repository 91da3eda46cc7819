// Package trace provides trade-trace recording for market analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// TradeRecord captures a single executed trade.
type TradeRecord struct {
	Day      int
	Buyer    int
	Seller   int
	ItemType string
	Price    int64
}

// LifecycleRecord captures a firm founding or liquidation.
type LifecycleRecord struct {
	Day     int
	Firm    int
	Founded bool // false = liquidated
	Recipe  string
}
