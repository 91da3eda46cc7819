package sim

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Metrics aggregates run-wide counters for the end-of-run report.
type Metrics struct {
	Ticks           int
	Trades          int
	FirmsFounded    int
	FirmsLiquidated int
	ExpiredOrders   int
}

// NewMetrics returns zeroed counters.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(w *World, book *OrderBook) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Ticks              : %s\n", humanize.Comma(int64(m.Ticks)))
	fmt.Printf("Trades executed    : %s\n", humanize.Comma(int64(m.Trades)))
	fmt.Printf("Firms founded      : %s\n", humanize.Comma(int64(m.FirmsFounded)))
	fmt.Printf("Firms liquidated   : %s\n", humanize.Comma(int64(m.FirmsLiquidated)))
	fmt.Printf("Expired buy orders : %s\n", humanize.Comma(int64(m.ExpiredOrders)))
	fmt.Printf("Live firms         : %s\n", humanize.Comma(int64(len(w.Firms))))
	fmt.Printf("Live people        : %s\n", humanize.Comma(int64(len(w.People))))
	fmt.Printf("Open buy orders    : %s\n", humanize.Comma(int64(len(book.BuyOrders))))
	fmt.Printf("Open sell orders   : %s\n", humanize.Comma(int64(len(book.SellOrders))))
	fmt.Printf("Total money        : %s\n", w.TotalMoney())
}
