package trace

// MarketTrace collects trade and lifecycle records during a simulation run.
// A nil *MarketTrace is a valid no-op recorder.
type MarketTrace struct {
	Trades    []TradeRecord
	Lifecycle []LifecycleRecord
}

// NewMarketTrace creates a MarketTrace ready for recording.
func NewMarketTrace() *MarketTrace {
	return &MarketTrace{
		Trades:    make([]TradeRecord, 0),
		Lifecycle: make([]LifecycleRecord, 0),
	}
}

// RecordTrade appends one executed trade. No-op on a nil trace.
func (mt *MarketTrace) RecordTrade(record TradeRecord) {
	if mt == nil {
		return
	}
	mt.Trades = append(mt.Trades, record)
}

// RecordLifecycle appends one founding or liquidation. No-op on a nil trace.
func (mt *MarketTrace) RecordLifecycle(record LifecycleRecord) {
	if mt == nil {
		return
	}
	mt.Lifecycle = append(mt.Lifecycle, record)
}
