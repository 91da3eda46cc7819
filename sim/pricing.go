package sim

// PricingStrategy is a firm's price-feedback controller. The current price
// follows the observed sell-through ratio: underselling pushes it down,
// overselling pushes it up, with an amplified recovery step while the price
// sits below its cost base.
type PricingStrategy struct {
	// MaxPriceChangePerDay scales how hard the ratio distance moves the
	// price in a single tick.
	MaxPriceChangePerDay float64
	CurrentPrice         Money
	// BasePrice is the cost anchor, refreshed from production cost on
	// every market release.
	BasePrice Money

	initialized bool
}

// NewPricingStrategy returns a strategy with the given per-day change cap.
// The price itself initializes lazily from the first released item's
// production cost.
func NewPricingStrategy(maxChangePerDay float64) PricingStrategy {
	return PricingStrategy{MaxPriceChangePerDay: maxChangePerDay}
}

// OnRelease refreshes the cost anchor when items reach the market. The very
// first release also seeds the current price.
func (p *PricingStrategy) OnRelease(productionCost Money) {
	if !p.initialized {
		p.CurrentPrice = productionCost
		p.initialized = true
	}
	p.BasePrice = productionCost
}

// Initialized reports whether a first release has seeded the price.
func (p *PricingStrategy) Initialized() bool {
	return p.initialized
}

// Adjust recomputes the price from the windowed sell-through ratio
// sold/produced. Below lowerBound the price drops, above upperBound it
// rises; the rise is amplified tenfold while the price is under its base
// (recovery boost). A multiplicative update that leaves the price
// numerically unchanged is forced to a minimum one-unit step in the
// intended direction. produced == 0 skips the adjustment entirely.
func (p *PricingStrategy) Adjust(sold, produced int, lowerBound, upperBound float64) {
	if produced == 0 {
		return
	}
	ratio := float64(sold) / float64(produced)

	switch {
	case ratio < lowerBound:
		factor := 1.0 - (lowerBound-ratio)*p.MaxPriceChangePerDay
		next := p.CurrentPrice.MulF(factor)
		if next == p.CurrentPrice {
			next = p.CurrentPrice.Sub(1)
		}
		p.CurrentPrice = next
	case ratio > upperBound:
		delta := (ratio - upperBound) * p.MaxPriceChangePerDay
		if p.CurrentPrice < p.BasePrice {
			// Selling well below cost base: recover fast.
			delta *= 10
		}
		next := p.CurrentPrice.MulF(1.0 + delta)
		if next == p.CurrentPrice {
			next = p.CurrentPrice.Add(1)
		}
		p.CurrentPrice = next
	}
}

// ResetToBase snaps the price back to the cost anchor. Used when a
// bankrupt firm's sell orders pass to its former owner.
func (p *PricingStrategy) ResetToBase() {
	p.CurrentPrice = p.BasePrice
}
