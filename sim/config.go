package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Params is the per-tick immutable snapshot of all tunables. The simulation
// reads it, never writes it.
type Params struct {
	// SampleFraction is the share of matching sell orders sampled per buy
	// order (weighted by remaining item count).
	SampleFraction float64 `yaml:"sample_fraction"`
	// TopFraction bounds the percentile draw over the price-sorted
	// sample. 0 means always-cheapest; larger values add buyer noise.
	TopFraction float64 `yaml:"top_fraction"`

	// PriceLowerBound and PriceUpperBound bracket the sell-through ratio
	// band within which a firm holds its price.
	PriceLowerBound      float64 `yaml:"price_lower_bound"`
	PriceUpperBound      float64 `yaml:"price_upper_bound"`
	MaxPriceChangePerDay float64 `yaml:"max_price_change_per_day"`
	// PricingWindow is the trailing tick window for sold/produced counts.
	PricingWindow int `yaml:"pricing_window"`

	// StaffCooldown is the minimum number of ticks between voluntary
	// staffing changes of one firm.
	StaffCooldown int `yaml:"staff_cooldown"`
	// KeepLastWorker, when set, stops the solvency override from firing a
	// firm's only remaining worker.
	KeepLastWorker bool `yaml:"keep_last_worker"`

	// LiquidationFloor is the balance below which a firm is liquidated.
	LiquidationFloor Money `yaml:"liquidation_floor"`
	// FirmStake is the fixed capital a founder transfers into a new firm.
	FirmStake Money `yaml:"firm_stake"`
	// DividendFraction of the rolling net gain is paid to the owner when
	// the balance covers it.
	DividendFraction float64 `yaml:"dividend_fraction"`
	DividendWindow   int     `yaml:"dividend_window"`
	// PermitInterval is the minimum number of ticks between business
	// permits issued by the government.
	PermitInterval int `yaml:"permit_interval"`

	// TargetProductionCycles is how many cycles of input stock a firm
	// tries to keep on hand.
	TargetProductionCycles int `yaml:"target_production_cycles"`
	// DefaultSalary is the wage attached to new job offers.
	DefaultSalary Money `yaml:"default_salary"`

	// BuyOrderTTL is the expiration, in ticks, on consumer buy orders.
	BuyOrderTTL int `yaml:"buy_order_ttl"`
	// ConsumerOrdersPerDay is the expected number of buy orders each
	// person submits per tick.
	ConsumerOrdersPerDay float64 `yaml:"consumer_orders_per_day"`
	// InitialPersonMoney is the opening balance of generated people.
	InitialPersonMoney Money `yaml:"initial_person_money"`
}

// DefaultParams returns the tuning the simulation ships with.
func DefaultParams() *Params {
	return &Params{
		SampleFraction:         0.1,
		TopFraction:            0.25,
		PriceLowerBound:        0.5,
		PriceUpperBound:        0.8,
		MaxPriceChangePerDay:   0.1,
		PricingWindow:          30,
		StaffCooldown:          3,
		KeepLastWorker:         false,
		LiquidationFloor:       500,
		FirmStake:              5000,
		DividendFraction:       0.5,
		DividendWindow:         30,
		PermitInterval:         10,
		TargetProductionCycles: 2,
		DefaultSalary:          100,
		BuyOrderTTL:            10,
		ConsumerOrdersPerDay:   1.0,
		InitialPersonMoney:     2000,
	}
}

// Validate rejects parameter combinations the engine cannot run with.
func (p *Params) Validate() error {
	if p.SampleFraction <= 0 || p.SampleFraction > 1 {
		return fmt.Errorf("sample_fraction must be in (0, 1], got %v", p.SampleFraction)
	}
	if p.TopFraction < 0 || p.TopFraction > 1 {
		return fmt.Errorf("top_fraction must be in [0, 1], got %v", p.TopFraction)
	}
	if p.PriceLowerBound >= p.PriceUpperBound {
		return fmt.Errorf("price_lower_bound %v must be below price_upper_bound %v",
			p.PriceLowerBound, p.PriceUpperBound)
	}
	if p.PricingWindow <= 0 {
		return fmt.Errorf("pricing_window must be positive, got %d", p.PricingWindow)
	}
	if p.DividendWindow <= 0 {
		return fmt.Errorf("dividend_window must be positive, got %d", p.DividendWindow)
	}
	if p.DividendFraction < 0 || p.DividendFraction > 1 {
		return fmt.Errorf("dividend_fraction must be in [0, 1], got %v", p.DividendFraction)
	}
	if p.PermitInterval <= 0 {
		return fmt.Errorf("permit_interval must be positive, got %d", p.PermitInterval)
	}
	if p.TargetProductionCycles <= 0 {
		return fmt.Errorf("target_production_cycles must be positive, got %d", p.TargetProductionCycles)
	}
	return nil
}

// LoadParams reads a YAML parameter file over the defaults, so a file only
// needs to name the tunables it changes.
func LoadParams(path string) (*Params, error) {
	params := DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("parse params %s: %w", path, err)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("params %s: %w", path, err)
	}
	return params, nil
}
