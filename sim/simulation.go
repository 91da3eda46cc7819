package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kajmaj87/sb3/sim/trace"
)

// Simulation is the core object: one logical economy advanced one discrete
// tick at a time. A tick runs every system once, in a fixed order, on a
// single goroutine; all randomness comes from the owned partitioned RNG, so
// equal seeds and configuration replay identically.
type Simulation struct {
	Day int

	World     *World
	Book      *OrderBook
	Offers    []*JobOffer
	Permits   int
	Params    *Params
	Templates *Templates

	RNG     *PartitionedRNG
	Events  *EventLog
	History *PriceHistory
	Demand  *DemandTracker
	Metrics *Metrics
	// Trace, when non-nil, records every trade and lifecycle change for
	// offline analysis.
	Trace *trace.MarketTrace
}

// NewSimulation builds a simulation from a validated template catalog:
// one owner and the templated workforce per firm copy.
func NewSimulation(templates *Templates, params *Params, seed int64) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		World:     NewWorld(),
		Book:      NewOrderBook(),
		Params:    params,
		Templates: templates,
		RNG:       NewPartitionedRNG(NewSimulationKey(seed)),
		Events:    NewEventLog(),
		History:   NewPriceHistory(),
		Demand:    NewDemandTracker(),
		Metrics:   NewMetrics(),
	}

	for _, ft := range templates.Firms {
		rt, ok := templates.RecipeByName(ft.Recipe)
		if !ok {
			return nil, fmt.Errorf("firm %q references unknown recipe %q", ft.Name, ft.Recipe)
		}
		copies := ft.Copies
		if copies <= 0 {
			copies = 1
		}
		for c := 0; c < copies; c++ {
			owner := &Person{Ledger: NewLedger(params.InitialPersonMoney)}
			s.World.AddPerson(owner)
			owner.Name = fmt.Sprintf("person %d", owner.ID)

			firm := &Firm{
				Name:    ft.Name,
				Recipe:  rt.Recipe(),
				Ledger:  NewLedger(ft.Money),
				Pricing: NewPricingStrategy(params.MaxPriceChangePerDay),
				Buying:  NewBuyStrategy(params.TargetProductionCycles),
				Owner:   owner.ID,
			}
			s.World.AddFirm(firm)
			if copies > 1 {
				firm.Name = fmt.Sprintf("%s %d", ft.Name, c+1)
			}

			for i := 0; i < ft.Workers; i++ {
				worker := &Person{
					Ledger:     NewLedger(params.InitialPersonMoney),
					Salary:     params.DefaultSalary,
					EmployedAt: firm.ID,
				}
				s.World.AddPerson(worker)
				worker.Name = fmt.Sprintf("person %d", worker.ID)
				firm.Workforce = append(firm.Workforce, worker.ID)
			}
		}
	}
	return s, nil
}

// advanceProductionAll ticks every firm's production state machine.
// Production signals are non-fatal; they only log.
func (s *Simulation) advanceProductionAll() {
	for _, id := range s.World.FirmIDs() {
		f := s.World.Firms[id]
		if err := advanceProduction(f, s.World, s.Day); err != nil {
			var noMat *NoMaterialError
			switch {
			case errors.As(err, &noMat):
				logrus.Debugf("day %d: %s idle, no %s in inventory", s.Day, f.Name, noMat.Material)
			case errors.Is(err, ErrNotEnoughWorkers):
				logrus.Debugf("day %d: %s idle, no workers", s.Day, f.Name)
			case errors.Is(err, ErrCantPayWorkers):
				logrus.Debugf("day %d: %s idle, cannot cover salaries", s.Day, f.Name)
			}
		}
	}
}

// generateFirmBuyOrders restocks inputs: each firm orders up to its target
// number of production cycles, net of inventory and orders already in
// flight.
func (s *Simulation) generateFirmBuyOrders() {
	for _, id := range s.World.FirmIDs() {
		f := s.World.Firms[id]
		for _, t := range f.Recipe.InputTypes() {
			qtyNeeded := f.Recipe.Input[t]
			cyclesStocked := f.Inventory.Count(t) / qtyNeeded
			if cyclesStocked >= f.Buying.TargetProductionCycles {
				continue
			}
			toBuy := (f.Buying.TargetProductionCycles-cyclesStocked)*qtyNeeded -
				f.Buying.OutstandingOrders[t]
			if toBuy <= 0 {
				continue
			}
			f.Buying.OutstandingOrders[t] += toBuy
			for i := 0; i < toBuy; i++ {
				s.SubmitBuyOrder(id, t, NoExpiration)
			}
		}
	}
}

// generateSellOrders releases a throughput-limited fraction of each firm's
// produced stock to the market:
//
//	amount = len(itemsToSell) × workforce / workdaysNeeded
//
// The first-ever release seeds the firm's price from the first item's
// production cost; every release refreshes the base price from it.
func (s *Simulation) generateSellOrders() {
	for _, id := range s.World.FirmIDs() {
		f := s.World.Firms[id]
		n := len(f.Inventory.ItemsToSell)
		if n == 0 {
			continue
		}
		amount := n * len(f.Workforce) / f.Recipe.WorkdaysNeeded
		if amount > n {
			amount = n
		}
		if amount == 0 {
			continue
		}
		released := f.Inventory.ItemsToSell[:amount:amount]
		f.Inventory.ItemsToSell = f.Inventory.ItemsToSell[amount:]

		f.Pricing.OnRelease(released[0].ProductionCost)
		order := s.Book.FindOrCreateSell(id, f.Recipe.Output, f.Pricing.CurrentPrice, f.Pricing.BasePrice)
		order.Items = append(order.Items, released...)
		order.Price = f.Pricing.CurrentPrice
		order.BasePrice = f.Pricing.BasePrice
	}
}

// recomputePricing feeds each firm's windowed sell-through back into its
// price.
func (s *Simulation) recomputePricing() {
	for _, id := range s.World.FirmIDs() {
		f := s.World.Firms[id]
		if !f.Pricing.Initialized() {
			continue
		}
		sold := f.SoldWithin(s.Day, s.Params.PricingWindow)
		produced := f.ProducedWithin(s.Day, s.Params.PricingWindow)
		f.Pricing.Adjust(sold, produced, s.Params.PriceLowerBound, s.Params.PriceUpperBound)
	}
}

// updateSellOrderPrices pushes each live firm's current price onto its live
// sell orders. Orders held by people (post-liquidation) keep their reset
// price.
func (s *Simulation) updateSellOrderPrices() {
	for _, order := range s.Book.SellOrders {
		if f, ok := s.World.Firms[order.Seller]; ok {
			order.Price = f.Pricing.CurrentPrice
			order.BasePrice = f.Pricing.BasePrice
		}
	}
}

// Tick advances the economy by one day. Phase order is load-bearing: money
// movement (salaries, matching) happens before production and market
// generation, lifecycle churn runs at the end of the tick.
func (s *Simulation) Tick() {
	s.Day++
	s.Metrics.Ticks++

	s.Metrics.ExpiredOrders += s.Book.ExpireBuyOrders()
	s.paySalaries()
	s.matchOrders()
	s.advanceProductionAll()
	s.generateFirmBuyOrders()
	s.generateSellOrders()
	s.reassignWorkerLinks()
	s.fireStaff()
	s.postJobOffers()
	s.foundFirms()
	s.fillJobOffers()
	s.recomputePricing()
	s.updateSellOrderPrices()
	s.payDividends()
	s.decrementCooldowns()
	s.issuePermits()
	s.generateConsumerDemand()
	s.History.Snapshot(s.Day, s.Book.SellOrders)
	s.Book.MergeSellOrders()
	s.sweepBankruptFirms()

	for _, violation := range s.CheckWorkerInvariant() {
		logrus.Errorf("day %d: worker invariant violated: %s", s.Day, violation)
	}
	window := s.Params.PricingWindow
	if s.Params.DividendWindow > window {
		window = s.Params.DividendWindow
	}
	s.Demand.Prune(s.Day - window - 1)
}

// Run advances the simulation by the given number of days.
func (s *Simulation) Run(days int) {
	logrus.Infof("starting run: %d days, seed %d, %d firms, %d people",
		days, s.RNG.Key(), len(s.World.Firms), len(s.World.People))
	for i := 0; i < days; i++ {
		s.Tick()
	}
	logrus.Infof("run complete: day %d, %d trades", s.Day, s.Metrics.Trades)
}
