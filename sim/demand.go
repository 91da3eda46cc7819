package sim

import "sort"

// DemandTracker keeps per-day counts of submitted buy orders and executed
// trades per item type. The lifecycle manager reads windowed sums from it
// when scoring recipes for a new firm.
type DemandTracker struct {
	ordered map[int]map[ItemType]int
	traded  map[int]map[ItemType]int
}

// NewDemandTracker returns an empty tracker.
func NewDemandTracker() *DemandTracker {
	return &DemandTracker{
		ordered: make(map[int]map[ItemType]int),
		traded:  make(map[int]map[ItemType]int),
	}
}

func bump(days map[int]map[ItemType]int, day int, t ItemType) {
	if days[day] == nil {
		days[day] = make(map[ItemType]int)
	}
	days[day][t]++
}

func within(days map[int]map[ItemType]int, day, window int, t ItemType) int {
	count := 0
	for d := day - window; d <= day; d++ {
		count += days[d][t]
	}
	return count
}

// RecordOrder counts one submitted buy order.
func (d *DemandTracker) RecordOrder(day int, t ItemType) {
	bump(d.ordered, day, t)
}

// RecordTrade counts one executed trade.
func (d *DemandTracker) RecordTrade(day int, t ItemType) {
	bump(d.traded, day, t)
}

// OrderedWithin sums submitted orders for t within [day-window, day].
func (d *DemandTracker) OrderedWithin(day, window int, t ItemType) int {
	return within(d.ordered, day, window, t)
}

// TradedWithin sums executed trades for t within [day-window, day].
func (d *DemandTracker) TradedWithin(day, window int, t ItemType) int {
	return within(d.traded, day, window, t)
}

// Prune drops per-day counters older than the given day.
func (d *DemandTracker) Prune(before int) {
	for day := range d.ordered {
		if day < before {
			delete(d.ordered, day)
		}
	}
	for day := range d.traded {
		if day < before {
			delete(d.traded, day)
		}
	}
}

// SubmitBuyOrder is the public submission contract for external demand
// generators: it enters the order into the book and counts it for demand
// tracking. expiration is in ticks; pass NoExpiration for none.
func (s *Simulation) SubmitBuyOrder(buyer AgentID, t ItemType, expiration int) {
	s.Book.SubmitBuy(&BuyOrder{Buyer: buyer, Type: t, Expiration: expiration})
	s.Demand.RecordOrder(s.Day, t)
}

// consumerGoods lists the item types no recipe consumes, in name order.
// These are what households shop for.
func (s *Simulation) consumerGoods() []ItemType {
	used := make(map[ItemType]bool)
	produced := make(map[ItemType]bool)
	for _, r := range s.Templates.Recipes {
		produced[r.Output] = true
		for t := range r.Input {
			used[t] = true
		}
	}
	var goods []ItemType
	for t := range produced {
		if !used[t] {
			goods = append(goods, t)
		}
	}
	sort.Slice(goods, func(i, j int) bool { return goods[i] < goods[j] })
	return goods
}

// generateConsumerDemand is the stand-in for the external household demand
// generator: each person submits a few expiring buy orders for final goods.
// The household utility model itself stays outside the engine; only the
// submission contract matters here.
func (s *Simulation) generateConsumerDemand() {
	goods := s.consumerGoods()
	if len(goods) == 0 {
		return
	}
	rng := s.RNG.ForSubsystem(SubsystemDemand)
	whole := int(s.Params.ConsumerOrdersPerDay)
	frac := s.Params.ConsumerOrdersPerDay - float64(whole)
	for _, pid := range s.World.PersonIDs() {
		count := whole
		if rng.Float64() < frac {
			count++
		}
		for i := 0; i < count; i++ {
			t := goods[rng.Intn(len(goods))]
			s.SubmitBuyOrder(pid, t, s.Params.BuyOrderTTL)
		}
	}
}
