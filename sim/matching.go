package sim

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/kajmaj87/sb3/sim/trace"
)

// weightedSample draws up to k sell orders without replacement, weighted by
// remaining item count. The weighting keeps large sellers from being starved
// by naive uniform sampling.
func weightedSample(rng *rand.Rand, orders []*SellOrder, k int) []*SellOrder {
	if k > len(orders) {
		k = len(orders)
	}
	pool := make([]*SellOrder, len(orders))
	copy(pool, orders)

	sample := make([]*SellOrder, 0, k)
	for len(sample) < k {
		total := 0
		for _, o := range pool {
			total += len(o.Items)
		}
		if total == 0 {
			break
		}
		draw := rng.Intn(total)
		for i, o := range pool {
			draw -= len(o.Items)
			if draw < 0 {
				sample = append(sample, o)
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
	}
	return sample
}

// pickNearCheapest sorts the sample ascending by price (tie-break by item
// type name for determinism) and picks the element at a uniformly random
// percentile in [0, topFraction]. The draw deliberately lands near, but not
// always on, the cheapest offer: simulated buyer imperfection.
func pickNearCheapest(rng *rand.Rand, sample []*SellOrder, topFraction float64) *SellOrder {
	sort.SliceStable(sample, func(i, j int) bool {
		if sample[i].Price != sample[j].Price {
			return sample[i].Price < sample[j].Price
		}
		return sample[i].Type < sample[j].Type
	})
	p := rng.Float64() * topFraction
	idx := int(math.Round(p * float64(len(sample)-1)))
	return sample[idx]
}

// matchOrders runs one matching pass: buy orders visited in randomized
// order, each matched against a weighted sample of compatible sell orders
// and settled one unit at a time through the ledger. A buyer that cannot pay
// keeps its order for the next tick; nothing is mutated for that order.
func (s *Simulation) matchOrders() {
	rng := s.RNG.ForSubsystem(SubsystemMatching)

	pending := make([]*BuyOrder, len(s.Book.BuyOrders))
	copy(pending, s.Book.BuyOrders)
	rng.Shuffle(len(pending), func(i, j int) {
		pending[i], pending[j] = pending[j], pending[i]
	})

	for _, buy := range pending {
		candidates := s.Book.candidatesFor(buy.Type)
		if len(candidates) == 0 {
			continue
		}
		sampleSize := int(math.Ceil(float64(len(candidates)) * s.Params.SampleFraction))
		sample := weightedSample(rng, candidates, sampleSize)
		if len(sample) == 0 {
			continue
		}
		sell := pickNearCheapest(rng, sample, s.Params.TopFraction)

		if err := s.executeTrade(buy, sell); err != nil {
			var short *InsufficientFundsError
			switch {
			case errors.As(err, &short):
				// Order persists; the buyer retries via normal
				// resubmission next tick.
				logrus.Debugf("day %d: buyer %d short %s for %s", s.Day, buy.Buyer, short.Shortfall, buy.Type)
			case errors.Is(err, ErrWalletNotFound):
				logrus.Debugf("day %d: party gone mid-tick for %s order, skipping", s.Day, buy.Type)
			case errors.Is(err, ErrSellOrderEmpty):
				logrus.Debugf("day %d: sell order for %s drained earlier this tick", s.Day, buy.Type)
			default:
				logrus.Warnf("day %d: trade failed: %v", s.Day, err)
			}
		}
	}
}

// executeTrade settles one unit between the buy and sell order. On success
// the item moves into the buyer's inventory stamped with its trade price,
// the buyer's outstanding-order count drops, the buy order is removed, and
// the sell order is removed if drained.
func (s *Simulation) executeTrade(buy *BuyOrder, sell *SellOrder) error {
	if len(sell.Items) == 0 {
		return ErrSellOrderEmpty
	}
	buyerLedger, err := s.World.LedgerOf(buy.Buyer)
	if err != nil {
		return err
	}
	sellerLedger, err := s.World.LedgerOf(sell.Seller)
	if err != nil {
		return err
	}

	item := sell.Items[len(sell.Items)-1]
	txn := NewTrade(buy.Buyer, sell.Seller, item, sell.Price, s.Day)
	if err := buyerLedger.Transaction(sellerLedger, txn, s.Events); err != nil {
		return err
	}

	sell.Items = sell.Items[:len(sell.Items)-1]
	item.BuyCost = sell.Price

	if firm, ok := s.World.Firms[buy.Buyer]; ok {
		firm.Inventory.Add(item)
		firm.Buying.Fulfilled(buy.Type)
	} else if person, ok := s.World.People[buy.Buyer]; ok {
		person.Inventory.Add(item)
	}

	s.Book.RemoveBuy(buy)
	if len(sell.Items) == 0 {
		s.Book.RemoveSell(sell)
	}
	s.Demand.RecordTrade(s.Day, buy.Type)
	s.Metrics.Trades++
	s.Trace.RecordTrade(trace.TradeRecord{
		Day:      s.Day,
		Buyer:    int(buy.Buyer),
		Seller:   int(sell.Seller),
		ItemType: string(buy.Type),
		Price:    int64(sell.Price),
	})
	return nil
}
