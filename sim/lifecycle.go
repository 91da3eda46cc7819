package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kajmaj87/sb3/sim/trace"
)

// recipeScore rates how promising founding a producer of this recipe's
// output is right now: observed shortage and unfulfilled demand add,
// existing competition and missing supply chains subtract.
func (s *Simulation) recipeScore(r *RecipeTemplate) int {
	score := 0
	window := s.Params.PricingWindow

	demand := s.Demand.OrderedWithin(s.Day, window, r.Output)
	sales := s.Demand.TradedWithin(s.Day, window, r.Output)
	if demand > sales && sales > 0 {
		score++
	}

	if unfulfilled := s.Book.LiveBuyCount(r.Output); unfulfilled > 0 {
		score++
	}

	for _, id := range s.World.FirmIDs() {
		if s.World.Firms[id].Recipe.Output == r.Output {
			score--
		}
	}

	score -= s.missingInputCount(r)
	return score
}

// missingInputCount counts the recipe's required input types, direct and
// transitive through the catalog, that no live firm produces.
func (s *Simulation) missingInputCount(r *RecipeTemplate) int {
	produced := make(map[ItemType]bool)
	for _, id := range s.World.FirmIDs() {
		produced[s.World.Firms[id].Recipe.Output] = true
	}

	required := make(map[ItemType]bool)
	var visit func(rt *RecipeTemplate)
	visit = func(rt *RecipeTemplate) {
		for input := range rt.Input {
			if required[input] {
				continue
			}
			required[input] = true
			for i := range s.Templates.Recipes {
				if s.Templates.Recipes[i].Output == input {
					visit(&s.Templates.Recipes[i])
				}
			}
		}
	}
	visit(r)

	missing := 0
	for input := range required {
		if !produced[input] {
			missing++
		}
	}
	return missing
}

// bestRecipe returns the max-scoring recipe template, ties broken by
// catalog order.
func (s *Simulation) bestRecipe() *RecipeTemplate {
	var best *RecipeTemplate
	bestScore := 0
	for i := range s.Templates.Recipes {
		r := &s.Templates.Recipes[i]
		score := s.recipeScore(r)
		logrus.Debugf("day %d: recipe %q scored %d for founding", s.Day, r.Name, score)
		if best == nil || score > bestScore {
			best = r
			bestScore = score
		}
	}
	return best
}

// pickFounder selects the wealthiest person who can cover the stake, ties
// broken by handle order.
func (s *Simulation) pickFounder() *Person {
	var founder *Person
	for _, pid := range s.World.PersonIDs() {
		p := s.World.People[pid]
		if p.Ledger.Balance() < s.Params.FirmStake {
			continue
		}
		if founder == nil || p.Ledger.Balance() > founder.Ledger.Balance() {
			founder = p
		}
	}
	return founder
}

// foundFirms consumes pending permits: each permit creates one firm for the
// best-scoring recipe, capitalized by a fixed stake debited from the
// founder into the new firm's ledger.
func (s *Simulation) foundFirms() {
	for s.Permits > 0 {
		founder := s.pickFounder()
		if founder == nil {
			return
		}
		recipe := s.bestRecipe()
		if recipe == nil {
			return
		}

		firm := &Firm{
			Recipe:  recipe.Recipe(),
			Pricing: NewPricingStrategy(s.Params.MaxPriceChangePerDay),
			Buying:  NewBuyStrategy(s.Params.TargetProductionCycles),
			Owner:   founder.ID,
			Ledger:  NewLedger(0),
		}
		id := s.World.AddFirm(firm)
		firm.Name = fmt.Sprintf("%s works %d", recipe.Name, id)

		stake := NewTransfer(founder.ID, id, s.Params.FirmStake, s.Day)
		if err := founder.Ledger.Transaction(firm.Ledger, stake, s.Events); err != nil {
			// Founder was re-checked above; treat as a skipped permit.
			logrus.Warnf("day %d: stake transfer failed: %v", s.Day, err)
			s.World.RemoveFirm(id)
			return
		}
		s.Permits--
		s.Metrics.FirmsFounded++
		s.Trace.RecordLifecycle(trace.LifecycleRecord{Day: s.Day, Firm: int(id), Founded: true, Recipe: recipe.Name})
		s.Events.Addf(s.Day, EventFirmFounded, "Firm founded: %s by %s with stake %s",
			firm.Name, founder.Name, s.Params.FirmStake)
	}
}

// liquidate dissolves one firm: its sell orders pass to the owner at base
// price, its buy orders are cancelled, the remaining balance transfers to
// the owner, the workforce is released, and the firm leaves the registry.
func (s *Simulation) liquidate(f *Firm) {
	f.Pricing.ResetToBase()
	for _, order := range s.Book.SellOrdersBySeller(f.ID) {
		order.Seller = f.Owner
		order.Price = order.BasePrice
	}
	s.Book.CancelBuyOrdersOf(f.ID)

	if owner := s.World.People[f.Owner]; owner != nil {
		if balance := f.Ledger.Balance(); balance > 0 {
			txn := NewTransfer(f.ID, f.Owner, balance, s.Day)
			if err := f.Ledger.Transaction(owner.Ledger, txn, s.Events); err != nil {
				logrus.Warnf("day %d: liquidation transfer failed: %v", s.Day, err)
			}
		}
	}

	for _, wid := range f.Workforce {
		if p := s.World.People[wid]; p != nil {
			p.EmployedAt = 0
		}
	}
	f.Workforce = nil

	s.World.RemoveFirm(f.ID)
	s.Metrics.FirmsLiquidated++
	s.Trace.RecordLifecycle(trace.LifecycleRecord{Day: s.Day, Firm: int(f.ID), Founded: false, Recipe: f.Recipe.Name})
	s.Events.Addf(s.Day, EventFirmBankrupt, "Firm bankrupt: %s", f.Name)
}

// sweepBankruptFirms liquidates every firm whose balance fell below the
// configured floor.
func (s *Simulation) sweepBankruptFirms() {
	for _, id := range s.World.FirmIDs() {
		f := s.World.Firms[id]
		if f.Ledger.Balance() < s.Params.LiquidationFloor {
			s.liquidate(f)
		}
	}
}

// payDividends transfers the configured fraction of a firm's rolling net
// gain to its owner, when the firm both gained over the window and holds
// more than the dividend itself.
func (s *Simulation) payDividends() {
	for _, id := range s.World.FirmIDs() {
		f := s.World.Firms[id]
		change := f.Ledger.TotalChange(s.Day, s.Params.DividendWindow)
		if !change.Gain || change.Amount == 0 {
			continue
		}
		dividend := change.Amount.MulF(s.Params.DividendFraction)
		if dividend == 0 || f.Ledger.Balance() <= dividend {
			continue
		}
		owner := s.World.People[f.Owner]
		if owner == nil {
			continue
		}
		txn := NewTransfer(id, f.Owner, dividend, s.Day)
		if err := f.Ledger.Transaction(owner.Ledger, txn, s.Events); err != nil {
			logrus.Debugf("day %d: dividend from %s failed: %v", s.Day, f.Name, err)
		}
	}
}
