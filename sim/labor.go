package sim

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// JobOffer is a firm's open position. TakenBy stays zero until an unemployed
// agent fills the offer; the salary is fixed from the offer at hire time.
type JobOffer struct {
	Employer AgentID
	Salary   Money
	TakenBy  AgentID
}

// hasOpenOffer reports whether the firm already posted an unfilled offer.
func (s *Simulation) hasOpenOffer(employer AgentID) bool {
	for _, o := range s.Offers {
		if o.Employer == employer && o.TakenBy == 0 {
			return true
		}
	}
	return false
}

// stockedForOneCycle reports whether every recipe input is present in the
// quantity one cycle needs.
func stockedForOneCycle(f *Firm) bool {
	for t, qty := range f.Recipe.Input {
		if f.Inventory.Count(t) < qty {
			return false
		}
	}
	return true
}

// postJobOffers lets each firm post at most one open offer. A firm hires
// when it is understaffed while its price runs hot (twice base), or when it
// has no workers at all but enough input stock for a cycle. Cooldown gates
// both paths.
func (s *Simulation) postJobOffers() {
	for _, id := range s.World.FirmIDs() {
		f := s.World.Firms[id]
		if f.StaffChangeCooldown != 0 || s.hasOpenOffer(id) {
			continue
		}
		hot := len(f.Workforce) < f.Recipe.WorkdaysNeeded &&
			f.Pricing.CurrentPrice > f.Pricing.BasePrice.MulF(2.0)
		idle := len(f.Workforce) == 0 && stockedForOneCycle(f)
		if !hot && !idle {
			continue
		}
		s.Offers = append(s.Offers, &JobOffer{Employer: id, Salary: s.Params.DefaultSalary})
		s.Events.Addf(s.Day, EventNarration, "%s is hiring at %s", f.Name, s.Params.DefaultSalary)
	}
}

// fireWorker releases the most recently hired worker.
func (s *Simulation) fireWorker(f *Firm, reason string) {
	if len(f.Workforce) == 0 {
		return
	}
	victim := f.Workforce[len(f.Workforce)-1]
	f.Workforce = f.Workforce[:len(f.Workforce)-1]
	if p := s.World.People[victim]; p != nil {
		p.EmployedAt = 0
	}
	s.Events.Addf(s.Day, EventFire, "%s fired %s (%s)", f.Name, s.World.NameOf(victim), reason)
}

// fireStaff runs both firing rules once per firm per tick. Rule (a) is the
// cooldown-gated demand rule; rule (b) is the solvency override which
// ignores the cooldown and may stack with (a) in the same tick. The stack
// can empty a firm's workforce unless KeepLastWorker clamps it.
func (s *Simulation) fireStaff() {
	for _, id := range s.World.FirmIDs() {
		f := s.World.Firms[id]

		if f.StaffChangeCooldown == 0 && len(f.Workforce) > 1 {
			priceLow := f.Pricing.CurrentPrice < f.Pricing.BasePrice.MulF(0.8)
			backlog := s.Book.UnsoldItemsOf(id) > f.Recipe.OutputQty*f.Buying.TargetProductionCycles
			if priceLow || backlog {
				s.fireWorker(f, "demand")
				f.StaffChangeCooldown = s.Params.StaffCooldown
			}
		}

		if f.Ledger.Balance() < f.DailySalaryBill(s.World) {
			if s.Params.KeepLastWorker && len(f.Workforce) <= 1 {
				continue
			}
			s.fireWorker(f, "solvency")
		}
	}
}

// fillJobOffers matches unemployed people to open offers, one hire per offer
// per tick. Offers of liquidated firms are dropped; filled offers are
// consumed.
func (s *Simulation) fillJobOffers() {
	kept := s.Offers[:0]
	for _, offer := range s.Offers {
		firm, alive := s.World.Firms[offer.Employer]
		if !alive {
			continue
		}
		if offer.TakenBy != 0 {
			continue
		}
		hired := false
		for _, pid := range s.World.PersonIDs() {
			p := s.World.People[pid]
			if p.Employed() {
				continue
			}
			p.Salary = offer.Salary
			p.EmployedAt = firm.ID
			firm.Workforce = append(firm.Workforce, pid)
			firm.StaffChangeCooldown = s.Params.StaffCooldown
			offer.TakenBy = pid
			s.Events.Addf(s.Day, EventHire, "%s hired %s at %s", firm.Name, p.Name, p.Salary)
			hired = true
			break
		}
		if !hired {
			kept = append(kept, offer)
		}
	}
	s.Offers = kept
}

// paySalaries pays every worker one day's wage. A firm that cannot cover a
// wage skips that payment; the production feasibility check will surface
// the problem as CantPayWorkers.
func (s *Simulation) paySalaries() {
	for _, id := range s.World.FirmIDs() {
		f := s.World.Firms[id]
		for _, wid := range f.Workforce {
			p := s.World.People[wid]
			if p == nil {
				continue
			}
			txn := NewSalary(id, wid, p.Salary, s.Day)
			if err := f.Ledger.Transaction(p.Ledger, txn, s.Events); err != nil {
				var short *InsufficientFundsError
				if errors.As(err, &short) {
					logrus.Debugf("day %d: %s cannot pay %s, short %s", s.Day, f.Name, p.Name, short.Shortfall)
					continue
				}
				logrus.Warnf("day %d: salary payment failed: %v", s.Day, err)
			}
		}
	}
}

// reassignWorkerLinks re-derives every person's employer back-reference
// from the authoritative workforce lists.
func (s *Simulation) reassignWorkerLinks() {
	for _, pid := range s.World.PersonIDs() {
		s.World.People[pid].EmployedAt = 0
	}
	for _, fid := range s.World.FirmIDs() {
		f := s.World.Firms[fid]
		for _, wid := range f.Workforce {
			if p := s.World.People[wid]; p != nil {
				p.EmployedAt = fid
			}
		}
	}
}

// CheckWorkerInvariant verifies the standing invariant: a person's
// EmployedAt is set iff the employer's workforce lists them. Violations are
// returned for logging; an empty slice means the invariant holds.
func (s *Simulation) CheckWorkerInvariant() []string {
	var violations []string
	listed := make(map[AgentID]AgentID)
	for _, fid := range s.World.FirmIDs() {
		for _, wid := range s.World.Firms[fid].Workforce {
			listed[wid] = fid
		}
	}
	for _, pid := range s.World.PersonIDs() {
		p := s.World.People[pid]
		if employer, ok := listed[pid]; ok {
			if p.EmployedAt != employer {
				violations = append(violations,
					p.Name+" is listed by "+s.World.NameOf(employer)+" but believes otherwise")
			}
		} else if p.Employed() {
			violations = append(violations,
				p.Name+" believes to be employed at "+s.World.NameOf(p.EmployedAt)+" but is not listed")
		}
	}
	return violations
}

// decrementCooldowns counts every firm's staffing cooldown down to zero.
func (s *Simulation) decrementCooldowns() {
	for _, id := range s.World.FirmIDs() {
		if f := s.World.Firms[id]; f.StaffChangeCooldown > 0 {
			f.StaffChangeCooldown--
		}
	}
}
