package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testParams returns defaults with external demand generation switched off,
// so tests drive the order book explicitly.
func testParams() *Params {
	p := DefaultParams()
	p.ConsumerOrdersPerDay = 0
	return p
}

// newTestSim builds an empty simulation for tests.
func newTestSim(t *testing.T, params *Params) *Simulation {
	t.Helper()
	s, err := NewSimulation(&Templates{}, params, 1)
	require.NoError(t, err)
	return s
}

// addTestPerson registers a person with the given balance.
func addTestPerson(s *Simulation, balance Money) *Person {
	p := &Person{Ledger: NewLedger(balance)}
	s.World.AddPerson(p)
	p.Name = "person"
	return p
}

// addTestFirm registers a firm with an owner, the given balance, and a
// workforce of the given size, every worker at the given salary.
func addTestFirm(s *Simulation, recipe ProductionRecipe, balance Money, workers int, salary Money) *Firm {
	owner := addTestPerson(s, 0)
	f := &Firm{
		Name:    "test firm",
		Recipe:  recipe,
		Ledger:  NewLedger(balance),
		Pricing: NewPricingStrategy(s.Params.MaxPriceChangePerDay),
		Buying:  NewBuyStrategy(s.Params.TargetProductionCycles),
		Owner:   owner.ID,
	}
	s.World.AddFirm(f)
	for i := 0; i < workers; i++ {
		w := &Person{Ledger: NewLedger(0), Salary: salary, EmployedAt: f.ID}
		s.World.AddPerson(w)
		w.Name = "worker"
		f.Workforce = append(f.Workforce, w.ID)
	}
	return f
}

// stockInventory fills a firm's inventory with n items of the type at the
// given buy cost.
func stockInventory(f *Firm, t ItemType, n int, buyCost Money) {
	for i := 0; i < n; i++ {
		f.Inventory.Add(&Item{Type: t, BuyCost: buyCost})
	}
}

// boardsRecipe is the canonical test recipe: 1 wood -> 10 boards in 1 workday.
func boardsRecipe() ProductionRecipe {
	return ProductionRecipe{
		Name:           "boards",
		Input:          map[ItemType]int{"wood": 1},
		Output:         "boards",
		OutputQty:      10,
		WorkdaysNeeded: 1,
	}
}
