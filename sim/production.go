package sim

import "sort"

// ProductionRecipe describes one production cycle: input quantities, output
// quantity and the time cost in workdays. WorkdaysLeft counts down as the
// workforce makes progress; zero means "ready to start a new cycle".
type ProductionRecipe struct {
	Name           string
	Input          map[ItemType]int
	Output         ItemType
	OutputQty      int
	WorkdaysNeeded int
	WorkdaysLeft   int
}

// InputTypes returns the recipe's input types in name order.
func (r *ProductionRecipe) InputTypes() []ItemType {
	types := make([]ItemType, 0, len(r.Input))
	for t := range r.Input {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// checkFeasibility verifies the firm can work on its cycle this tick: every
// input type stocked in required quantity, a non-empty workforce, and a
// balance covering one day of salaries.
func checkFeasibility(f *Firm, w *World) error {
	for _, t := range f.Recipe.InputTypes() {
		if f.Inventory.Count(t) < f.Recipe.Input[t] {
			return &NoMaterialError{Material: t}
		}
	}
	if len(f.Workforce) == 0 {
		return ErrNotEnoughWorkers
	}
	if f.Ledger.Balance() < f.DailySalaryBill(w) {
		return ErrCantPayWorkers
	}
	return nil
}

// advanceProduction runs one tick of the firm's production state machine.
//
// Workforce size is the per-tick progress rate: a running cycle counts down
// WorkdaysLeft by len(Workforce). When the countdown would reach the
// workforce size or the machine is idle, a full cycle executes: inputs are
// consumed, output items stamped with their unit cost land in ItemsToSell,
// and the countdown resets.
//
// Returned errors are non-fatal production signals; the caller logs them and
// the firm produces nothing this tick.
func advanceProduction(f *Firm, w *World, day int) error {
	if err := checkFeasibility(f, w); err != nil {
		return err
	}

	if f.Recipe.WorkdaysLeft > len(f.Workforce) {
		f.Recipe.WorkdaysLeft -= len(f.Workforce)
		return nil
	}

	var buyCosts Money
	for _, t := range f.Recipe.InputTypes() {
		for _, item := range f.Inventory.Take(t, f.Recipe.Input[t]) {
			buyCosts = buyCosts.Add(item.BuyCost)
		}
	}

	salaryCost := f.DailySalaryBill(w)
	unitCost := buyCosts.Div(f.Recipe.OutputQty).
		Add(salaryCost.MulF(float64(f.Recipe.WorkdaysNeeded)).Div(f.Recipe.OutputQty))

	for i := 0; i < f.Recipe.OutputQty; i++ {
		f.Inventory.ItemsToSell = append(f.Inventory.ItemsToSell, &Item{
			Type:           f.Recipe.Output,
			ProductionCost: unitCost,
			BuyCost:        0,
		})
	}
	f.RecordProduction(day)
	f.Recipe.WorkdaysLeft = f.Recipe.WorkdaysNeeded
	return nil
}
