package sim

// AgentID is a stable handle to an economic actor, person or firm. Handles
// are dense, assigned by the World registry, and never reused within a run.
type AgentID int

// Person is a household agent. People work for firms, own firms, and submit
// buy orders through the demand generator.
type Person struct {
	ID     AgentID
	Name   string
	Ledger *Ledger

	Salary Money
	// EmployedAt is the employing firm, 0 if unemployed. Invariant: it is
	// non-zero iff that firm's workforce contains this person.
	EmployedAt AgentID

	Inventory *Inventory
}

// Employed reports whether the person currently has an employer.
func (p *Person) Employed() bool {
	return p.EmployedAt != 0
}

// BuyStrategy tracks a purchasing firm's unfulfilled input demand so it does
// not over-order.
type BuyStrategy struct {
	TargetProductionCycles int
	// OutstandingOrders counts live, unfulfilled buy orders per input
	// type. Never drops below zero.
	OutstandingOrders map[ItemType]int
}

// NewBuyStrategy returns a strategy targeting the given number of stocked
// production cycles.
func NewBuyStrategy(targetCycles int) BuyStrategy {
	return BuyStrategy{
		TargetProductionCycles: targetCycles,
		OutstandingOrders:      make(map[ItemType]int),
	}
}

// Fulfilled records one delivered unit, clamping at zero.
func (b *BuyStrategy) Fulfilled(t ItemType) {
	if b.OutstandingOrders[t] > 0 {
		b.OutstandingOrders[t]--
	}
}

// Firm is an agent converting input items into output items via a recipe.
type Firm struct {
	ID     AgentID
	Name   string
	Ledger *Ledger

	Recipe    ProductionRecipe
	Inventory *Inventory
	// Workforce lists employed people in hire order; firing is LIFO.
	Workforce []AgentID
	// Owner is the household agent the firm pays dividends to and that
	// receives the remainder on liquidation.
	Owner AgentID

	StaffChangeCooldown int
	// productionLog records the day stamp of every completed cycle.
	productionLog []int

	Pricing PricingStrategy
	Buying  BuyStrategy
}

// DailySalaryBill sums one day of salaries across the current workforce.
func (f *Firm) DailySalaryBill(w *World) Money {
	var total Money
	for _, id := range f.Workforce {
		if p := w.People[id]; p != nil {
			total = total.Add(p.Salary)
		}
	}
	return total
}

// RecordProduction appends one completed-cycle entry for the given day.
func (f *Firm) RecordProduction(day int) {
	f.productionLog = append(f.productionLog, day)
}

// ProducedWithin counts completed cycles logged within [day-window, day].
func (f *Firm) ProducedWithin(day, window int) int {
	count := 0
	from := day - window
	for i := len(f.productionLog) - 1; i >= 0; i-- {
		d := f.productionLog[i]
		if d < from {
			break
		}
		if d <= day {
			count++
		}
	}
	return count
}

// SoldWithin counts sell-side trades of the firm's output type recorded on
// its ledger within [day-window, day].
func (f *Firm) SoldWithin(day, window int) int {
	count := 0
	from := day - window
	for _, t := range f.Ledger.Transactions {
		if t.Kind == TxnTrade && t.Side == Receive && t.ItemType == f.Recipe.Output &&
			t.Day >= from && t.Day <= day {
			count++
		}
	}
	return count
}

// World is the authoritative registry of all agents. Aggregates are owned
// here and referenced everywhere else by AgentID handles.
type World struct {
	Firms  map[AgentID]*Firm
	People map[AgentID]*Person

	// firmOrder and peopleOrder preserve deterministic iteration order:
	// insertion order with removals compacted.
	firmOrder   []AgentID
	peopleOrder []AgentID

	nextID AgentID
}

// NewWorld returns an empty registry. Handle 0 is reserved as "no agent".
func NewWorld() *World {
	return &World{
		Firms:  make(map[AgentID]*Firm),
		People: make(map[AgentID]*Person),
		nextID: 1,
	}
}

// AddPerson registers a person and assigns its handle.
func (w *World) AddPerson(p *Person) AgentID {
	p.ID = w.nextID
	w.nextID++
	if p.Ledger == nil {
		p.Ledger = NewLedger(0)
	}
	if p.Inventory == nil {
		p.Inventory = NewInventory()
	}
	w.People[p.ID] = p
	w.peopleOrder = append(w.peopleOrder, p.ID)
	return p.ID
}

// AddFirm registers a firm and assigns its handle.
func (w *World) AddFirm(f *Firm) AgentID {
	f.ID = w.nextID
	w.nextID++
	if f.Ledger == nil {
		f.Ledger = NewLedger(0)
	}
	if f.Inventory == nil {
		f.Inventory = NewInventory()
	}
	w.Firms[f.ID] = f
	w.firmOrder = append(w.firmOrder, f.ID)
	return f.ID
}

// RemoveFirm drops a firm from the registry.
func (w *World) RemoveFirm(id AgentID) {
	delete(w.Firms, id)
	for i, fid := range w.firmOrder {
		if fid == id {
			w.firmOrder = append(w.firmOrder[:i], w.firmOrder[i+1:]...)
			break
		}
	}
}

// FirmIDs returns live firm handles in deterministic order.
func (w *World) FirmIDs() []AgentID {
	out := make([]AgentID, len(w.firmOrder))
	copy(out, w.firmOrder)
	return out
}

// PersonIDs returns person handles in deterministic order.
func (w *World) PersonIDs() []AgentID {
	out := make([]AgentID, len(w.peopleOrder))
	copy(out, w.peopleOrder)
	return out
}

// LedgerOf resolves the ledger of any live agent. Returns ErrWalletNotFound
// for a handle removed earlier in the tick.
func (w *World) LedgerOf(id AgentID) (*Ledger, error) {
	if f, ok := w.Firms[id]; ok {
		return f.Ledger, nil
	}
	if p, ok := w.People[id]; ok {
		return p.Ledger, nil
	}
	return nil, ErrWalletNotFound
}

// NameOf returns a printable agent name for narration.
func (w *World) NameOf(id AgentID) string {
	if f, ok := w.Firms[id]; ok {
		return f.Name
	}
	if p, ok := w.People[id]; ok {
		return p.Name
	}
	return "unknown"
}

// TotalMoney sums every live ledger balance. Outside of explicit transfers
// this quantity is invariant tick over tick.
func (w *World) TotalMoney() Money {
	var total Money
	for _, id := range w.firmOrder {
		total = total.Add(w.Firms[id].Ledger.Balance())
	}
	for _, id := range w.peopleOrder {
		total = total.Add(w.People[id].Ledger.Balance())
	}
	return total
}
