package sim

import "fmt"

// TradeSide marks which leg of a paired transaction a ledger row records.
type TradeSide int

const (
	// Pay is the debiting leg.
	Pay TradeSide = iota
	// Receive is the crediting leg.
	Receive
)

// Opposite returns the mirrored side.
func (s TradeSide) Opposite() TradeSide {
	if s == Pay {
		return Receive
	}
	return Pay
}

func (s TradeSide) String() string {
	if s == Pay {
		return "pay"
	}
	return "receive"
}

// TransactionKind tags the variant of a Transaction.
type TransactionKind int

const (
	// TxnTrade is a one-unit item purchase between buyer and seller.
	TxnTrade TransactionKind = iota
	// TxnSalary is a daily wage payment from employer to worker.
	TxnSalary
	// TxnTransfer is a plain money movement: stake, dividend, liquidation.
	TxnTransfer
)

func (k TransactionKind) String() string {
	switch k {
	case TxnTrade:
		return "trade"
	case TxnSalary:
		return "salary"
	default:
		return "transfer"
	}
}

// Transaction is one ledger row. Every successful ledger operation records
// two mirrored rows, one per party, with opposite Side. Which party fields
// are meaningful depends on Kind.
type Transaction struct {
	Kind TransactionKind
	Side TradeSide

	// Trade parties and subject.
	Buyer    AgentID
	Seller   AgentID
	Item     *Item
	ItemType ItemType

	// Salary parties.
	Employer AgentID
	Worker   AgentID

	// Transfer parties.
	Sender   AgentID
	Receiver AgentID

	Amount Money
	Day    int
}

// NewTrade builds the paying leg of a one-unit trade.
func NewTrade(buyer, seller AgentID, item *Item, price Money, day int) Transaction {
	return Transaction{
		Kind:     TxnTrade,
		Side:     Pay,
		Buyer:    buyer,
		Seller:   seller,
		Item:     item,
		ItemType: item.Type,
		Amount:   price,
		Day:      day,
	}
}

// NewSalary builds the paying leg of a wage payment.
func NewSalary(employer, worker AgentID, salary Money, day int) Transaction {
	return Transaction{
		Kind:     TxnSalary,
		Side:     Pay,
		Employer: employer,
		Worker:   worker,
		Amount:   salary,
		Day:      day,
	}
}

// NewTransfer builds the paying leg of a plain transfer.
func NewTransfer(sender, receiver AgentID, amount Money, day int) Transaction {
	return Transaction{
		Kind:     TxnTransfer,
		Side:     Pay,
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
		Day:      day,
	}
}

// event renders the structured log event for a completed transaction.
func (t Transaction) event() LogEvent {
	switch t.Kind {
	case TxnTrade:
		return LogEvent{Day: t.Day, Kind: EventTrade,
			Text: fmt.Sprintf("Trade executed: agent %d bought %s from agent %d for %s", t.Buyer, t.ItemType, t.Seller, t.Amount)}
	case TxnSalary:
		return LogEvent{Day: t.Day, Kind: EventSalary,
			Text: fmt.Sprintf("Salary paid: firm %d paid %s to worker %d", t.Employer, t.Amount, t.Worker)}
	default:
		return LogEvent{Day: t.Day, Kind: EventTransfer,
			Text: fmt.Sprintf("Transfer: agent %d sent %s to agent %d", t.Sender, t.Amount, t.Receiver)}
	}
}

// Ledger is an agent's balance plus full transaction history. History grows
// unbounded; pruning is left to callers that need it.
type Ledger struct {
	balance Money
	// Transactions in recording order, oldest first. Readers that need
	// newest-first walk from the back (see Summary).
	Transactions []Transaction
}

// NewLedger creates a ledger with an opening balance.
func NewLedger(balance Money) *Ledger {
	return &Ledger{balance: balance}
}

// Balance returns the current balance.
func (l *Ledger) Balance() Money {
	return l.balance
}

func (l *Ledger) add(amount Money) {
	l.balance = l.balance.Add(amount)
}

func (l *Ledger) subtract(amount Money) error {
	if l.balance < amount {
		return &InsufficientFundsError{Shortfall: amount - l.balance}
	}
	l.balance -= amount
	return nil
}

// Transaction atomically applies txn's pay and receive legs between l and
// other. If the paying side cannot cover the amount, no balance on either
// ledger changes and an InsufficientFundsError carrying the shortfall is
// returned. On success both ledgers append mirrored rows (opposite Side)
// and a structured log event is emitted to sink.
func (l *Ledger) Transaction(other *Ledger, txn Transaction, sink EventSink) error {
	if err := l.processPayout(other, txn.Side, txn.Amount); err != nil {
		return err
	}
	l.Transactions = append(l.Transactions, txn)
	mirror := txn
	mirror.Side = txn.Side.Opposite()
	other.Transactions = append(other.Transactions, mirror)
	if sink != nil {
		sink.Emit(txn.event())
	}
	return nil
}

// processPayout moves the money. The debit is attempted first so a failure
// leaves both balances untouched.
func (l *Ledger) processPayout(other *Ledger, side TradeSide, amount Money) error {
	switch side {
	case Pay:
		if err := l.subtract(amount); err != nil {
			return err
		}
		other.add(amount)
	case Receive:
		if err := other.subtract(amount); err != nil {
			return err
		}
		l.add(amount)
	}
	return nil
}

// MoneyChange is a tagged net amount: a gain or a cost over a window.
type MoneyChange struct {
	Gain   bool
	Amount Money
}

func (c MoneyChange) String() string {
	if c.Gain {
		return "+" + c.Amount.String()
	}
	return "-" + c.Amount.String()
}

// TotalChange sums the signed transaction amounts with Day within
// [day-window, day] and returns the net as a tagged gain or cost.
func (l *Ledger) TotalChange(day, window int) MoneyChange {
	var net int64
	from := day - window
	for _, t := range l.Transactions {
		if t.Day < from || t.Day > day {
			continue
		}
		if t.Side == Receive {
			net += int64(t.Amount)
		} else {
			net -= int64(t.Amount)
		}
	}
	if net < 0 {
		return MoneyChange{Gain: false, Amount: Money(-net)}
	}
	return MoneyChange{Gain: true, Amount: Money(net)}
}

// LedgerSummary aggregates a ledger over a reporting window. It is a
// reporting contract only and drives no control flow.
type LedgerSummary struct {
	Costs        map[ItemType]Money
	Profits      map[ItemType]Money
	SalaryCosts  Money
	SalaryIncome Money
	Net          MoneyChange
	// Recent holds the most recent raw transactions within the window,
	// newest first.
	Recent []Transaction
}

// Summary aggregates costs and profits per item type plus a separate salary
// bucket over [day-window, day], computes the net total, and appends the
// most recent lastN raw transactions within the window.
func (l *Ledger) Summary(day, window, lastN int) LedgerSummary {
	s := LedgerSummary{
		Costs:   make(map[ItemType]Money),
		Profits: make(map[ItemType]Money),
		Net:     l.TotalChange(day, window),
	}
	from := day - window
	for _, t := range l.Transactions {
		if t.Day < from || t.Day > day {
			continue
		}
		switch t.Kind {
		case TxnTrade:
			if t.Side == Pay {
				s.Costs[t.ItemType] = s.Costs[t.ItemType].Add(t.Amount)
			} else {
				s.Profits[t.ItemType] = s.Profits[t.ItemType].Add(t.Amount)
			}
		case TxnSalary:
			if t.Side == Pay {
				s.SalaryCosts = s.SalaryCosts.Add(t.Amount)
			} else {
				s.SalaryIncome = s.SalaryIncome.Add(t.Amount)
			}
		}
	}
	for i := len(l.Transactions) - 1; i >= 0 && len(s.Recent) < lastN; i-- {
		t := l.Transactions[i]
		if t.Day < from || t.Day > day {
			continue
		}
		s.Recent = append(s.Recent, t)
	}
	return s
}
