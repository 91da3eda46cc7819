package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Transaction_MovesMoneyBothWays(t *testing.T) {
	// GIVEN a buyer with 100 and a seller with 50
	buyer := NewLedger(100)
	seller := NewLedger(50)
	item := &Item{Type: "wood"}

	// WHEN the buyer pays 30 for one unit
	err := buyer.Transaction(seller, NewTrade(1, 2, item, 30, 5), nil)
	require.NoError(t, err)

	// THEN the payer lost exactly the amount and the payee gained it
	assert.Equal(t, Money(70), buyer.Balance())
	assert.Equal(t, Money(80), seller.Balance())
}

func TestLedger_Transaction_RecordsMirroredRows(t *testing.T) {
	buyer := NewLedger(100)
	seller := NewLedger(0)
	item := &Item{Type: "wood"}

	err := buyer.Transaction(seller, NewTrade(1, 2, item, 30, 5), nil)
	require.NoError(t, err)

	require.Len(t, buyer.Transactions, 1)
	require.Len(t, seller.Transactions, 1)
	assert.Equal(t, Pay, buyer.Transactions[0].Side)
	assert.Equal(t, Receive, seller.Transactions[0].Side)
	assert.Equal(t, buyer.Transactions[0].Amount, seller.Transactions[0].Amount)
	assert.Equal(t, buyer.Transactions[0].ItemType, seller.Transactions[0].ItemType)
}

func TestLedger_Transaction_InsufficientFunds_IsAtomic(t *testing.T) {
	// GIVEN a payer that cannot cover the price
	buyer := NewLedger(40)
	seller := NewLedger(10)
	item := &Item{Type: "wood"}

	// WHEN a 50Cr trade is attempted
	err := buyer.Transaction(seller, NewTrade(1, 2, item, 50, 1), nil)

	// THEN the error carries the shortfall and nothing changed
	var short *InsufficientFundsError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, Money(10), short.Shortfall)
	assert.Equal(t, Money(40), buyer.Balance())
	assert.Equal(t, Money(10), seller.Balance())
	assert.Empty(t, buyer.Transactions)
	assert.Empty(t, seller.Transactions)
}

func TestLedger_Transaction_ReceiveSideDebitsOther(t *testing.T) {
	// GIVEN a salary recorded from the receiving side
	worker := NewLedger(0)
	employer := NewLedger(100)
	txn := NewSalary(2, 1, 60, 3)
	txn.Side = Receive

	err := worker.Transaction(employer, txn, nil)
	require.NoError(t, err)

	assert.Equal(t, Money(60), worker.Balance())
	assert.Equal(t, Money(40), employer.Balance())
}

func TestLedger_Transaction_EmitsEvent(t *testing.T) {
	buyer := NewLedger(100)
	seller := NewLedger(0)
	sink := NewEventLog()

	err := buyer.Transaction(seller, NewTrade(1, 2, &Item{Type: "wood"}, 10, 7), sink)
	require.NoError(t, err)

	require.Equal(t, 1, sink.Len())
	assert.Equal(t, EventTrade, sink.Entries()[0].Kind)
	assert.Equal(t, 7, sink.Entries()[0].Day)
}

func TestLedger_TotalChange_WindowsAndSigns(t *testing.T) {
	// GIVEN salary income on days 1 and 5 and a cost on day 5
	l := NewLedger(1000)
	other := NewLedger(1000)

	in1 := NewSalary(2, 1, 100, 1)
	in1.Side = Receive
	require.NoError(t, l.Transaction(other, in1, nil))

	in2 := NewSalary(2, 1, 100, 5)
	in2.Side = Receive
	require.NoError(t, l.Transaction(other, in2, nil))

	require.NoError(t, l.Transaction(other, NewTrade(1, 2, &Item{Type: "wood"}, 30, 5), nil))

	// WHEN summing a window that only covers day 5
	change := l.TotalChange(5, 0)

	// THEN only the day-5 rows count: +100 - 30
	assert.True(t, change.Gain)
	assert.Equal(t, Money(70), change.Amount)

	// AND a wide window nets everything
	change = l.TotalChange(5, 10)
	assert.True(t, change.Gain)
	assert.Equal(t, Money(170), change.Amount)
}

func TestLedger_TotalChange_NetCost(t *testing.T) {
	l := NewLedger(1000)
	other := NewLedger(0)
	require.NoError(t, l.Transaction(other, NewTrade(1, 2, &Item{Type: "wood"}, 30, 1), nil))

	change := l.TotalChange(1, 5)
	assert.False(t, change.Gain)
	assert.Equal(t, Money(30), change.Amount)
}

func TestLedger_Summary_BucketsCostsProfitsAndSalaries(t *testing.T) {
	firm := NewLedger(1000)
	other := NewLedger(1000)

	// Buys wood, sells boards, pays one salary.
	require.NoError(t, firm.Transaction(other, NewTrade(1, 2, &Item{Type: "wood"}, 20, 2), nil))
	sale := NewTrade(2, 1, &Item{Type: "boards"}, 50, 3)
	sale.Side = Receive
	require.NoError(t, firm.Transaction(other, sale, nil))
	require.NoError(t, firm.Transaction(other, NewSalary(1, 3, 100, 3), nil))

	s := firm.Summary(3, 30, 2)

	assert.Equal(t, Money(20), s.Costs["wood"])
	assert.Equal(t, Money(50), s.Profits["boards"])
	assert.Equal(t, Money(100), s.SalaryCosts)
	assert.False(t, s.Net.Gain)
	assert.Equal(t, Money(70), s.Net.Amount)

	// Recent holds the latest lastN rows, newest first.
	require.Len(t, s.Recent, 2)
	assert.Equal(t, TxnSalary, s.Recent[0].Kind)
	assert.Equal(t, TxnTrade, s.Recent[1].Kind)
}

func TestLedger_Conservation(t *testing.T) {
	// GIVEN any mix of successful transactions between two ledgers
	a := NewLedger(500)
	b := NewLedger(300)
	total := a.Balance().Add(b.Balance())

	require.NoError(t, a.Transaction(b, NewTrade(1, 2, &Item{Type: "x"}, 120, 1), nil))
	require.NoError(t, b.Transaction(a, NewSalary(2, 1, 40, 2), nil))
	require.NoError(t, a.Transaction(b, NewTransfer(1, 2, 77, 3), nil))

	// THEN total money is unchanged
	assert.Equal(t, total, a.Balance().Add(b.Balance()))
}
