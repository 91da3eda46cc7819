package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBook_ExpireBuyOrders_CountdownAndRemoval(t *testing.T) {
	// GIVEN an order with two ticks to live and an immortal one
	b := NewOrderBook()
	mortal := &BuyOrder{Buyer: 1, Type: "wood", Expiration: 2}
	immortal := &BuyOrder{Buyer: 2, Type: "wood", Expiration: NoExpiration}
	b.SubmitBuy(mortal)
	b.SubmitBuy(immortal)

	// Tick 1: the mortal order survives with one tick left.
	assert.Equal(t, 0, b.ExpireBuyOrders())
	assert.Len(t, b.BuyOrders, 2)
	assert.Equal(t, 1, mortal.Expiration)

	// Tick 2: it expires; the immortal one is untouched.
	assert.Equal(t, 1, b.ExpireBuyOrders())
	require.Len(t, b.BuyOrders, 1)
	assert.Same(t, immortal, b.BuyOrders[0])
	assert.Equal(t, NoExpiration, immortal.Expiration)

	// Tick 3: nothing left to expire.
	assert.Equal(t, 0, b.ExpireBuyOrders())
	assert.Len(t, b.BuyOrders, 1)
}

func TestOrderBook_CancelBuyOrdersOf(t *testing.T) {
	b := NewOrderBook()
	b.SubmitBuy(&BuyOrder{Buyer: 1, Type: "wood", Expiration: NoExpiration})
	b.SubmitBuy(&BuyOrder{Buyer: 2, Type: "wood", Expiration: NoExpiration})
	b.SubmitBuy(&BuyOrder{Buyer: 1, Type: "boards", Expiration: NoExpiration})

	assert.Equal(t, 2, b.CancelBuyOrdersOf(1))
	require.Len(t, b.BuyOrders, 1)
	assert.Equal(t, AgentID(2), b.BuyOrders[0].Buyer)
}

func TestOrderBook_FindOrCreateSell_ReusesPerSellerType(t *testing.T) {
	b := NewOrderBook()

	first := b.FindOrCreateSell(1, "wood", 10, 8)
	same := b.FindOrCreateSell(1, "wood", 99, 99)
	other := b.FindOrCreateSell(1, "boards", 10, 8)

	assert.Same(t, first, same)
	assert.Equal(t, Money(10), same.Price)
	assert.NotSame(t, first, other)
	assert.Len(t, b.SellOrders, 2)
}

func TestOrderBook_MergeSellOrders_FoldsDuplicatesAndDropsEmpties(t *testing.T) {
	// GIVEN duplicate (seller, type) orders plus an empty one
	b := NewOrderBook()
	b.SellOrders = []*SellOrder{
		{Seller: 1, Type: "wood", Items: []*Item{{Type: "wood"}}, Price: 10},
		{Seller: 1, Type: "wood", Items: []*Item{{Type: "wood"}, {Type: "wood"}}, Price: 12},
		{Seller: 2, Type: "wood", Items: nil, Price: 9},
		{Seller: 1, Type: "boards", Items: []*Item{{Type: "boards"}}, Price: 5},
	}

	b.MergeSellOrders()

	// THEN one live order per (seller, type), first-seen price kept
	require.Len(t, b.SellOrders, 2)
	merged := b.SellOrders[0]
	assert.Equal(t, AgentID(1), merged.Seller)
	assert.Equal(t, ItemType("wood"), merged.Type)
	assert.Len(t, merged.Items, 3)
	assert.Equal(t, Money(10), merged.Price)
	assert.Equal(t, ItemType("boards"), b.SellOrders[1].Type)
}

func TestOrderBook_UnsoldItemsOfAndLiveBuyCount(t *testing.T) {
	b := NewOrderBook()
	b.SellOrders = []*SellOrder{
		{Seller: 1, Type: "wood", Items: []*Item{{}, {}}},
		{Seller: 1, Type: "boards", Items: []*Item{{}}},
		{Seller: 2, Type: "wood", Items: []*Item{{}}},
	}
	b.SubmitBuy(&BuyOrder{Buyer: 3, Type: "wood", Expiration: NoExpiration})
	b.SubmitBuy(&BuyOrder{Buyer: 4, Type: "wood", Expiration: NoExpiration})

	assert.Equal(t, 3, b.UnsoldItemsOf(1))
	assert.Equal(t, 1, b.UnsoldItemsOf(2))
	assert.Equal(t, 0, b.UnsoldItemsOf(9))
	assert.Equal(t, 2, b.LiveBuyCount("wood"))
	assert.Equal(t, 0, b.LiveBuyCount("boards"))
}

func TestOrderBook_RemoveSellAndRemoveBuy(t *testing.T) {
	b := NewOrderBook()
	sell := &SellOrder{Seller: 1, Type: "wood"}
	buy := &BuyOrder{Buyer: 2, Type: "wood", Expiration: NoExpiration}
	b.SellOrders = append(b.SellOrders, sell)
	b.SubmitBuy(buy)

	b.RemoveSell(sell)
	b.RemoveBuy(buy)

	assert.Empty(t, b.SellOrders)
	assert.Empty(t, b.BuyOrders)
}
