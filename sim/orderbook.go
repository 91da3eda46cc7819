package sim

// NoExpiration marks a buy order that never expires.
const NoExpiration = -1

// SellOrder offers a firm's stock of one item type at one price. After
// merging, at most one live order exists per (seller, item type) pair. The
// Items list is never mixed-type.
type SellOrder struct {
	Seller    AgentID
	Type      ItemType
	Items     []*Item
	Price     Money
	BasePrice Money
}

// BuyOrder asks for one unit of an item type at market price. Expiration,
// when not NoExpiration, counts down every tick; the order is removed
// unfulfilled when it reaches zero.
type BuyOrder struct {
	Buyer      AgentID
	Type       ItemType
	Expiration int
}

// OrderBook holds the live buy and sell order pools.
type OrderBook struct {
	SellOrders []*SellOrder
	BuyOrders  []*BuyOrder
}

// NewOrderBook returns an empty book.
func NewOrderBook() *OrderBook {
	return &OrderBook{}
}

// SubmitBuy adds a buy order to the pool.
func (b *OrderBook) SubmitBuy(o *BuyOrder) {
	b.BuyOrders = append(b.BuyOrders, o)
}

// ExpireBuyOrders decrements every finite expiration and removes orders that
// reach zero. Returns how many orders expired.
func (b *OrderBook) ExpireBuyOrders() int {
	kept := b.BuyOrders[:0]
	expired := 0
	for _, o := range b.BuyOrders {
		if o.Expiration != NoExpiration {
			o.Expiration--
			if o.Expiration <= 0 {
				expired++
				continue
			}
		}
		kept = append(kept, o)
	}
	b.BuyOrders = kept
	return expired
}

// RemoveBuy drops one buy order from the pool.
func (b *OrderBook) RemoveBuy(o *BuyOrder) {
	for i, cur := range b.BuyOrders {
		if cur == o {
			b.BuyOrders = append(b.BuyOrders[:i], b.BuyOrders[i+1:]...)
			return
		}
	}
}

// RemoveSell drops one sell order from the pool.
func (b *OrderBook) RemoveSell(o *SellOrder) {
	for i, cur := range b.SellOrders {
		if cur == o {
			b.SellOrders = append(b.SellOrders[:i], b.SellOrders[i+1:]...)
			return
		}
	}
}

// CancelBuyOrdersOf removes every live buy order submitted by the agent.
func (b *OrderBook) CancelBuyOrdersOf(buyer AgentID) int {
	kept := b.BuyOrders[:0]
	cancelled := 0
	for _, o := range b.BuyOrders {
		if o.Buyer == buyer {
			cancelled++
			continue
		}
		kept = append(kept, o)
	}
	b.BuyOrders = kept
	return cancelled
}

// SellOrdersBySeller returns the live sell orders owned by the agent.
func (b *OrderBook) SellOrdersBySeller(seller AgentID) []*SellOrder {
	var out []*SellOrder
	for _, o := range b.SellOrders {
		if o.Seller == seller {
			out = append(out, o)
		}
	}
	return out
}

// candidatesFor returns live sell orders matching the type with items left.
func (b *OrderBook) candidatesFor(t ItemType) []*SellOrder {
	var out []*SellOrder
	for _, o := range b.SellOrders {
		if o.Type == t && len(o.Items) > 0 {
			out = append(out, o)
		}
	}
	return out
}

// LiveBuyCount counts unfulfilled buy orders for the type.
func (b *OrderBook) LiveBuyCount(t ItemType) int {
	count := 0
	for _, o := range b.BuyOrders {
		if o.Type == t {
			count++
		}
	}
	return count
}

// UnsoldItemsOf counts items across the agent's live sell orders.
func (b *OrderBook) UnsoldItemsOf(seller AgentID) int {
	count := 0
	for _, o := range b.SellOrders {
		if o.Seller == seller {
			count += len(o.Items)
		}
	}
	return count
}

// FindOrCreateSell returns the seller's live order for the type, creating
// one at the given prices if none exists.
func (b *OrderBook) FindOrCreateSell(seller AgentID, t ItemType, price, basePrice Money) *SellOrder {
	for _, o := range b.SellOrders {
		if o.Seller == seller && o.Type == t {
			return o
		}
	}
	o := &SellOrder{Seller: seller, Type: t, Price: price, BasePrice: basePrice}
	b.SellOrders = append(b.SellOrders, o)
	return o
}

// MergeSellOrders folds duplicate (seller, type) orders into the first-seen
// one and drops orders left empty, so at most one live order exists per
// seller per item type.
func (b *OrderBook) MergeSellOrders() {
	type key struct {
		seller AgentID
		t      ItemType
	}
	first := make(map[key]*SellOrder)
	kept := b.SellOrders[:0]
	for _, o := range b.SellOrders {
		k := key{o.Seller, o.Type}
		if head, ok := first[k]; ok {
			head.Items = append(head.Items, o.Items...)
			continue
		}
		first[k] = o
		kept = append(kept, o)
	}
	// Drop now-empty orders.
	final := kept[:0]
	for _, o := range kept {
		if len(o.Items) > 0 {
			final = append(final, o)
		}
	}
	b.SellOrders = final
}
