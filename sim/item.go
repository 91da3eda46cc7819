package sim

import "sort"

// ItemType is an interned good name. Types compare and order by name and are
// used as map keys throughout the engine.
type ItemType string

// Item is one owned, non-fungible unit of a good. Items are tracked
// individually so the per-unit cost basis survives trades: ProductionCost is
// stamped by the producer, BuyCost by the trade that delivered it.
type Item struct {
	Type           ItemType
	ProductionCost Money
	BuyCost        Money
}

// Inventory holds a firm's or person's stock. Items maps owned goods by
// type; ItemsToSell holds produced units that have not been released to the
// market yet.
type Inventory struct {
	Items       map[ItemType][]*Item
	ItemsToSell []*Item
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{Items: make(map[ItemType][]*Item)}
}

// Count returns how many units of the given type are in owned stock.
func (inv *Inventory) Count(t ItemType) int {
	return len(inv.Items[t])
}

// Add places an item into owned stock.
func (inv *Inventory) Add(it *Item) {
	inv.Items[it.Type] = append(inv.Items[it.Type], it)
}

// Take removes up to n items of the given type from owned stock and returns
// them. Items come off the back of the per-type list.
func (inv *Inventory) Take(t ItemType, n int) []*Item {
	stock := inv.Items[t]
	if n > len(stock) {
		n = len(stock)
	}
	taken := stock[len(stock)-n:]
	inv.Items[t] = stock[:len(stock)-n]
	return taken
}

// Types returns the owned item types in name order.
func (inv *Inventory) Types() []ItemType {
	types := make([]ItemType, 0, len(inv.Items))
	for t := range inv.Items {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
