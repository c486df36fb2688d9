// Package item defines the core domain entities for catalog items and inventory.
// This package is PURE and must NOT import any infrastructure packages.
package item

// Effect is the stat payload an item carries: applied through the mutation
// engine's ADD semantics when the item is used.
type Effect struct {
	Stat  string `json:"stat"`
	Value int    `json:"value"`
}

// CatalogItem is the admin-managed definition of one purchasable or winnable item.
// Hidden items (Visible == false) never show in the shop but still count as prizes.
type CatalogItem struct {
	ID          string `json:"item_id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Description string `json:"description"`
	Effect      Effect `json:"effect"`
	Visible     bool   `json:"visible"`
}

// InventoryEntry is one physical unit of one item held by one owner.
// Stacked quantity is represented by multiple entries per (owner, item).
type InventoryEntry struct {
	EntryID string `json:"entry_id"`
	OwnerID string `json:"owner_id"`
	ItemID  string `json:"item_id"`
}

// Stack is a grouped inventory view: item plus how many entries the owner holds.
type Stack struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}
