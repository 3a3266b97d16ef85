package model

import "time"

// HistoryEntry is an immutable audit record of a quantity-affecting
// action against an item. ItemName is a snapshot taken at write time so
// entries stay readable after the item is deleted.
type HistoryEntry struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	ItemName  string    `json:"itemName"`
	Action    string    `json:"action"`
	Quantity  int       `json:"quantity"`
	Requester string    `json:"requester,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// History actions. Quantity on an entry is always the magnitude of the
// change; direction is carried by the action.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionEdit   = "edit"
)
