package model

import "time"

// Item represents a stock item in the catalog (quantity-based tracking).
// The web client calls the description field "title", so that is its
// wire name.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"title,omitempty"`
	Quantity    int       `json:"quantity"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
