// Package models defines the data structures shared between the upstream
// price sources and the rest of agritrade.
package models

import "time"

// ClosePrice is the latest close of one instrument over the most recent
// trading period, as reported by an upstream source.
type ClosePrice struct {
	Symbol   string    `json:"symbol"`             // e.g., "ZW=F", "INR=X"
	Price    float64   `json:"price"`              // raw quote, in the instrument's own unit
	Currency string    `json:"currency,omitempty"` // e.g., "USX" for cents, "USD", "INR"
	AsOf     time.Time `json:"as_of"`
	Source   string    `json:"source"`
}
