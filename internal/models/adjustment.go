package models

import "time"

// Adjustment is a manually entered outstanding balance. It has the same
// netting effect as an order-derived debt from From to To, but is not tied
// to any order. Amount is always positive.
type Adjustment struct {
	// ID is the unique identifier for the adjustment (UUID format).
	ID string `json:"id"`

	// Date is when the adjustment was entered.
	Date time.Time `json:"date"`

	// From is the member who owes.
	From string `json:"from"`

	// To is the member who is owed.
	To string `json:"to"`

	// Amount is the outstanding amount.
	Amount float64 `json:"amount"`

	// Note is a free-form reason for the adjustment.
	Note string `json:"note"`
}
