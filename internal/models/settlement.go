package models

import "time"

// Settlement is a direct payment between two members, reducing what From
// owes To. Amount is always positive.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// Date is when the payment was recorded.
	Date time.Time `json:"date"`

	// From is the member who paid (debtor settling up).
	From string `json:"from"`

	// To is the member who received the payment.
	To string `json:"to"`

	// Amount is the payment amount.
	Amount float64 `json:"amount"`
}
