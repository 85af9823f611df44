package models

import "time"

// Share is one member's portion of an order.
type Share struct {
	MemberID string  `json:"memberId"`
	Amount   float64 `json:"amount"`
}

// Order represents one shared lunch order.
//
// Shares is the netting view: every participant with a positive entered
// amount, except that the payer's own amount is forced to zero. RawShares
// keeps the amounts exactly as entered, including the payer's portion, for
// display and editing. Total is always the sum of the raw amounts.
//
// RawShares may be absent on records written before it existed; callers
// that need the entered view should go through EffectiveRawShares.
type Order struct {
	// ID is the unique identifier for the order (UUID format).
	ID string `json:"id"`

	// Date is when the order was placed.
	Date time.Time `json:"date"`

	// Restaurant is the free-form restaurant name.
	Restaurant string `json:"restaurant"`

	// PayerID is the member who paid the whole bill.
	PayerID string `json:"payerId"`

	// Total is the sum of the raw share amounts.
	Total float64 `json:"total"`

	// Shares is the netting view (payer amount forced to 0).
	Shares []Share `json:"shares"`

	// RawShares is the entered view. Nil on legacy records.
	RawShares []Share `json:"rawShares,omitempty"`
}

// EffectiveRawShares returns RawShares when the record carries it. For
// legacy records it reconstructs the entered view from the netting view:
// non-payer shares are unchanged and the payer's implied amount is
// max(0, total - sum(non-payer shares)).
func (o *Order) EffectiveRawShares() []Share {
	if o.RawShares != nil {
		return o.RawShares
	}

	raw := make([]Share, 0, len(o.Shares))
	var others float64
	for _, s := range o.Shares {
		if s.MemberID == o.PayerID {
			continue
		}
		others += s.Amount
		raw = append(raw, s)
	}

	payer := o.Total - others
	if payer < 0 {
		payer = 0
	}
	return append(raw, Share{MemberID: o.PayerID, Amount: payer})
}
