package models

import "errors"

// Validation and lookup failures surfaced by the service layer. Handlers
// map these onto HTTP statuses with errors.Is, so wrap rather than replace
// them when adding context.
var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrSameMember       = errors.New("payer and receiver must be different members")
	ErrBlankName        = errors.New("name can't be blank")
	ErrNoPayer          = errors.New("an order needs a payer")
	ErrNoShares         = errors.New("at least one share amount must be positive")
	ErrMemberNotFound   = errors.New("member not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrMemberHasHistory = errors.New("member still has unsettled history")
)
