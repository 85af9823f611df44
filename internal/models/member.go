package models

// Member is one person in the lunch group.
//
// Members are created through team management and immutable afterwards.
// Deletion is gated: a member can only be removed once their lifetime
// give/receive position is fully settled (see ledger.CanRemove).
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// Name is the display name of the member.
	Name string `json:"name"`
}
