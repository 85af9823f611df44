package ledger

// CanRemove reports whether a member's lifetime position is fully settled
// and the member can safely be deleted.
//
// The check mirrors the direct-sum totals path restricted to one member,
// always over the unfiltered order and settlement streams. Adjustments do
// not participate in this check. Eligible means both lifetime give and
// receive are at or below Epsilon.
func CanRemove(snap Snapshot, memberID string) bool {
	var give, receive float64

	for _, o := range snap.Orders {
		for _, s := range o.Shares {
			if s.MemberID == o.PayerID {
				continue
			}
			if s.MemberID == memberID {
				give += s.Amount
			}
			if o.PayerID == memberID {
				receive += s.Amount
			}
		}
	}

	for _, s := range snap.Settlements {
		if s.From == memberID {
			give -= s.Amount
		}
		if s.To == memberID {
			receive -= s.Amount
		}
	}

	return give <= Epsilon && receive <= Epsilon
}
