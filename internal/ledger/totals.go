package ledger

import (
	"math"
	"time"
)

// sumTotals computes per-member give/receive aggregates directly from the
// filtered records, without going through the debt queues.
//
// This is intentionally a second, independent accounting path: a
// settlement subtracts its lump amount here no matter which debt entries
// the allocator applied it to, so the totals and the debt list can
// legitimately disagree when a settlement does not line up with FIFO
// order or targets a pair with no entries. Both outputs mirror what the
// records say; neither is reconciled against the other.
//
// Totals whose magnitude ends up at or below Epsilon are clamped to zero.
func sumTotals(snap Snapshot, f Filter, now time.Time) map[string]Totals {
	totals := make(map[string]Totals, len(snap.Members))
	for _, m := range snap.Members {
		totals[m.ID] = Totals{}
	}

	// Records may reference members deleted since; they still count.
	add := func(id string, give, receive float64) {
		t := totals[id]
		t.Give += give
		t.Receive += receive
		totals[id] = t
	}

	for _, o := range snap.Orders {
		if !InWindow(o.Date, now, f) {
			continue
		}
		for _, s := range o.Shares {
			if s.MemberID == o.PayerID {
				continue
			}
			add(s.MemberID, s.Amount, 0)
			add(o.PayerID, 0, s.Amount)
		}
	}

	for _, a := range snap.Adjustments {
		if !InWindow(a.Date, now, f) {
			continue
		}
		if a.From == "" || a.To == "" {
			continue
		}
		add(a.From, a.Amount, 0)
		add(a.To, 0, a.Amount)
	}

	for _, s := range snap.Settlements {
		if !InWindow(s.Date, now, f) {
			continue
		}
		add(s.From, -s.Amount, 0)
		add(s.To, 0, -s.Amount)
	}

	for id, t := range totals {
		if math.Abs(t.Give) <= Epsilon {
			t.Give = 0
		}
		if math.Abs(t.Receive) <= Epsilon {
			t.Receive = 0
		}
		totals[id] = t
	}

	return totals
}
