package ledger

import (
	"sort"
	"time"

	"github.com/kashifm/lunchledger/internal/models"
)

// allocate applies the filtered settlements against the debt queues and
// flattens what survives into the output debt list.
//
// Allocation is FIFO within a pair: a settlement pays down the pair's
// entries front to back, possibly covering the last one only partially.
// A settlement for a pair with no queue leaves the debt list untouched;
// its effect still shows up on the totals path (totals.go). Entries paid
// down to Epsilon or below are dropped.
func allocate(queues map[pair][]entry, keys []pair, settlements []models.Settlement, f Filter, now time.Time) []Debt {
	for _, s := range settlements {
		if !InWindow(s.Date, now, f) {
			continue
		}
		key := pair{From: s.From, To: s.To}
		q, ok := queues[key]
		if !ok {
			continue
		}

		remaining := s.Amount
		for i := range q {
			if remaining <= 0 {
				break
			}
			deduction := q[i].amount
			if remaining < deduction {
				deduction = remaining
			}
			q[i].amount -= deduction
			remaining -= deduction
		}

		kept := q[:0]
		for _, e := range q {
			if e.amount > Epsilon {
				kept = append(kept, e)
			}
		}
		queues[key] = kept
	}

	debts := make([]Debt, 0)
	for _, key := range keys {
		for _, e := range queues[key] {
			if e.amount > Epsilon {
				debts = append(debts, Debt{
					From:   key.From,
					To:     key.To,
					Amount: e.amount,
					Date:   e.date,
				})
			}
		}
	}

	// Newest first for display.
	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].Date.After(debts[j].Date)
	})
	return debts
}
