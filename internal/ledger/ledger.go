// Package ledger is the netting and settlement allocation engine.
//
// It turns three record streams (orders, adjustments, settlements) into a
// time-filtered list of pairwise outstanding debts and per-member
// give/receive totals. Everything here is a pure function over a Snapshot:
// callers fetch the record collections, build a Snapshot and get a Result
// back. No state is retained between calls, so computing the same snapshot
// twice always yields the same result and concurrent computations never
// interfere. Sequencing overlapping loads (e.g. discarding a stale result
// that finishes after a newer one) is the caller's responsibility.
//
// The engine deliberately runs two independent accounting paths over the
// same filtered input: a per-entry allocation that produces the debt list
// and a direct-sum aggregation that produces the totals. See totals.go.
package ledger

import (
	"fmt"
	"time"

	"github.com/kashifm/lunchledger/internal/models"
)

// Epsilon is the magnitude below which a balance counts as fully settled.
// Any entry or total at or under this threshold is dropped or clamped to
// zero, so floating point noise never shows up as a one-cent debt.
const Epsilon = 0.01

// Snapshot is a point-in-time copy of the record collections one
// computation works from. It is assembled by the caller from independent
// store reads; the engine never touches the store itself.
type Snapshot struct {
	Members     []models.Member
	Orders      []models.Order
	Settlements []models.Settlement
	Adjustments []models.Adjustment
}

// Debt is one outstanding amount owed by From to To, dated by the order or
// adjustment that created it.
type Debt struct {
	From   string    `json:"from"`
	To     string    `json:"to"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// Totals is one member's aggregate position under a filter.
type Totals struct {
	Give    float64 `json:"give"`
	Receive float64 `json:"receive"`
}

// Net is the member's net balance: positive means others owe them.
func (t Totals) Net() float64 { return t.Receive - t.Give }

// Result is the full ledger view for one filter window.
type Result struct {
	Debts  []Debt            `json:"debts"`
	Totals map[string]Totals `json:"totals"`
}

// Compute builds the ledger view for the given filter window, evaluated
// relative to now.
func Compute(snap Snapshot, f Filter, now time.Time) Result {
	queues, keys := buildQueues(snap, f, now)
	return Result{
		Debts:  allocate(queues, keys, snap.Settlements, f, now),
		Totals: sumTotals(snap, f, now),
	}
}

// pair is the ordered debtor→creditor identity grouping debt entries.
// Debts flow strictly from From (ower) to To (receiver); a settlement with
// the same pair reduces that pair's queue.
type pair struct {
	From, To string
}

func (p pair) String() string { return fmt.Sprintf("%s->%s", p.From, p.To) }
