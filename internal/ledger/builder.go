package ledger

import (
	"sort"
	"time"
)

// entry is one unit of owed money in a pair queue.
type entry struct {
	amount float64
	date   time.Time
	seq    int // insertion sequence, tie-break for equal dates
}

// buildQueues folds the filtered orders and adjustments into per-pair debt
// entry queues. Each non-payer share of an order becomes one entry owed to
// the payer; each well-formed adjustment becomes one entry for its pair.
// Adjustments missing either party are skipped — they are the one tolerated
// malformed record, everything else fails loudly upstream.
//
// Queues are sorted by date ascending with insertion sequence as tie-break,
// so settlement allocation is deterministic regardless of the order the
// store happened to return records in. The returned key slice preserves
// first-seen order for stable flattening.
func buildQueues(snap Snapshot, f Filter, now time.Time) (map[pair][]entry, []pair) {
	queues := make(map[pair][]entry)
	var keys []pair
	seq := 0

	add := func(key pair, amount float64, date time.Time) {
		if _, ok := queues[key]; !ok {
			keys = append(keys, key)
		}
		queues[key] = append(queues[key], entry{amount: amount, date: date, seq: seq})
		seq++
	}

	for _, o := range snap.Orders {
		if !InWindow(o.Date, now, f) {
			continue
		}
		for _, s := range o.Shares {
			if s.MemberID == o.PayerID {
				continue
			}
			add(pair{From: s.MemberID, To: o.PayerID}, s.Amount, o.Date)
		}
	}

	for _, a := range snap.Adjustments {
		if !InWindow(a.Date, now, f) {
			continue
		}
		if a.From == "" || a.To == "" {
			continue
		}
		add(pair{From: a.From, To: a.To}, a.Amount, a.Date)
	}

	for key, q := range queues {
		sort.Slice(q, func(i, j int) bool {
			if !q[i].date.Equal(q[j].date) {
				return q[i].date.Before(q[j].date)
			}
			return q[i].seq < q[j].seq
		})
		queues[key] = q
	}

	return queues, keys
}
