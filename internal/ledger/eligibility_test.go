package ledger

import (
	"testing"

	"github.com/kashifm/lunchledger/internal/models"
)

func TestCanRemove(t *testing.T) {
	tests := []struct {
		name     string
		snap     Snapshot
		memberID string
		want     bool
	}{
		{
			name:     "member with no history",
			snap:     Snapshot{Members: members("A", "B")},
			memberID: "A",
			want:     true,
		},
		{
			name: "ower with unsettled debt",
			snap: Snapshot{
				Orders: []models.Order{
					order(day(1, 12), "B", models.Share{MemberID: "A", Amount: 30}),
				},
			},
			memberID: "A",
			want:     false,
		},
		{
			name: "payer still owed money",
			snap: Snapshot{
				Orders: []models.Order{
					order(day(1, 12), "B", models.Share{MemberID: "A", Amount: 30}),
				},
			},
			memberID: "B",
			want:     false,
		},
		{
			name: "fully settled both ways",
			snap: Snapshot{
				Orders: []models.Order{
					order(day(1, 12), "B", models.Share{MemberID: "A", Amount: 30}),
				},
				Settlements: []models.Settlement{
					{Date: day(2, 12), From: "A", To: "B", Amount: 30},
				},
			},
			memberID: "A",
			want:     true,
		},
		{
			name: "lifetime check ignores the active filter",
			snap: Snapshot{
				// Old debt from a previous month still blocks removal.
				Orders: []models.Order{
					order(day(1, 12).AddDate(0, -2, 0), "B", models.Share{MemberID: "A", Amount: 30}),
				},
			},
			memberID: "A",
			want:     false,
		},
		{
			name: "adjustments do not participate",
			snap: Snapshot{
				Adjustments: []models.Adjustment{
					{Date: day(1, 12), From: "A", To: "B", Amount: 50, Note: "carried over"},
				},
			},
			memberID: "A",
			want:     true,
		},
		{
			name: "sub-epsilon residue counts as settled",
			snap: Snapshot{
				Orders: []models.Order{
					order(day(1, 12), "B", models.Share{MemberID: "A", Amount: 30.005}),
				},
				Settlements: []models.Settlement{
					{Date: day(2, 12), From: "A", To: "B", Amount: 30},
				},
			},
			memberID: "A",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRemove(tt.snap, tt.memberID); got != tt.want {
				t.Errorf("CanRemove(%s) = %v, want %v", tt.memberID, got, tt.want)
			}
		})
	}
}
