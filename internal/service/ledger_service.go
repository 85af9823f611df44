// Package service contains the operations exposed to the API layer:
// validation, orchestration of store reads/writes, and invocation of the
// pure ledger engine.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/kashifm/lunchledger/internal/audit"
	"github.com/kashifm/lunchledger/internal/ledger"
	"github.com/kashifm/lunchledger/internal/models"
	"github.com/kashifm/lunchledger/internal/storage"
)

// LedgerService implements the ledger-facing operations: balance
// computation, settlements, adjustments and removal eligibility.
type LedgerService struct {
	store  storage.Store
	events audit.Recorder
	now    func() time.Time
}

func NewLedgerService(store storage.Store, events audit.Recorder) *LedgerService {
	return &LedgerService{store: store, events: events, now: time.Now}
}

// snapshot issues the independent reads that make up one ledger view.
func (s *LedgerService) snapshot(ctx context.Context) (ledger.Snapshot, error) {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("listing members: %w", err)
	}
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("listing orders: %w", err)
	}
	settlements, err := s.store.ListSettlements(ctx)
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("listing settlements: %w", err)
	}
	adjustments, err := s.store.ListAdjustments(ctx)
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("listing adjustments: %w", err)
	}
	return ledger.Snapshot{
		Members:     members,
		Orders:      orders,
		Settlements: settlements,
		Adjustments: adjustments,
	}, nil
}

// Balances computes the filtered ledger view. The view is rebuilt from the
// stored records on every call; nothing is cached between requests, so a
// caller re-running the computation after a mutation always observes it.
func (s *LedgerService) Balances(ctx context.Context, f ledger.Filter) (ledger.Result, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return ledger.Result{}, err
	}
	return ledger.Compute(snap, f, s.now()), nil
}

// RecordSettlement validates and appends a settlement. Nothing is written
// when validation fails.
func (s *LedgerService) RecordSettlement(ctx context.Context, from, to string, amount float64) (*models.Settlement, error) {
	if amount <= 0 {
		return nil, models.ErrInvalidAmount
	}
	if from == to {
		return nil, models.ErrSameMember
	}
	if err := s.ensureMembers(ctx, from, to); err != nil {
		return nil, err
	}

	st := &models.Settlement{Date: s.now(), From: from, To: to, Amount: amount}
	if err := s.store.CreateSettlement(ctx, st); err != nil {
		return nil, fmt.Errorf("recording settlement: %w", err)
	}

	s.events.Record(audit.NewEvent("settlement.recorded", map[string]string{
		"settlement_id": st.ID,
		"from":          from,
		"to":            to,
		"amount":        strconv.FormatFloat(amount, 'f', -1, 64),
	}))
	slog.Info("settlement recorded", "from", from, "to", to, "amount", amount)
	return st, nil
}

// RecordAdjustment validates and appends a manual outstanding balance.
func (s *LedgerService) RecordAdjustment(ctx context.Context, from, to string, amount float64, note string) (*models.Adjustment, error) {
	if amount <= 0 {
		return nil, models.ErrInvalidAmount
	}
	if from == to {
		return nil, models.ErrSameMember
	}
	if err := s.ensureMembers(ctx, from, to); err != nil {
		return nil, err
	}

	a := &models.Adjustment{Date: s.now(), From: from, To: to, Amount: amount, Note: note}
	if err := s.store.CreateAdjustment(ctx, a); err != nil {
		return nil, fmt.Errorf("recording adjustment: %w", err)
	}

	s.events.Record(audit.NewEvent("adjustment.recorded", map[string]string{
		"adjustment_id": a.ID,
		"from":          from,
		"to":            to,
		"amount":        strconv.FormatFloat(amount, 'f', -1, 64),
	}))
	slog.Info("adjustment recorded", "from", from, "to", to, "amount", amount)
	return a, nil
}

// ListSettlements returns every recorded settlement.
func (s *LedgerService) ListSettlements(ctx context.Context) ([]models.Settlement, error) {
	settlements, err := s.store.ListSettlements(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing settlements: %w", err)
	}
	return settlements, nil
}

// ListAdjustments returns every recorded adjustment.
func (s *LedgerService) ListAdjustments(ctx context.Context) ([]models.Adjustment, error) {
	adjustments, err := s.store.ListAdjustments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing adjustments: %w", err)
	}
	return adjustments, nil
}

// CanRemoveMember reports whether the member's lifetime position is fully
// settled. Only the order and settlement streams participate; the active
// display filter never applies here.
func (s *LedgerService) CanRemoveMember(ctx context.Context, memberID string) (bool, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return false, fmt.Errorf("listing orders: %w", err)
	}
	settlements, err := s.store.ListSettlements(ctx)
	if err != nil {
		return false, fmt.Errorf("listing settlements: %w", err)
	}
	return ledger.CanRemove(ledger.Snapshot{Orders: orders, Settlements: settlements}, memberID), nil
}

// ensureMembers checks that every id references a current member.
func (s *LedgerService) ensureMembers(ctx context.Context, ids ...string) error {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("listing members: %w", err)
	}
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("%w: %s", models.ErrMemberNotFound, id)
		}
	}
	return nil
}
