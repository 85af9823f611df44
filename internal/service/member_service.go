package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kashifm/lunchledger/internal/audit"
	"github.com/kashifm/lunchledger/internal/ledger"
	"github.com/kashifm/lunchledger/internal/models"
	"github.com/kashifm/lunchledger/internal/storage"
)

// MemberService manages the lunch group's roster.
type MemberService struct {
	store  storage.Store
	events audit.Recorder
}

func NewMemberService(store storage.Store, events audit.Recorder) *MemberService {
	return &MemberService{store: store, events: events}
}

// Add creates a member with the given display name.
func (s *MemberService) Add(ctx context.Context, name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrBlankName
	}

	m := &models.Member{Name: name}
	if err := s.store.CreateMember(ctx, m); err != nil {
		return nil, fmt.Errorf("creating member: %w", err)
	}

	s.events.Record(audit.NewEvent("member.added", map[string]string{
		"member_id": m.ID,
		"name":      m.Name,
	}))
	return m, nil
}

// List returns all members.
func (s *MemberService) List(ctx context.Context) ([]models.Member, error) {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

// Remove deletes a member, but only when their lifetime give and receive
// positions are fully settled. Removal with outstanding history would
// orphan debts, so it is refused with ErrMemberHasHistory.
func (s *MemberService) Remove(ctx context.Context, id string) error {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("listing members: %w", err)
	}
	found := false
	for _, m := range members {
		if m.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", models.ErrMemberNotFound, id)
	}

	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("listing orders: %w", err)
	}
	settlements, err := s.store.ListSettlements(ctx)
	if err != nil {
		return fmt.Errorf("listing settlements: %w", err)
	}
	if !ledger.CanRemove(ledger.Snapshot{Orders: orders, Settlements: settlements}, id) {
		return fmt.Errorf("%w: %s", models.ErrMemberHasHistory, id)
	}

	if err := s.store.DeleteMember(ctx, id); err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}

	s.events.Record(audit.NewEvent("member.removed", map[string]string{"member_id": id}))
	slog.Info("member removed", "member_id", id)
	return nil
}
