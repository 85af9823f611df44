package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/kashifm/lunchledger/internal/audit"
	"github.com/kashifm/lunchledger/internal/models"
	"github.com/kashifm/lunchledger/internal/storage"
)

// OrderService manages shared lunch orders.
type OrderService struct {
	store  storage.Store
	events audit.Recorder
	now    func() time.Time
}

func NewOrderService(store storage.Store, events audit.Recorder) *OrderService {
	return &OrderService{store: store, events: events, now: time.Now}
}

// Create validates and persists a new order. Shares arrive as entered
// amounts per member; entries with nothing entered are dropped, the total
// is the sum of the remaining entered amounts, and the netting view forces
// the payer's own share to zero.
func (s *OrderService) Create(ctx context.Context, restaurant, payerID string, entered []models.Share) (*models.Order, error) {
	order, err := s.buildOrder(ctx, restaurant, payerID, entered)
	if err != nil {
		return nil, err
	}
	order.Date = s.now()

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	s.events.Record(audit.NewEvent("order.created", map[string]string{
		"order_id":   order.ID,
		"payer_id":   order.PayerID,
		"restaurant": order.Restaurant,
		"total":      strconv.FormatFloat(order.Total, 'f', -1, 64),
	}))
	slog.Info("order created", "order_id", order.ID, "payer_id", payerID, "total", order.Total)
	return order, nil
}

// Update replaces an order's restaurant, payer and shares. The original
// order date is kept; balances keep their origination time across edits.
func (s *OrderService) Update(ctx context.Context, id, restaurant, payerID string, entered []models.Share) (*models.Order, error) {
	existing, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	order, err := s.buildOrder(ctx, restaurant, payerID, entered)
	if err != nil {
		return nil, err
	}
	order.ID = existing.ID
	order.Date = existing.Date

	if err := s.store.UpdateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("updating order: %w", err)
	}

	s.events.Record(audit.NewEvent("order.updated", map[string]string{
		"order_id": order.ID,
		"total":    strconv.FormatFloat(order.Total, 'f', -1, 64),
	}))
	return order, nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.events.Record(audit.NewEvent("order.deleted", map[string]string{"order_id": id}))
	slog.Info("order deleted", "order_id", id)
	return nil
}

// List returns orders, optionally restricted to an inclusive date range.
// Records written before the entered view was stored carry no raw shares;
// those are reconstructed here so every order goes out with both views.
func (s *OrderService) List(ctx context.Context, from, to *time.Time) ([]models.Order, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	for i := range orders {
		if orders[i].RawShares == nil {
			orders[i].RawShares = orders[i].EffectiveRawShares()
		}
	}
	if from == nil && to == nil {
		return orders, nil
	}

	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if from != nil && o.Date.Before(*from) {
			continue
		}
		if to != nil && o.Date.After(*to) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered, nil
}

// buildOrder validates the inputs and assembles both share views.
func (s *OrderService) buildOrder(ctx context.Context, restaurant, payerID string, entered []models.Share) (*models.Order, error) {
	if payerID == "" {
		return nil, models.ErrNoPayer
	}

	raw := make([]models.Share, 0, len(entered))
	var total float64
	for _, sh := range entered {
		if sh.Amount <= 0 {
			continue
		}
		raw = append(raw, sh)
		total += sh.Amount
	}
	if len(raw) == 0 {
		return nil, models.ErrNoShares
	}

	ids := make([]string, 0, len(raw)+1)
	ids = append(ids, payerID)
	for _, sh := range raw {
		ids = append(ids, sh.MemberID)
	}
	if err := s.ensureMembers(ctx, ids...); err != nil {
		return nil, err
	}

	netting := make([]models.Share, len(raw))
	copy(netting, raw)
	for i := range netting {
		if netting[i].MemberID == payerID {
			netting[i].Amount = 0
		}
	}

	return &models.Order{
		Restaurant: restaurant,
		PayerID:    payerID,
		Total:      total,
		Shares:     netting,
		RawShares:  raw,
	}, nil
}

func (s *OrderService) ensureMembers(ctx context.Context, ids ...string) error {
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
