// Package storage provides abstractions for persistent record storage.
package storage

import (
	"context"

	"github.com/kashifm/lunchledger/internal/models"
)

// Store defines the record store the ledger reads from and the services
// write to. The ledger itself only ever lists whole collections — every
// computation rebuilds its view from scratch — while the services append,
// update and delete individual records. The abstraction allows swapping
// backends (SQLite, PostgreSQL, ...) without touching the service layer.
//
// List methods return records in insertion order. The ledger does not
// depend on this (it orders entries itself), but the history view does.
type Store interface {
	ListMembers(ctx context.Context) ([]models.Member, error)
	// CreateMember persists a new member, populating ID when unset.
	CreateMember(ctx context.Context, member *models.Member) error
	// DeleteMember removes a member. Eligibility gating happens in the
	// service layer; the store deletes unconditionally.
	DeleteMember(ctx context.Context, id string) error

	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrder(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, id string) error

	ListSettlements(ctx context.Context) ([]models.Settlement, error)
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	ListAdjustments(ctx context.Context) ([]models.Adjustment, error)
	CreateAdjustment(ctx context.Context, adjustment *models.Adjustment) error

	// Close releases any resources held by the store.
	Close() error
}
