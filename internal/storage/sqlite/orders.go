package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kashifm/lunchledger/internal/models"
)

const (
	shareViewNet = "net"
	shareViewRaw = "raw"
)

// ListOrders retrieves all orders with their shares, in insertion order.
func (s *SQLiteStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, restaurant, payer_id, total FROM orders ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	for i := range orders {
		if err := s.loadShares(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// GetOrder retrieves a single order by ID.
func (s *SQLiteStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, date, restaurant, payer_id, total FROM orders WHERE id = ?", id,
	)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", models.ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadShares(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// CreateOrder persists a new order and its shares, generating ID and date
// when unset.
func (s *SQLiteStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Date.IsZero() {
		order.Date = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO orders (id, date, restaurant, payer_id, total) VALUES (?, ?, ?, ?, ?)",
		order.ID, formatDate(order.Date), order.Restaurant, order.PayerID, order.Total,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if err := insertShares(ctx, tx, order); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateOrder replaces an order's fields and shares. The stored date is
// kept unless the caller set one.
func (s *SQLiteStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE orders SET date = ?, restaurant = ?, payer_id = ?, total = ? WHERE id = ?",
		formatDate(order.Date), order.Restaurant, order.PayerID, order.Total, order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", models.ErrOrderNotFound, order.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_shares WHERE order_id = ?", order.ID); err != nil {
		return fmt.Errorf("failed to clear order shares: %w", err)
	}
	if err := insertShares(ctx, tx, order); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteOrder removes an order and, via cascade, its shares.
func (s *SQLiteStore) DeleteOrder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", models.ErrOrderNotFound, id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	o := &models.Order{}
	var date string
	if err := row.Scan(&o.ID, &date, &o.Restaurant, &o.PayerID, &o.Total); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	parsed, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	o.Date = parsed
	return o, nil
}

// loadShares fills in both share views. RawShares stays nil for records
// stored without one, so the legacy fallback in models keeps working.
func (s *SQLiteStore) loadShares(ctx context.Context, o *models.Order) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT share_view, member_id, amount FROM order_shares WHERE order_id = ? ORDER BY share_view, position",
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get order shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var view string
		var share models.Share
		if err := rows.Scan(&view, &share.MemberID, &share.Amount); err != nil {
			return fmt.Errorf("failed to scan order share: %w", err)
		}
		switch view {
		case shareViewRaw:
			o.RawShares = append(o.RawShares, share)
		default:
			o.Shares = append(o.Shares, share)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate order shares: %w", err)
	}

	return nil
}

func insertShares(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	for i, share := range order.Shares {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO order_shares (order_id, share_view, position, member_id, amount) VALUES (?, ?, ?, ?, ?)",
			order.ID, shareViewNet, i, share.MemberID, share.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order share: %w", err)
		}
	}
	for i, share := range order.RawShares {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO order_shares (order_id, share_view, position, member_id, amount) VALUES (?, ?, ?, ?, ?)",
			order.ID, shareViewRaw, i, share.MemberID, share.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert raw order share: %w", err)
		}
	}
	return nil
}
