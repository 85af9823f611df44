package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kashifm/lunchledger/internal/models"
)

// ListAdjustments retrieves all adjustments in insertion order.
func (s *SQLiteStore) ListAdjustments(ctx context.Context) ([]models.Adjustment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, from_member, to_member, amount, note FROM adjustments ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []models.Adjustment
	for rows.Next() {
		var a models.Adjustment
		var date string
		if err := rows.Scan(&a.ID, &date, &a.From, &a.To, &a.Amount, &a.Note); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		parsed, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		a.Date = parsed
		adjustments = append(adjustments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate adjustments: %w", err)
	}

	return adjustments, nil
}

// CreateAdjustment persists a new adjustment, generating ID and date when
// unset.
func (s *SQLiteStore) CreateAdjustment(ctx context.Context, adjustment *models.Adjustment) error {
	if adjustment.ID == "" {
		adjustment.ID = uuid.New().String()
	}
	if adjustment.Date.IsZero() {
		adjustment.Date = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO adjustments (id, date, from_member, to_member, amount, note) VALUES (?, ?, ?, ?, ?, ?)",
		adjustment.ID, formatDate(adjustment.Date), adjustment.From, adjustment.To,
		adjustment.Amount, adjustment.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert adjustment: %w", err)
	}

	return nil
}
