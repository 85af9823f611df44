package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kashifm/lunchledger/internal/models"
)

// ListSettlements retrieves all settlements in insertion order.
func (s *SQLiteStore) ListSettlements(ctx context.Context) ([]models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, from_member, to_member, amount FROM settlements ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var st models.Settlement
		var date string
		if err := rows.Scan(&st.ID, &date, &st.From, &st.To, &st.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		parsed, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		st.Date = parsed
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// CreateSettlement persists a new settlement, generating ID and date when
// unset.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.Date.IsZero() {
		settlement.Date = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO settlements (id, date, from_member, to_member, amount) VALUES (?, ?, ?, ?, ?)",
		settlement.ID, formatDate(settlement.Date), settlement.From, settlement.To, settlement.Amount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}
