package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/jotbot/internal/common"
	"github.com/Veraticus/jotbot/internal/model"
	"github.com/shopspring/decimal"
)

// PurchaseFilter narrows a purchase listing.
type PurchaseFilter struct {
	Since   *time.Time
	Purpose string
	Limit   int
}

// SavePurchase stores p and returns the stored record.
func (s *SQLiteStorage) SavePurchase(ctx context.Context, p *model.Purchase, message string) (*model.PurchaseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validatePurchase(p); err != nil {
		return nil, err
	}

	purpose := p.Purpose
	if purpose == "" {
		purpose = model.DefaultPurpose
	}

	var cost decimal.NullDecimal
	if p.Cost != nil {
		cost = decimal.NewNullDecimal(*p.Cost)
	}

	createdAt := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO purchases (name, cost, purpose, message, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, nullString(p.Name), cost, purpose, message, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase id: %w", err)
	}

	stored := *p
	stored.Purpose = purpose
	return &model.PurchaseRecord{
		ID:        id,
		Purchase:  stored,
		Message:   message,
		CreatedAt: createdAt,
	}, nil
}

// GetPurchase retrieves a purchase by id.
func (s *SQLiteStorage) GetPurchase(ctx context.Context, id int64) (*model.PurchaseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, cost, purpose, message, created_at
		FROM purchases
		WHERE id = ?
	`, id)

	rec, err := scanPurchase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("purchase %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	return rec, nil
}

// GetPurchases lists purchases in insertion order.
func (s *SQLiteStorage) GetPurchases(ctx context.Context, filter PurchaseFilter) ([]model.PurchaseRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, name, cost, purpose, message, created_at FROM purchases WHERE 1=1`
	var args []any
	if filter.Purpose != "" {
		query += ` AND purpose = ?`
		args = append(args, filter.Purpose)
	}
	if filter.Since != nil {
		query += ` AND created_at >= ?`
		args = append(args, filter.Since.UTC())
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var purchases []model.PurchaseRecord
	for rows.Next() {
		rec, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, *rec)
	}

	return purchases, rows.Err()
}

// GetSpendingByPurpose totals purchase costs per purpose. Purchases
// without a cost are not counted.
func (s *SQLiteStorage) GetSpendingByPurpose(ctx context.Context) (map[string]decimal.Decimal, error) {
	purchases, err := s.GetPurchases(ctx, PurchaseFilter{})
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, p := range purchases {
		if p.Cost == nil {
			continue
		}
		totals[p.Purpose] = totals[p.Purpose].Add(*p.Cost)
	}
	return totals, nil
}

// DeletePurchase removes a purchase by id.
func (s *SQLiteStorage) DeletePurchase(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	return deleteByID(ctx, s.db, "purchases", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPurchase(row scanner) (*model.PurchaseRecord, error) {
	var (
		rec  model.PurchaseRecord
		name sql.NullString
		cost decimal.NullDecimal
	)

	if err := row.Scan(&rec.ID, &name, &cost, &rec.Purpose, &rec.Message, &rec.CreatedAt); err != nil {
		return nil, err
	}

	if name.Valid {
		rec.Name = &name.String
	}
	if cost.Valid {
		rec.Cost = &cost.Decimal
	}
	return &rec, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// deleteByID deletes one row from table. table is never user input.
func deleteByID(ctx context.Context, q queryable, table string, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: %w", table, id, common.ErrNotFound)
	}
	return nil
}
