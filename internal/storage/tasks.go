package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/jotbot/internal/common"
	"github.com/Veraticus/jotbot/internal/model"
)

// TaskFilter narrows a task listing.
type TaskFilter struct {
	DueBefore *time.Time
	Limit     int
}

// SaveTask stores t and returns the stored record.
func (s *SQLiteStorage) SaveTask(ctx context.Context, t *model.Task, message string) (*model.TaskRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: task", ErrNilParameter)
	}

	var deadline sql.NullTime
	if t.Deadline != nil {
		deadline = sql.NullTime{Time: dateOnly(*t.Deadline), Valid: true}
	}

	createdAt := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (title, deadline, reminder, message, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, nullString(t.Title), deadline, nullString(t.Reminder), message, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get task id: %w", err)
	}

	return &model.TaskRecord{
		ID:        id,
		Task:      *t,
		Message:   message,
		CreatedAt: createdAt,
	}, nil
}

// GetTask retrieves a task by id.
func (s *SQLiteStorage) GetTask(ctx context.Context, id int64) (*model.TaskRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, deadline, reminder, message, created_at
		FROM tasks
		WHERE id = ?
	`, id)

	rec, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return rec, nil
}

// GetTasks lists tasks by deadline, undated tasks last.
func (s *SQLiteStorage) GetTasks(ctx context.Context, filter TaskFilter) ([]model.TaskRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, title, deadline, reminder, message, created_at FROM tasks WHERE 1=1`
	var args []any
	if filter.DueBefore != nil {
		query += ` AND deadline IS NOT NULL AND deadline < ?`
		args = append(args, dateOnly(*filter.DueBefore))
	}
	query += ` ORDER BY deadline IS NULL, deadline, id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []model.TaskRecord
	for rows.Next() {
		rec, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *rec)
	}

	return tasks, rows.Err()
}

// DeleteTask removes a task by id.
func (s *SQLiteStorage) DeleteTask(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	return deleteByID(ctx, s.db, "tasks", id)
}

func scanTask(row scanner) (*model.TaskRecord, error) {
	var (
		rec      model.TaskRecord
		title    sql.NullString
		deadline sql.NullTime
		reminder sql.NullString
	)

	if err := row.Scan(&rec.ID, &title, &deadline, &reminder, &rec.Message, &rec.CreatedAt); err != nil {
		return nil, err
	}

	if title.Valid {
		rec.Title = &title.String
	}
	if deadline.Valid {
		d := dateOnly(deadline.Time)
		rec.Deadline = &d
	}
	if reminder.Valid {
		rec.Reminder = &reminder.String
	}
	return &rec, nil
}

// dateOnly drops the clock part of t, keeping its calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
