package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Fixed width so that lexical order in SQL matches time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// OpenSQLite opens the journal at path, creating parent directories and
// applying migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: db path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// RecordEvent fills in a missing ID and OccurredAt before inserting.
func (r *SQLiteRepository) RecordEvent(ctx context.Context, in DoseEvent) (DoseEvent, error) {
	if !in.Kind.IsValid() {
		return DoseEvent{}, fmt.Errorf("%w: %q", ErrInvalidEventKind, in.Kind)
	}
	if strings.TrimSpace(in.ReminderID) == "" {
		return DoseEvent{}, errors.New("storage: reminder_id is required")
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.OccurredAt.IsZero() {
		in.OccurredAt = r.now()
	}
	in.OccurredAt = in.OccurredAt.UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_events (id, reminder_id, medicine_name, reminder_time, kind, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.ReminderID, in.MedicineName, in.ReminderTime, string(in.Kind), mustTime(in.OccurredAt),
	)
	if err != nil {
		return DoseEvent{}, err
	}
	return in, nil
}

func (r *SQLiteRepository) GetEvent(ctx context.Context, id string) (DoseEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, reminder_id, medicine_name, reminder_time, kind, occurred_at
		FROM dose_events WHERE id = ?`, id)
	ev, err := scanDoseEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DoseEvent{}, ErrNotFound
		}
		return DoseEvent{}, err
	}
	return ev, nil
}

// ListEvents returns matching events newest first.
func (r *SQLiteRepository) ListEvents(ctx context.Context, filter DoseEventFilter) ([]DoseEvent, error) {
	query := `SELECT id, reminder_id, medicine_name, reminder_time, kind, occurred_at FROM dose_events`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.ReminderID != "" {
		clauses = append(clauses, "reminder_id = ?")
		args = append(args, filter.ReminderID)
	}
	if filter.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.Since != nil {
		clauses = append(clauses, "occurred_at >= ?")
		args = append(args, mustTime(*filter.Since))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY occurred_at DESC, rowid DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DoseEvent, 0)
	for rows.Next() {
		ev, scanErr := scanDoseEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// CountByKind tallies events for one reminder, or for all reminders when
// reminderID is empty.
func (r *SQLiteRepository) CountByKind(ctx context.Context, reminderID string) (map[EventKind]int, error) {
	query := `SELECT kind, COUNT(*) FROM dose_events`
	args := make([]any, 0, 1)
	if reminderID != "" {
		query += ` WHERE reminder_id = ?`
		args = append(args, reminderID)
	}
	query += ` GROUP BY kind`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[EventKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		out[EventKind(kind)] = n
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDoseEvent(s scanner) (DoseEvent, error) {
	var out DoseEvent
	var kind string
	var occurred string
	if err := s.Scan(&out.ID, &out.ReminderID, &out.MedicineName, &out.ReminderTime, &kind, &occurred); err != nil {
		return DoseEvent{}, err
	}
	occurredAt, err := parseRequiredTime(occurred)
	if err != nil {
		return DoseEvent{}, err
	}
	out.Kind = EventKind(kind)
	out.OccurredAt = occurredAt
	return out, nil
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}
