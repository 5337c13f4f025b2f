package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tgienger/worklog/internal/models"
)

// isoDate is the storage layout for entry dates; it sorts lexically in
// calendar order.
const isoDate = "2006-01-02"

const entryColumns = `id, task, date, employee, duration, notes, created_at, updated_at`

// CreateEntry validates and inserts a new entry with a fresh ID
func (db *DB) CreateEntry(ctx context.Context, e models.Entry) (*models.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.ID = uuid.New()

	_, err := db.ExecContext(ctx, `
		INSERT INTO entries (id, task, date, employee, duration, notes) VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID.String(), e.Task, e.Date.Format(isoDate), e.Employee, e.Duration, e.Notes)
	if err != nil {
		return nil, fmt.Errorf("db.CreateEntry: %w", err)
	}

	return db.GetEntry(ctx, e.ID)
}

// GetEntry retrieves an entry by ID
func (db *DB) GetEntry(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	row := db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id.String())
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("db.GetEntry: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetEntry: %w", err)
	}
	return &e, nil
}

// ListEntries returns every entry, newest date first. Entries sharing a date
// keep insertion order.
func (db *DB) ListEntries(ctx context.Context) ([]models.Entry, error) {
	return db.ListEntriesFiltered(ctx, models.EntryFilter{})
}

// ListEntriesFiltered returns the entries matching f with the same ordering as
// ListEntries. Text containment uses instr so it stays case-sensitive.
func (db *DB) ListEntriesFiltered(ctx context.Context, f models.EntryFilter) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries`
	where, args := filterClause(f)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, rowid ASC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db.ListEntriesFiltered: %w", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("db.ListEntriesFiltered: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db.ListEntriesFiltered: %w", err)
	}
	return entries, nil
}

func filterClause(f models.EntryFilter) ([]string, []any) {
	var where []string
	var args []any

	if f.EmployeeContains != "" {
		where = append(where, "instr(employee, ?) > 0")
		args = append(args, f.EmployeeContains)
	}
	if f.Employee != nil {
		where = append(where, "employee = ?")
		args = append(args, *f.Employee)
	}
	if f.Term != "" {
		where = append(where, "(instr(task, ?) > 0 OR instr(notes, ?) > 0)")
		args = append(args, f.Term, f.Term)
	}
	if f.Date != "" {
		where = append(where, "strftime('%d-%m-%Y', date) = ?")
		args = append(args, f.Date)
	}
	if f.From != nil {
		where = append(where, "date >= ?")
		args = append(args, f.From.Format(isoDate))
	}
	if f.To != nil {
		where = append(where, "date <= ?")
		args = append(args, f.To.Format(isoDate))
	}
	if f.Duration != nil {
		where = append(where, "duration = ?")
		args = append(args, *f.Duration)
	}
	return where, args
}

// UpdateEntry overwrites the mutable fields of an existing entry
func (db *DB) UpdateEntry(ctx context.Context, e models.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	result, err := db.ExecContext(ctx, `
		UPDATE entries SET task = ?, date = ?, employee = ?, duration = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, e.Task, e.Date.Format(isoDate), e.Employee, e.Duration, e.Notes, e.ID.String())
	if err != nil {
		return fmt.Errorf("db.UpdateEntry: %w", err)
	}
	return requireAffected("db.UpdateEntry", result)
}

// DeleteEntry deletes an entry
func (db *DB) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	result, err := db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("db.DeleteEntry: %w", err)
	}
	return requireAffected("db.DeleteEntry", result)
}

// EntryCount returns the number of stored entries
func (db *DB) EntryCount(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}

func requireAffected(op string, result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (models.Entry, error) {
	var (
		e       models.Entry
		id, day string
	)
	if err := s.Scan(&id, &e.Task, &day, &e.Employee, &e.Duration, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return models.Entry{}, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return models.Entry{}, fmt.Errorf("entry id %q: %w", id, err)
	}
	e.ID = parsedID

	date, err := time.Parse(isoDate, day)
	if err != nil {
		return models.Entry{}, fmt.Errorf("entry %s date %q: %w", id, day, err)
	}
	e.Date = date
	return e, nil
}
