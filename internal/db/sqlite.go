// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/cyrilhamel/caly/internal/agenda"
)

const unitColumns = `id, title, description, date, start_time, duration, actual_duration,
	       original_duration, fixed, priority, status, weekend_ok, recurring,
	       recurrence_interval, recurrence_end, parent_recurring_id, chain_id,
	       step_index, delay_after_previous, created_at, updated_at, source_type, source_id`

// SQLite implements agenda.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateUnit adds a new unit to the pool.
func (s *SQLite) CreateUnit(ctx context.Context, u *agenda.Unit) error {
	_, err := s.db.ExecContext(ctx, insertQuery, insertArgs(u)...)
	if err != nil {
		return fmt.Errorf("inserting unit: %w", err)
	}
	return nil
}

// CreateUnits adds multiple units in one transaction.
func (s *SQLite) CreateUnits(ctx context.Context, units []*agenda.Unit) error {
	if len(units) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, u := range units {
		if _, err := stmt.ExecContext(ctx, insertArgs(u)...); err != nil {
			return fmt.Errorf("inserting unit %q: %w", u.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetUnit retrieves a unit by ID. Returns nil, nil when absent.
func (s *SQLite) GetUnit(ctx context.Context, id string) (*agenda.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = ?`

	u, err := scanUnit(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying unit: %w", err)
	}
	return u, nil
}

// FindUnitByPrefix retrieves the single unit whose ID starts with prefix.
func (s *SQLite) FindUnitByPrefix(ctx context.Context, prefix string) (*agenda.Unit, error) {
	if prefix == "" {
		return nil, nil
	}
	query := `SELECT ` + unitColumns + ` FROM units WHERE id LIKE ? LIMIT 2`

	rows, err := s.db.QueryContext(ctx, query, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("querying units: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []*agenda.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		matches = append(matches, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating units: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", agenda.ErrAmbiguousUnitID, prefix)
	}
}

// DeleteUnit removes a unit from the pool.
func (s *SQLite) DeleteUnit(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM units WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting unit: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", agenda.ErrUnitNotFound, id)
	}
	return nil
}

// DeleteBySource removes all units fed by the given source.
func (s *SQLite) DeleteBySource(ctx context.Context, source agenda.SourceType) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM units WHERE source_type = ?`, source)
	if err != nil {
		return 0, fmt.Errorf("deleting units by source: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// ListAllUnits returns the whole pool ordered by date then start time.
func (s *SQLite) ListAllUnits(ctx context.Context) ([]*agenda.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units ORDER BY date, start_time`
	return s.queryUnits(ctx, query)
}

// ListUnitsByDateRange returns units anchored within the range (inclusive).
func (s *SQLite) ListUnitsByDateRange(ctx context.Context, start, end time.Time) ([]*agenda.Unit, error) {
	query := `SELECT ` + unitColumns + `
		FROM units
		WHERE date >= ? AND date <= ?
		ORDER BY date, start_time`
	return s.queryUnits(ctx, query, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// ReplaceSchedule swaps the stored pool for the given one atomically.
func (s *SQLite) ReplaceSchedule(ctx context.Context, units []*agenda.Unit) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM units`); err != nil {
		return fmt.Errorf("clearing units: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, u := range units {
		if _, err := stmt.ExecContext(ctx, insertArgs(u)...); err != nil {
			return fmt.Errorf("inserting unit %q: %w", u.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

const insertQuery = `
	INSERT INTO units (
		id, title, description, date, start_time, duration, actual_duration,
		original_duration, fixed, priority, status, weekend_ok, recurring,
		recurrence_interval, recurrence_end, parent_recurring_id, chain_id,
		step_index, delay_after_previous, created_at, updated_at, source_type, source_id
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func insertArgs(u *agenda.Unit) []any {
	var recurrenceEnd any
	if u.RecurrenceEnd != nil {
		recurrenceEnd = u.RecurrenceEnd.Format("2006-01-02")
	}
	return []any{
		u.ID,
		u.Title,
		u.Description,
		u.Date.Format("2006-01-02"),
		u.Start,
		u.Duration,
		u.ActualDuration,
		u.OriginalDuration,
		boolToInt(u.Fixed),
		u.Priority,
		u.Status,
		boolToInt(u.CanBeOnWeekend),
		boolToInt(u.Recurring),
		u.RecurrenceInterval,
		recurrenceEnd,
		u.ParentRecurringID,
		u.ChainID,
		u.StepIndex,
		u.DelayAfterPrevious,
		u.CreatedAt.Format(time.RFC3339),
		u.UpdatedAt.Format(time.RFC3339),
		u.SourceType,
		u.SourceID,
	}
}

func (s *SQLite) queryUnits(ctx context.Context, query string, args ...any) ([]*agenda.Unit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying units: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var units []*agenda.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating units: %w", err)
	}
	return units, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanUnit.
type scanner interface {
	Scan(dest ...any) error
}

func scanUnit(row scanner) (*agenda.Unit, error) {
	var (
		u             agenda.Unit
		date          string
		fixed         int
		weekendOK     int
		recurring     int
		recurrenceEnd sql.NullString
		createdAt     string
		updatedAt     string
	)

	err := row.Scan(
		&u.ID,
		&u.Title,
		&u.Description,
		&date,
		&u.Start,
		&u.Duration,
		&u.ActualDuration,
		&u.OriginalDuration,
		&fixed,
		&u.Priority,
		&u.Status,
		&weekendOK,
		&recurring,
		&u.RecurrenceInterval,
		&recurrenceEnd,
		&u.ParentRecurringID,
		&u.ChainID,
		&u.StepIndex,
		&u.DelayAfterPrevious,
		&createdAt,
		&updatedAt,
		&u.SourceType,
		&u.SourceID,
	)
	if err != nil {
		return nil, err
	}

	u.Fixed = fixed != 0
	u.CanBeOnWeekend = weekendOK != 0
	u.Recurring = recurring != 0

	if u.Date, err = parseDate(date); err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	if recurrenceEnd.Valid && recurrenceEnd.String != "" {
		end, err := parseDate(recurrenceEnd.String)
		if err != nil {
			return nil, fmt.Errorf("parsing recurrence end: %w", err)
		}
		u.RecurrenceEnd = &end
	}
	if u.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	if u.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}

	return &u, nil
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values are parsed in local timezone so they compare cleanly
// with dates derived from time.Now().
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; extract the
	// date part and treat it as local midnight.
	if len(s) >= 10 {
		if t, err := time.ParseInLocation("2006-01-02", s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
