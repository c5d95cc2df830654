package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS units (
			id                   TEXT PRIMARY KEY,
			title                TEXT NOT NULL,
			description          TEXT NOT NULL DEFAULT '',
			date                 DATE NOT NULL,
			start_time           TEXT NOT NULL DEFAULT '',
			duration             INTEGER NOT NULL,
			actual_duration      INTEGER NOT NULL DEFAULT 0,
			original_duration    INTEGER NOT NULL,
			fixed                INTEGER NOT NULL DEFAULT 0,
			priority             TEXT NOT NULL CHECK(priority IN ('urgent', 'normal', 'low')),
			status               TEXT NOT NULL DEFAULT 'scheduled' CHECK(status IN ('scheduled', 'validated', 'postponed', 'in-progress', 'completed')),
			weekend_ok           INTEGER NOT NULL DEFAULT 0,
			recurring            INTEGER NOT NULL DEFAULT 0,
			recurrence_interval  INTEGER NOT NULL DEFAULT 0,
			recurrence_end       DATE,
			parent_recurring_id  TEXT NOT NULL DEFAULT '',
			chain_id             TEXT NOT NULL DEFAULT '',
			step_index           INTEGER NOT NULL DEFAULT 0,
			delay_after_previous INTEGER NOT NULL DEFAULT 0,
			created_at           DATETIME NOT NULL,
			updated_at           DATETIME NOT NULL,
			source_type          TEXT NOT NULL DEFAULT 'manual',
			source_id            TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_units_date ON units(date);
		CREATE INDEX IF NOT EXISTS idx_units_status ON units(status);
		CREATE INDEX IF NOT EXISTS idx_units_source ON units(source_type);
		CREATE INDEX IF NOT EXISTS idx_units_chain ON units(chain_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating units table: %w", err)
	}

	return nil
}
