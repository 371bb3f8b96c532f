// Package store exports computed aggregates to SQLite for downstream
// reporting and charting tools.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amacleod/ttstat/internal/model"
	"github.com/amacleod/ttstat/internal/stats"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for aggregate snapshots.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS weekly_stats (
			year INTEGER NOT NULL,
			week INTEGER NOT NULL,
			activity TEXT NOT NULL,
			count INTEGER NOT NULL,
			seconds INTEGER NOT NULL,
			PRIMARY KEY (year, week, activity)
		);`,
		`CREATE TABLE IF NOT EXISTS trend_stats (
			year INTEGER NOT NULL,
			week INTEGER NOT NULL,
			activity TEXT NOT NULL,
			count_pct REAL NOT NULL,
			time_pct REAL NOT NULL,
			PRIMARY KEY (year, week, activity)
		);`,
		`CREATE TABLE IF NOT EXISTS daily_stats (
			day INTEGER NOT NULL PRIMARY KEY,
			context_switches INTEGER NOT NULL,
			day_count INTEGER NOT NULL,
			seconds INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS daily_activity_stats (
			day INTEGER NOT NULL,
			activity TEXT NOT NULL,
			count INTEGER NOT NULL,
			seconds INTEGER NOT NULL,
			PRIMARY KEY (day, activity)
		);`,
		`CREATE TABLE IF NOT EXISTS activity_summary (
			activity TEXT NOT NULL PRIMARY KEY,
			seconds INTEGER NOT NULL,
			percentage REAL NOT NULL,
			weekday_count INTEGER NOT NULL,
			weekend_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS export_meta (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			exported_at TEXT NOT NULL,
			weekday_days INTEGER NOT NULL,
			weekend_days INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ExportSnapshot replaces any previous snapshot with the given one.
func (s *Store) ExportSnapshot(ctx context.Context, snap stats.Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	tables := []string{
		"weekly_stats", "trend_stats", "daily_stats",
		"daily_activity_stats", "activity_summary", "export_meta",
	}
	for _, table := range tables {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for week, activities := range snap.Weekly {
		for activity, t := range activities {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO weekly_stats (year, week, activity, count, seconds) VALUES (?, ?, ?, ?, ?)`,
				week.Year, week.Week, activity, t.Count, t.Seconds); err != nil {
				return err
			}
		}
	}

	for week, activities := range snap.Trend {
		for activity, change := range activities {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO trend_stats (year, week, activity, count_pct, time_pct) VALUES (?, ?, ?, ?, ?)`,
				week.Year, week.Week, activity, change.CountPct, change.TimePct); err != nil {
				return err
			}
		}
	}

	for day, stat := range snap.Daily {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO daily_stats (day, context_switches, day_count, seconds) VALUES (?, ?, ?, ?)`,
			day, stat.ContextSwitches, stat.DayCount, stat.Seconds); err != nil {
			return err
		}
		for activity, t := range stat.Activities {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO daily_activity_stats (day, activity, count, seconds) VALUES (?, ?, ?, ?)`,
				day, activity, t.Count, t.Seconds); err != nil {
				return err
			}
		}
	}

	for activity, summary := range snap.Overall.Activities {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO activity_summary (activity, seconds, percentage, weekday_count, weekend_count) VALUES (?, ?, ?, ?, ?)`,
			activity, summary.Seconds, summary.Percentage, summary.WeekdayCount, summary.WeekendCount); err != nil {
			return err
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO export_meta (id, exported_at, weekday_days, weekend_days) VALUES (1, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		snap.Overall.WeekdayDays,
		snap.Overall.WeekendDays); err != nil {
		return err
	}

	return tx.Commit()
}

// ReadWeekly loads the exported weekly tallies.
func (s *Store) ReadWeekly(ctx context.Context) (model.WeeklyTally, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, week, activity, count, seconds FROM weekly_stats`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	tally := model.WeeklyTally{}
	for rows.Next() {
		var key model.WeekKey
		var activity string
		var t model.Tally
		if err := rows.Scan(&key.Year, &key.Week, &activity, &t.Count, &t.Seconds); err != nil {
			return nil, err
		}
		if tally[key] == nil {
			tally[key] = map[string]model.Tally{}
		}
		tally[key][activity] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tally, nil
}

// Counts returns per-table row counts for export reporting.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{}
	for _, table := range []string{"weekly_stats", "trend_stats", "daily_stats", "daily_activity_stats", "activity_summary"} {
		var n int
		if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
			return nil, err
		}
		counts[table] = n
	}
	return counts, nil
}
