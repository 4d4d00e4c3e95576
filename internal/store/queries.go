package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blackwell-systems/wingup/internal/winget"
)

// Inventory operations

// ReplaceInventory discards the stored record set and inserts the given
// one, mirroring the scan lifecycle: a snapshot is replaced wholesale,
// never diffed.
func (s *Store) ReplaceInventory(records []*winget.PackageRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin inventory transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM inventory`); err != nil {
		return wrapQueryErr("failed to clear inventory", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO inventory
		(pkg_id, name, installed_version, available_version, source)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return wrapQueryErr("failed to prepare inventory insert", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.Exec(rec.ID, rec.Name, rec.InstalledVersion, rec.AvailableVersion, rec.Source)
		if err != nil {
			return fmt.Errorf("failed to insert package %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit inventory: %w", err)
	}
	return nil
}

// ListInventory returns the stored record set in name order.
func (s *Store) ListInventory() ([]*winget.PackageRecord, error) {
	rows, err := s.db.Query(`
		SELECT pkg_id, name, installed_version, available_version, source
		FROM inventory
		ORDER BY name
	`)
	if err != nil {
		return nil, wrapQueryErr("failed to list inventory", err)
	}
	defer rows.Close()

	var records []*winget.PackageRecord
	for rows.Next() {
		var rec winget.PackageRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.InstalledVersion, &rec.AvailableVersion, &rec.Source); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory: %w", err)
	}
	return records, nil
}

// Scan operations

// RecordScan inserts one completed-scan row.
func (s *Store) RecordScan(completedAt time.Time, packageCount, updateCount int) error {
	_, err := s.db.Exec(`
		INSERT INTO scans (completed_at, package_count, update_count)
		VALUES (?, ?, ?)
	`, completedAt.Format(time.RFC3339), packageCount, updateCount)
	if err != nil {
		return wrapQueryErr("failed to record scan", err)
	}
	return nil
}

// LastScan returns the most recent scan row, or nil when none exists.
func (s *Store) LastScan() (*Scan, error) {
	var scan Scan
	var completedAt string

	err := s.db.QueryRow(`
		SELECT id, completed_at, package_count, update_count
		FROM scans
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&scan.ID, &completedAt, &scan.PackageCount, &scan.UpdateCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryErr("failed to get last scan", err)
	}

	scan.CompletedAt, err = time.Parse(time.RFC3339, completedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scan timestamp: %w", err)
	}
	return &scan, nil
}

// Update run operations

// BeginUpdateRun inserts a new run row and returns its id.
func (s *Store) BeginUpdateRun(startedAt time.Time, bulk bool, requested int) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO update_runs (started_at, is_bulk, requested)
		VALUES (?, ?, ?)
	`, startedAt.Format(time.RFC3339), bulk, requested)
	if err != nil {
		return 0, wrapQueryErr("failed to begin update run", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get update run id: %w", err)
	}
	return id, nil
}

// FinishUpdateRun records the final success count for a run.
func (s *Store) FinishUpdateRun(runID int64, succeeded int) error {
	_, err := s.db.Exec(`
		UPDATE update_runs SET succeeded = ?, finished = 1 WHERE id = ?
	`, succeeded, runID)
	if err != nil {
		return wrapQueryErr("failed to finish update run", err)
	}
	return nil
}

// RecordUpdateResult inserts one per-item outcome row.
func (s *Store) RecordUpdateResult(runID int64, pkgID string, success bool, errorText string, finishedAt time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO update_results (run_id, pkg_id, success, error_text, finished_at)
		VALUES (?, ?, ?, ?, ?)
	`, runID, pkgID, success, errorText, finishedAt.Format(time.RFC3339))
	if err != nil {
		return wrapQueryErr("failed to record update result", err)
	}
	return nil
}

// ListUpdateRuns returns the most recent runs, newest first.
func (s *Store) ListUpdateRuns(limit int) ([]*UpdateRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, started_at, is_bulk, requested, succeeded, finished
		FROM update_runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, wrapQueryErr("failed to list update runs", err)
	}
	defer rows.Close()

	var runs []*UpdateRun
	for rows.Next() {
		var run UpdateRun
		var startedAt string
		if err := rows.Scan(&run.ID, &startedAt, &run.Bulk, &run.Requested, &run.Succeeded, &run.Finished); err != nil {
			return nil, fmt.Errorf("failed to scan update run row: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating update runs: %w", err)
	}
	return runs, nil
}

// ListUpdateResults returns the per-item outcomes of one run in insertion
// order.
func (s *Store) ListUpdateResults(runID int64) ([]*UpdateResult, error) {
	rows, err := s.db.Query(`
		SELECT run_id, pkg_id, success, error_text, finished_at
		FROM update_results
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, wrapQueryErr("failed to list update results", err)
	}
	defer rows.Close()

	var results []*UpdateResult
	for rows.Next() {
		var res UpdateResult
		var finishedAt string
		if err := rows.Scan(&res.RunID, &res.PackageID, &res.Success, &res.ErrorText, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan update result row: %w", err)
		}
		res.FinishedAt, err = time.Parse(time.RFC3339, finishedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse result timestamp: %w", err)
		}
		results = append(results, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating update results: %w", err)
	}
	return results, nil
}

// Session operations

// RecordSession inserts one session summary row.
func (s *Store) RecordSession(endedAt time.Time, total, updatable, applied int) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (ended_at, total, updatable, applied)
		VALUES (?, ?, ?, ?)
	`, endedAt.Format(time.RFC3339), total, updatable, applied)
	if err != nil {
		return wrapQueryErr("failed to record session", err)
	}
	return nil
}
