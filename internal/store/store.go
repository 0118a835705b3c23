package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB records the branches this executor has provisioned, so delete and
// reset can default to a known branch without re-searching the API.
type DB struct {
	*sql.DB
}

type BranchRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ProjectID string    `json:"project_id"`
	Host      string    `json:"host"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultPath returns the state file location, honoring XDG conventions.
func DefaultPath() (string, error) {
	if path := os.Getenv("NEON_BRANCH_STATE"); path != "" {
		return path, nil
	}

	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(base, "neon-branch", "branches.sqlite"), nil
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	dbWrapper := &DB{DB: db}

	if err := dbWrapper.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return dbWrapper, nil
}

func (db *DB) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS branches (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		project_id TEXT NOT NULL,
		host TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("creating branches table: %w", err)
	}

	return nil
}

// RecordBranch upserts a provisioned branch.
func (db *DB) RecordBranch(rec BranchRecord) error {
	_, err := db.Exec(
		`INSERT INTO branches (id, name, project_id, host, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, project_id = excluded.project_id, host = excluded.host`,
		rec.ID, rec.Name, rec.ProjectID, rec.Host, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording branch: %w", err)
	}
	return nil
}

// ForgetBranch drops a branch record after deletion.
func (db *DB) ForgetBranch(id string) error {
	_, err := db.Exec("DELETE FROM branches WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("forgetting branch: %w", err)
	}
	return nil
}

// ListBranches returns recorded branches for a project, newest first.
func (db *DB) ListBranches(projectID string) ([]BranchRecord, error) {
	rows, err := db.Query(
		"SELECT id, name, project_id, host, created_at FROM branches WHERE project_id = ? ORDER BY created_at DESC",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	defer rows.Close()

	var records []BranchRecord
	for rows.Next() {
		var rec BranchRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.ProjectID, &rec.Host, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning branch record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
