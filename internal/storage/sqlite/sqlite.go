// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/poyulin/tally/internal/apperrors"
	"github.com/poyulin/tally/internal/models"
	"github.com/poyulin/tally/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite. Each project is one
// row holding the full JSON snapshot.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateProject persists a new project snapshot.
func (s *SQLiteStore) CreateProject(ctx context.Context, p *models.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	if p.CreatedDate.IsZero() {
		p.CreatedDate = now
	}
	if p.LastUpdated.IsZero() {
		p.LastUpdated = now
	}

	snapshot, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO projects (id, name, name_key, snapshot, updated_at) VALUES (?, ?, ?, ?, ?)",
		p.ID, p.Name, strings.ToLower(p.Name), string(snapshot), p.LastUpdated.UnixNano(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project name %q: %w", p.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// GetProject retrieves a project snapshot by ID.
func (s *SQLiteStore) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	var snapshot string
	err := s.db.QueryRowContext(ctx,
		"SELECT snapshot FROM projects WHERE id = ?", projectID,
	).Scan(&snapshot)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", projectID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return decodeSnapshot(snapshot)
}

// ListProjects returns all projects, most recently updated first.
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]*models.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT snapshot FROM projects ORDER BY updated_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var snapshot string
		if err := rows.Scan(&snapshot); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p, err := decodeSnapshot(snapshot)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

// SaveProject overwrites an existing project snapshot.
func (s *SQLiteStore) SaveProject(ctx context.Context, p *models.Project) error {
	snapshot, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE projects SET name = ?, name_key = ?, snapshot = ?, updated_at = ? WHERE id = ?",
		p.Name, strings.ToLower(p.Name), string(snapshot), p.LastUpdated.UnixNano(), p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project name %q: %w", p.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project %s: %w", p.ID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteProject removes a project.
func (s *SQLiteStore) DeleteProject(ctx context.Context, projectID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project %s: %w", projectID, apperrors.ErrNotFound)
	}
	return nil
}

// decodeSnapshot unmarshals a stored project. Transaction decoding
// normalizes snapshots written by older versions (string amounts,
// missing participant and confirmation sets).
func decodeSnapshot(snapshot string) (*models.Project, error) {
	var p models.Project
	if err := json.Unmarshal([]byte(snapshot), &p); err != nil {
		return nil, fmt.Errorf("failed to decode project snapshot: %w", err)
	}
	if p.Members == nil {
		p.Members = []models.Member{}
	}
	if p.Transactions == nil {
		p.Transactions = []models.Transaction{}
	}
	if p.Categories == nil {
		p.Categories = models.DefaultCategories()
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
