// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/poyulin/tally/internal/models"
)

// Store defines the interface for project snapshot storage. The engine
// persists whole-project snapshots: every mutating call writes the full
// project back. This abstraction allows swapping storage backends
// without changing the service layer.
type Store interface {
	// CreateProject persists a new project. The project ID and
	// timestamps are populated by the store if unset. Returns
	// apperrors.ErrDuplicate when the name is already taken
	// (case-insensitively).
	CreateProject(ctx context.Context, p *models.Project) error

	// GetProject retrieves a project snapshot by ID. Returns
	// apperrors.ErrNotFound when it does not exist.
	GetProject(ctx context.Context, projectID string) (*models.Project, error)

	// ListProjects returns all projects, most recently updated first.
	ListProjects(ctx context.Context) ([]*models.Project, error)

	// SaveProject overwrites an existing project snapshot. Returns
	// apperrors.ErrNotFound when it does not exist and
	// apperrors.ErrDuplicate when a rename collides with another
	// project's name.
	SaveProject(ctx context.Context, p *models.Project) error

	// DeleteProject removes a project. Returns apperrors.ErrNotFound
	// when it does not exist.
	DeleteProject(ctx context.Context, projectID string) error

	// Close releases any resources held by the store.
	Close() error
}
