package ports

import (
	"context"

	"keymirror/internal/domain"
)

// RunReader reads recorded conversion runs
type RunReader interface {
	Get(ctx context.Context, id string) (*domain.Run, error)
	List(ctx context.Context, limit int) ([]domain.Run, error)
}

// RunWriter records and removes conversion runs
type RunWriter interface {
	Add(ctx context.Context, run domain.Run) error
	Delete(ctx context.Context, id string) error
	// Prune keeps the newest keep runs and returns how many were removed
	Prune(ctx context.Context, keep int) (int, error)
}

// RunRepository is the composite interface
type RunRepository interface {
	RunReader
	RunWriter
	Close() error
}
