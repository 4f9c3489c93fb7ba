package ports

import (
	"context"

	"keymirror/internal/domain"
)

// BindingSource loads persisted binding records
type BindingSource interface {
	// Describe names the source for logs and run history
	Describe() string
	Load(ctx context.Context) ([]domain.Record, error)
}

// BindingSink emits binding records. Save either writes everything or
// nothing.
type BindingSink interface {
	Describe() string
	Save(ctx context.Context, records []domain.Record) error
}
