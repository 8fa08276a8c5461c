package repository

import (
	"context"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
)

// PflegerRepository defines storage and retrieval of caregiver accounts.
type PflegerRepository interface {
	// FindByID returns the Pfleger with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*domain.Pfleger, error)

	// FindByName looks a Pfleger up by its unique name, or ErrNotFound.
	FindByName(ctx context.Context, name string) (*domain.Pfleger, error)

	// FindAll returns every Pfleger record.
	FindAll(ctx context.Context) ([]domain.Pfleger, error)

	// Count returns the total number of Pfleger records.
	Count(ctx context.Context) (int64, error)

	// Save creates the Pfleger when its ID is empty and updates it
	// otherwise. Returns ErrDuplicateEntry on a name collision.
	Save(ctx context.Context, pfleger *domain.Pfleger) error

	// Delete removes the Pfleger with the given id, or ErrNotFound.
	Delete(ctx context.Context, id string) error
}
