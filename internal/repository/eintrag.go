package repository

import (
	"context"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
)

// EintragRepository defines storage and retrieval of line items.
type EintragRepository interface {
	// FindByID returns the Eintrag with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*domain.Eintrag, error)

	// FindByProtokoll returns all Eintraege of a Protokoll in creation
	// order.
	FindByProtokoll(ctx context.Context, protokollID string) ([]domain.Eintrag, error)

	// SumMengeByProtokoll returns the sum of Menge over all Eintraege of
	// a Protokoll; zero when there are none.
	SumMengeByProtokoll(ctx context.Context, protokollID string) (float64, error)

	// Save creates or updates the Eintrag.
	Save(ctx context.Context, eintrag *domain.Eintrag) error

	// Delete removes the Eintrag with the given id, or ErrNotFound.
	Delete(ctx context.Context, id string) error

	// DeleteByProtokoll removes every Eintrag of the given Protokoll.
	// Deleting zero rows is not an error.
	DeleteByProtokoll(ctx context.Context, protokollID string) error
}
