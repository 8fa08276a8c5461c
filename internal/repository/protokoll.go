package repository

import (
	"context"
	"time"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
)

// ProtokollRepository defines storage and retrieval of log headers.
type ProtokollRepository interface {
	// FindByID returns the Protokoll with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*domain.Protokoll, error)

	// FindVisible returns every public Protokoll plus, when pflegerID is
	// non-empty, every Protokoll owned by that Pfleger.
	FindVisible(ctx context.Context, pflegerID string) ([]domain.Protokoll, error)

	// FindByErsteller returns all Protokolle owned by the given Pfleger.
	FindByErsteller(ctx context.Context, pflegerID string) ([]domain.Protokoll, error)

	// FindByPatientDatum returns the Protokoll with the given (patient,
	// datum) pair, or ErrNotFound. Used to enforce pair uniqueness before
	// the database does.
	FindByPatientDatum(ctx context.Context, patient string, datum time.Time) (*domain.Protokoll, error)

	// FindOpenBefore returns all non-closed Protokolle whose Datum lies
	// strictly before the cutoff. Consumed by the auto-close worker.
	FindOpenBefore(ctx context.Context, cutoff time.Time) ([]domain.Protokoll, error)

	// Save creates or updates the Protokoll. Returns ErrDuplicateEntry
	// when the (patient, datum) unique index is violated.
	Save(ctx context.Context, protokoll *domain.Protokoll) error

	// Delete removes the Protokoll with the given id, or ErrNotFound.
	// Child Eintraege are not touched; the service layer cascades first.
	Delete(ctx context.Context, id string) error
}
