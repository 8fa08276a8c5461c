package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/repository"
)

// ProtokollService manages log headers and their visibility. Every returned
// resource is enriched with the owner's display name and the summed Menge
// of its Eintraege.
type ProtokollService struct {
	protokollRepo repository.ProtokollRepository
	eintragRepo   repository.EintragRepository
	pflegerRepo   repository.PflegerRepository
}

func NewProtokollService(protokollRepo repository.ProtokollRepository, eintragRepo repository.EintragRepository, pflegerRepo repository.PflegerRepository) *ProtokollService {
	if protokollRepo == nil || eintragRepo == nil || pflegerRepo == nil {
		panic("repositories cannot be nil for ProtokollService")
	}
	return &ProtokollService{
		protokollRepo: protokollRepo,
		eintragRepo:   eintragRepo,
		pflegerRepo:   pflegerRepo,
	}
}

// CreateProtokollParams carries the validated input for Create.
type CreateProtokollParams struct {
	Ersteller string
	Patient   string
	Datum     time.Time
	Public    bool
	Closed    bool
}

// UpdateProtokollParams carries the validated input for Update. Public and
// Closed are applied only when true (partial-update semantics preserved
// from the original system).
type UpdateProtokollParams struct {
	ID        string
	Ersteller string
	Patient   string
	Datum     time.Time
	Public    bool
	Closed    bool
}

// GetAlle returns every public Protokoll plus, when pflegerID is non-empty,
// every Protokoll owned by that caller.
func (s *ProtokollService) GetAlle(ctx context.Context, pflegerID string) ([]ProtokollResource, error) {
	protokolle, err := s.protokollRepo.FindVisible(ctx, pflegerID)
	if err != nil {
		logrus.WithError(err).Error("Failed to list visible protokolle")
		return nil, ErrInternalServer
	}
	resources := make([]ProtokollResource, 0, len(protokolle))
	for i := range protokolle {
		resource, err := s.toResource(ctx, &protokolle[i])
		if err != nil {
			return nil, err
		}
		resources = append(resources, *resource)
	}
	return resources, nil
}

// Get returns a single enriched Protokoll.
func (s *ProtokollService) Get(ctx context.Context, id string) (*ProtokollResource, error) {
	protokoll, err := s.protokollRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProtokollNotFound
		}
		logrus.WithError(err).WithField("protokoll_id", id).Error("Database error finding protokoll")
		return nil, ErrInternalServer
	}
	return s.toResource(ctx, protokoll)
}

// Create persists a new Protokoll after resolving the owner and checking
// the (patient, datum) pair for uniqueness.
func (s *ProtokollService) Create(ctx context.Context, params CreateProtokollParams) (*ProtokollResource, error) {
	logCtx := logrus.WithFields(logrus.Fields{"ersteller": params.Ersteller, "patient": params.Patient})

	ersteller, err := s.pflegerRepo.FindByID(ctx, params.Ersteller)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Create protokoll failed: ersteller not found")
			return nil, ErrErstellerNotFound
		}
		logCtx.WithError(err).Error("Database error resolving ersteller")
		return nil, ErrInternalServer
	}

	if err := s.checkPatientDatumUnique(ctx, params.Patient, params.Datum, ""); err != nil {
		logCtx.Warn("Create protokoll failed: patient datum pair already exists")
		return nil, err
	}

	protokoll := &domain.Protokoll{
		ErstellerID: ersteller.ID,
		Patient:     params.Patient,
		Datum:       params.Datum,
		Public:      params.Public,
		Closed:      params.Closed,
	}
	if err := s.protokollRepo.Save(ctx, protokoll); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrDuplicatePatientDatum
		}
		logCtx.WithError(err).Error("Database error during protokoll creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("protokoll_id", protokoll.ID).Info("Protokoll created successfully")
	return &ProtokollResource{
		ID:            protokoll.ID,
		Patient:       protokoll.Patient,
		Datum:         domain.FormatDatum(protokoll.Datum),
		Public:        protokoll.Public,
		Closed:        protokoll.Closed,
		Ersteller:     ersteller.ID,
		ErstellerName: ersteller.Name,
		UpdatedAt:     domain.FormatDatum(protokoll.UpdatedAt),
		GesamtMenge:   0,
	}, nil
}

// Update mutates patient and datum; the public and closed flags are set
// only when the incoming value is true, so this operation cannot flip
// either flag back to false.
func (s *ProtokollService) Update(ctx context.Context, params UpdateProtokollParams) (*ProtokollResource, error) {
	logCtx := logrus.WithField("protokoll_id", params.ID)

	protokoll, err := s.protokollRepo.FindByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Update protokoll failed: not found")
			return nil, ErrProtokollNotFound
		}
		logCtx.WithError(err).Error("Database error finding protokoll for update")
		return nil, ErrInternalServer
	}

	if _, err := s.pflegerRepo.FindByID(ctx, params.Ersteller); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Update protokoll failed: ersteller not found")
			return nil, ErrErstellerNotFound
		}
		logCtx.WithError(err).Error("Database error resolving ersteller for update")
		return nil, ErrInternalServer
	}

	if err := s.checkPatientDatumUnique(ctx, params.Patient, params.Datum, protokoll.ID); err != nil {
		logCtx.Warn("Update protokoll failed: patient datum pair already exists")
		return nil, err
	}

	protokoll.Patient = params.Patient
	protokoll.Datum = params.Datum
	if params.Public {
		protokoll.Public = true
	}
	if params.Closed {
		protokoll.Closed = true
	}

	if err := s.protokollRepo.Save(ctx, protokoll); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrDuplicatePatientDatum
		}
		logCtx.WithError(err).Error("Database error during protokoll update")
		return nil, ErrInternalServer
	}

	logCtx.Info("Protokoll updated successfully")
	return s.toResource(ctx, protokoll)
}

// Delete removes a Protokoll, its Eintraege first. The two deletes are not
// wrapped in a transaction; a crash in between leaves the Protokoll empty
// but present.
func (s *ProtokollService) Delete(ctx context.Context, id string) error {
	logCtx := logrus.WithField("protokoll_id", id)

	if _, err := s.protokollRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Delete protokoll failed: not found")
			return ErrProtokollNotFound
		}
		logCtx.WithError(err).Error("Database error finding protokoll for delete")
		return ErrInternalServer
	}

	if err := s.eintragRepo.DeleteByProtokoll(ctx, id); err != nil {
		logCtx.WithError(err).Error("Failed to cascade-delete eintraege of protokoll")
		return ErrInternalServer
	}
	if err := s.protokollRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProtokollNotFound
		}
		logCtx.WithError(err).Error("Database error deleting protokoll")
		return ErrInternalServer
	}

	logCtx.Info("Protokoll deleted successfully")
	return nil
}

// DeleteAllByErsteller cascades deletion over every Protokoll owned by the
// given Pfleger. Called from the Pfleger delete path.
func (s *ProtokollService) DeleteAllByErsteller(ctx context.Context, pflegerID string) error {
	protokolle, err := s.protokollRepo.FindByErsteller(ctx, pflegerID)
	if err != nil {
		logrus.WithError(err).WithField("pfleger_id", pflegerID).Error("Failed to list protokolle for cascade delete")
		return ErrInternalServer
	}
	for i := range protokolle {
		if err := s.Delete(ctx, protokolle[i].ID); err != nil {
			return err
		}
	}
	return nil
}

// CloseOlderThan marks every open Protokoll with a Datum before the cutoff
// as closed and returns how many were closed. Used by the auto-close
// worker task.
func (s *ProtokollService) CloseOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	protokolle, err := s.protokollRepo.FindOpenBefore(ctx, cutoff)
	if err != nil {
		logrus.WithError(err).Error("Failed to list open protokolle for auto-close")
		return 0, ErrInternalServer
	}
	closed := 0
	for i := range protokolle {
		protokolle[i].Closed = true
		if err := s.protokollRepo.Save(ctx, &protokolle[i]); err != nil {
			logrus.WithError(err).WithField("protokoll_id", protokolle[i].ID).Error("Failed to auto-close protokoll")
			return closed, ErrInternalServer
		}
		closed++
	}
	return closed, nil
}

// checkPatientDatumUnique enforces the (patient, datum) invariant ahead of
// the database. excludeID skips the record being updated itself.
func (s *ProtokollService) checkPatientDatumUnique(ctx context.Context, patient string, datum time.Time, excludeID string) error {
	existing, err := s.protokollRepo.FindByPatientDatum(ctx, patient, datum)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		logrus.WithError(err).Error("Database error checking patient datum uniqueness")
		return ErrInternalServer
	}
	if existing != nil && existing.ID != excludeID {
		return ErrDuplicatePatientDatum
	}
	return nil
}

// toResource enriches a Protokoll with its owner's display name and the
// summed Menge of its Eintraege.
func (s *ProtokollService) toResource(ctx context.Context, protokoll *domain.Protokoll) (*ProtokollResource, error) {
	ersteller, err := s.pflegerRepo.FindByID(ctx, protokoll.ErstellerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logrus.WithField("protokoll_id", protokoll.ID).Error("Ersteller of protokoll not found")
			return nil, ErrErstellerNotFound
		}
		logrus.WithError(err).Error("Database error resolving protokoll ersteller")
		return nil, ErrInternalServer
	}
	gesamtMenge, err := s.eintragRepo.SumMengeByProtokoll(ctx, protokoll.ID)
	if err != nil {
		logrus.WithError(err).WithField("protokoll_id", protokoll.ID).Error("Database error summing menge")
		return nil, ErrInternalServer
	}
	return &ProtokollResource{
		ID:            protokoll.ID,
		Patient:       protokoll.Patient,
		Datum:         domain.FormatDatum(protokoll.Datum),
		Public:        protokoll.Public,
		Closed:        protokoll.Closed,
		Ersteller:     ersteller.ID,
		ErstellerName: ersteller.Name,
		UpdatedAt:     domain.FormatDatum(protokoll.UpdatedAt),
		GesamtMenge:   gesamtMenge,
	}, nil
}
