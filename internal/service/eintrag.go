package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/repository"
)

// EintragService manages line items. Ersteller and parent Protokoll are
// fixed at creation; no Eintrag can be written while its parent Protokoll
// is closed.
type EintragService struct {
	eintragRepo   repository.EintragRepository
	protokollRepo repository.ProtokollRepository
	pflegerRepo   repository.PflegerRepository
}

func NewEintragService(eintragRepo repository.EintragRepository, protokollRepo repository.ProtokollRepository, pflegerRepo repository.PflegerRepository) *EintragService {
	if eintragRepo == nil || protokollRepo == nil || pflegerRepo == nil {
		panic("repositories cannot be nil for EintragService")
	}
	return &EintragService{
		eintragRepo:   eintragRepo,
		protokollRepo: protokollRepo,
		pflegerRepo:   pflegerRepo,
	}
}

// CreateEintragParams carries the validated input for Create.
type CreateEintragParams struct {
	Ersteller string
	Protokoll string
	Getraenk  string
	Menge     float64
	Kommentar string
}

// UpdateEintragParams carries the validated input for Update. Only
// Getraenk, Menge and Kommentar are mutable; owner and parent changes in
// the request are silently ignored.
type UpdateEintragParams struct {
	ID        string
	Getraenk  string
	Menge     float64
	Kommentar string
}

// GetAlleEintraege returns all Eintraege of a Protokoll in creation order.
func (s *EintragService) GetAlleEintraege(ctx context.Context, protokollID string) ([]EintragResource, error) {
	if _, err := s.protokollRepo.FindByID(ctx, protokollID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProtokollNotFound
		}
		logrus.WithError(err).WithField("protokoll_id", protokollID).Error("Database error finding protokoll")
		return nil, ErrInternalServer
	}

	eintraege, err := s.eintragRepo.FindByProtokoll(ctx, protokollID)
	if err != nil {
		logrus.WithError(err).WithField("protokoll_id", protokollID).Error("Database error listing eintraege")
		return nil, ErrInternalServer
	}

	resources := make([]EintragResource, 0, len(eintraege))
	for i := range eintraege {
		resource, err := s.toResource(ctx, &eintraege[i])
		if err != nil {
			return nil, err
		}
		resources = append(resources, *resource)
	}
	return resources, nil
}

// Get returns a single enriched Eintrag.
func (s *EintragService) Get(ctx context.Context, id string) (*EintragResource, error) {
	eintrag, err := s.eintragRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEintragNotFound
		}
		logrus.WithError(err).WithField("eintrag_id", id).Error("Database error finding eintrag")
		return nil, ErrInternalServer
	}
	return s.toResource(ctx, eintrag)
}

// Create persists a new Eintrag after resolving both references and
// checking that the parent Protokoll is still open.
func (s *EintragService) Create(ctx context.Context, params CreateEintragParams) (*EintragResource, error) {
	logCtx := logrus.WithFields(logrus.Fields{"ersteller": params.Ersteller, "protokoll": params.Protokoll})

	ersteller, err := s.pflegerRepo.FindByID(ctx, params.Ersteller)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Create eintrag failed: ersteller not found")
			return nil, ErrErstellerNotFound
		}
		logCtx.WithError(err).Error("Database error resolving ersteller")
		return nil, ErrInternalServer
	}

	protokoll, err := s.protokollRepo.FindByID(ctx, params.Protokoll)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Create eintrag failed: protokoll not found")
			return nil, ErrProtokollNotFound
		}
		logCtx.WithError(err).Error("Database error resolving protokoll")
		return nil, ErrInternalServer
	}
	if protokoll.Closed {
		logCtx.Warn("Create eintrag failed: protokoll is closed")
		return nil, ErrProtokollClosed
	}

	eintrag := &domain.Eintrag{
		ErstellerID: ersteller.ID,
		ProtokollID: protokoll.ID,
		Getraenk:    params.Getraenk,
		Menge:       params.Menge,
		Kommentar:   params.Kommentar,
	}
	if err := s.eintragRepo.Save(ctx, eintrag); err != nil {
		logCtx.WithError(err).Error("Database error during eintrag creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("eintrag_id", eintrag.ID).Info("Eintrag created successfully")
	return &EintragResource{
		ID:            eintrag.ID,
		Getraenk:      eintrag.Getraenk,
		Menge:         eintrag.Menge,
		Kommentar:     eintrag.Kommentar,
		Ersteller:     ersteller.ID,
		ErstellerName: ersteller.Name,
		CreatedAt:     domain.FormatDatum(eintrag.CreatedAt),
		Protokoll:     protokoll.ID,
	}, nil
}

// Update mutates the drinkable fields of an Eintrag. The parent Protokoll
// must still be open; owner and parent remain whatever they were at
// creation.
func (s *EintragService) Update(ctx context.Context, params UpdateEintragParams) (*EintragResource, error) {
	logCtx := logrus.WithField("eintrag_id", params.ID)

	eintrag, err := s.eintragRepo.FindByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Update eintrag failed: not found")
			return nil, ErrEintragNotFound
		}
		logCtx.WithError(err).Error("Database error finding eintrag for update")
		return nil, ErrInternalServer
	}

	protokoll, err := s.protokollRepo.FindByID(ctx, eintrag.ProtokollID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Update eintrag failed: parent protokoll not found")
			return nil, ErrProtokollNotFound
		}
		logCtx.WithError(err).Error("Database error resolving parent protokoll")
		return nil, ErrInternalServer
	}
	if protokoll.Closed {
		logCtx.Warn("Update eintrag failed: protokoll is closed")
		return nil, ErrProtokollClosed
	}

	eintrag.Getraenk = params.Getraenk
	eintrag.Menge = params.Menge
	eintrag.Kommentar = params.Kommentar

	if err := s.eintragRepo.Save(ctx, eintrag); err != nil {
		logCtx.WithError(err).Error("Database error during eintrag update")
		return nil, ErrInternalServer
	}

	logCtx.Info("Eintrag updated successfully")
	return s.toResource(ctx, eintrag)
}

// Delete removes a single Eintrag.
func (s *EintragService) Delete(ctx context.Context, id string) error {
	logCtx := logrus.WithField("eintrag_id", id)

	if err := s.eintragRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Delete eintrag failed: not found")
			return ErrEintragNotFound
		}
		logCtx.WithError(err).Error("Database error deleting eintrag")
		return ErrInternalServer
	}

	logCtx.Info("Eintrag deleted successfully")
	return nil
}

func (s *EintragService) toResource(ctx context.Context, eintrag *domain.Eintrag) (*EintragResource, error) {
	ersteller, err := s.pflegerRepo.FindByID(ctx, eintrag.ErstellerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logrus.WithField("eintrag_id", eintrag.ID).Error("Ersteller of eintrag not found")
			return nil, ErrErstellerNotFound
		}
		logrus.WithError(err).Error("Database error resolving eintrag ersteller")
		return nil, ErrInternalServer
	}
	return &EintragResource{
		ID:            eintrag.ID,
		Getraenk:      eintrag.Getraenk,
		Menge:         eintrag.Menge,
		Kommentar:     eintrag.Kommentar,
		Ersteller:     ersteller.ID,
		ErstellerName: ersteller.Name,
		CreatedAt:     domain.FormatDatum(eintrag.CreatedAt),
		Protokoll:     eintrag.ProtokollID,
	}, nil
}
