package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/repository"
)

// PflegerService manages caregiver accounts. Deleting a Pfleger cascades to
// every Protokoll it owns (and transitively their Eintraege) through the
// ProtokollService.
type PflegerService struct {
	pflegerRepo      repository.PflegerRepository
	protokollService *ProtokollService
}

func NewPflegerService(pflegerRepo repository.PflegerRepository, protokollService *ProtokollService) *PflegerService {
	if pflegerRepo == nil {
		panic("PflegerRepository cannot be nil for PflegerService")
	}
	if protokollService == nil {
		panic("ProtokollService cannot be nil for PflegerService")
	}
	return &PflegerService{
		pflegerRepo:      pflegerRepo,
		protokollService: protokollService,
	}
}

// GetAlle returns every account with the password stripped.
func (s *PflegerService) GetAlle(ctx context.Context) ([]PflegerResource, error) {
	pflegern, err := s.pflegerRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list pfleger")
		return nil, ErrInternalServer
	}
	resources := make([]PflegerResource, 0, len(pflegern))
	for _, p := range pflegern {
		resources = append(resources, PflegerResource{
			ID:    p.ID,
			Name:  p.Name,
			Admin: p.Admin,
		})
	}
	return resources, nil
}

// Create persists a new account. The password is hashed before it ever
// reaches the store.
func (s *PflegerService) Create(ctx context.Context, name, password string, admin bool) (*PflegerResource, error) {
	logCtx := logrus.WithField("name", name)

	existing, err := s.pflegerRepo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logCtx.WithError(err).Error("Database error checking pfleger name uniqueness")
		return nil, ErrInternalServer
	}
	if existing != nil {
		logCtx.Warn("Create pfleger failed: name already exists")
		return nil, ErrDuplicateName
	}

	hashed, err := hashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during pfleger creation")
		return nil, ErrInternalServer
	}

	pfleger := &domain.Pfleger{
		Name:     name,
		Password: hashed,
		Admin:    admin,
	}
	if err := s.pflegerRepo.Save(ctx, pfleger); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Create pfleger failed: duplicate entry on save")
			return nil, ErrDuplicateName
		}
		logCtx.WithError(err).Error("Database error during pfleger creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("pfleger_id", pfleger.ID).Info("Pfleger created successfully")
	return &PflegerResource{ID: pfleger.ID, Name: pfleger.Name, Admin: pfleger.Admin}, nil
}

// Update mutates name, password and admin flag in place. A supplied
// password is re-hashed through the same hash-on-write rule as Create;
// empty name/password mean "leave unchanged".
func (s *PflegerService) Update(ctx context.Context, id, name, password string, admin bool) (*PflegerResource, error) {
	logCtx := logrus.WithField("pfleger_id", id)

	pfleger, err := s.pflegerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Update pfleger failed: not found")
			return nil, ErrPflegerNotFound
		}
		logCtx.WithError(err).Error("Database error finding pfleger for update")
		return nil, ErrInternalServer
	}

	if name != "" {
		pfleger.Name = name
	}
	if password != "" {
		hashed, err := hashPassword(password)
		if err != nil {
			logCtx.WithError(err).Error("Failed to hash password during pfleger update")
			return nil, ErrInternalServer
		}
		pfleger.Password = hashed
	}
	pfleger.Admin = admin

	if err := s.pflegerRepo.Save(ctx, pfleger); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Update pfleger failed: name already exists")
			return nil, ErrDuplicateName
		}
		logCtx.WithError(err).Error("Database error during pfleger update")
		return nil, ErrInternalServer
	}

	logCtx.Info("Pfleger updated successfully")
	return &PflegerResource{ID: pfleger.ID, Name: pfleger.Name, Admin: pfleger.Admin}, nil
}

// Delete removes an account and cascades over its Protokolle first, then
// the account record itself. The cascade is a sequence of independent
// deletes without an enclosing transaction: a failure mid-cascade leaves
// already-deleted children gone and the Pfleger still present, which is an
// observable, acceptable intermediate state.
func (s *PflegerService) Delete(ctx context.Context, id string) error {
	logCtx := logrus.WithField("pfleger_id", id)

	if _, err := s.pflegerRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Delete pfleger failed: not found")
			return ErrPflegerNotFound
		}
		logCtx.WithError(err).Error("Database error finding pfleger for delete")
		return ErrInternalServer
	}

	if err := s.protokollService.DeleteAllByErsteller(ctx, id); err != nil {
		logCtx.WithError(err).Error("Failed to cascade-delete protokolle of pfleger")
		return err
	}

	if err := s.pflegerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPflegerNotFound
		}
		logCtx.WithError(err).Error("Database error deleting pfleger")
		return ErrInternalServer
	}

	logCtx.Info("Pfleger deleted successfully")
	return nil
}

// EnsureSeedAdmin creates an initial admin account when the store holds no
// Pfleger at all. Used at boot; a no-op once any account exists.
func (s *PflegerService) EnsureSeedAdmin(ctx context.Context, name, password string) error {
	if name == "" || password == "" {
		return nil
	}
	count, err := s.pflegerRepo.Count(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to count pfleger for admin seeding")
		return ErrInternalServer
	}
	if count > 0 {
		return nil
	}
	if _, err := s.Create(ctx, name, password, true); err != nil {
		return err
	}
	logrus.WithField("name", name).Info("Seed admin account created")
	return nil
}
