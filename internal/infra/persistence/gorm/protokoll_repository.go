package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/repository"
)

// GormProtokollRepository is the GORM implementation of ProtokollRepository.
type GormProtokollRepository struct {
	db *gorm.DB
}

func NewGormProtokollRepository(db *gorm.DB) *GormProtokollRepository {
	if db == nil {
		panic("database connection cannot be nil for GormProtokollRepository")
	}
	return &GormProtokollRepository{db: db}
}

func (r *GormProtokollRepository) FindByID(ctx context.Context, id string) (*domain.Protokoll, error) {
	var protokoll domain.Protokoll
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&protokoll).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find protokoll by id %s: %w", id, err)
	}
	return &protokoll, nil
}

func (r *GormProtokollRepository) FindVisible(ctx context.Context, pflegerID string) ([]domain.Protokoll, error) {
	var protokolle []domain.Protokoll
	query := r.db.WithContext(ctx)
	if pflegerID != "" {
		query = query.Where("public = ? OR ersteller_id = ?", true, pflegerID)
	} else {
		query = query.Where("public = ?", true)
	}
	if err := query.Order("datum, patient").Find(&protokolle).Error; err != nil {
		return nil, fmt.Errorf("gorm: find visible protokolle: %w", err)
	}
	return protokolle, nil
}

func (r *GormProtokollRepository) FindByErsteller(ctx context.Context, pflegerID string) ([]domain.Protokoll, error) {
	var protokolle []domain.Protokoll
	err := r.db.WithContext(ctx).Where("ersteller_id = ?", pflegerID).Find(&protokolle).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find protokolle by ersteller %s: %w", pflegerID, err)
	}
	return protokolle, nil
}

func (r *GormProtokollRepository) FindByPatientDatum(ctx context.Context, patient string, datum time.Time) (*domain.Protokoll, error) {
	var protokoll domain.Protokoll
	err := r.db.WithContext(ctx).Where("patient = ? AND datum = ?", patient, datum).First(&protokoll).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find protokoll by patient %q and datum: %w", patient, err)
	}
	return &protokoll, nil
}

func (r *GormProtokollRepository) FindOpenBefore(ctx context.Context, cutoff time.Time) ([]domain.Protokoll, error) {
	var protokolle []domain.Protokoll
	err := r.db.WithContext(ctx).Where("closed = ? AND datum < ?", false, cutoff).Find(&protokolle).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find open protokolle before cutoff: %w", err)
	}
	return protokolle, nil
}

func (r *GormProtokollRepository) Save(ctx context.Context, protokoll *domain.Protokoll) error {
	if err := r.db.WithContext(ctx).Save(protokoll).Error; err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save protokoll (id: %s, patient: %s): %w", protokoll.ID, protokoll.Patient, err)
	}
	return nil
}

func (r *GormProtokollRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Protokoll{})
	if result.Error != nil {
		return fmt.Errorf("gorm: delete protokoll %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
