package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/repository"
)

// GormEintragRepository is the GORM implementation of EintragRepository.
type GormEintragRepository struct {
	db *gorm.DB
}

func NewGormEintragRepository(db *gorm.DB) *GormEintragRepository {
	if db == nil {
		panic("database connection cannot be nil for GormEintragRepository")
	}
	return &GormEintragRepository{db: db}
}

func (r *GormEintragRepository) FindByID(ctx context.Context, id string) (*domain.Eintrag, error) {
	var eintrag domain.Eintrag
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&eintrag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find eintrag by id %s: %w", id, err)
	}
	return &eintrag, nil
}

func (r *GormEintragRepository) FindByProtokoll(ctx context.Context, protokollID string) ([]domain.Eintrag, error) {
	var eintraege []domain.Eintrag
	err := r.db.WithContext(ctx).
		Where("protokoll_id = ?", protokollID).
		Order("created_at").
		Find(&eintraege).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find eintraege of protokoll %s: %w", protokollID, err)
	}
	return eintraege, nil
}

func (r *GormEintragRepository) SumMengeByProtokoll(ctx context.Context, protokollID string) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&domain.Eintrag{}).
		Where("protokoll_id = ?", protokollID).
		Select("COALESCE(SUM(menge), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: sum menge of protokoll %s: %w", protokollID, err)
	}
	return sum, nil
}

func (r *GormEintragRepository) Save(ctx context.Context, eintrag *domain.Eintrag) error {
	if err := r.db.WithContext(ctx).Save(eintrag).Error; err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save eintrag (id: %s): %w", eintrag.ID, err)
	}
	return nil
}

func (r *GormEintragRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Eintrag{})
	if result.Error != nil {
		return fmt.Errorf("gorm: delete eintrag %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *GormEintragRepository) DeleteByProtokoll(ctx context.Context, protokollID string) error {
	err := r.db.WithContext(ctx).Where("protokoll_id = ?", protokollID).Delete(&domain.Eintrag{}).Error
	if err != nil {
		return fmt.Errorf("gorm: delete eintraege of protokoll %s: %w", protokollID, err)
	}
	return nil
}
