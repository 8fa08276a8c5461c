// Package gormpersistence implements the repository interfaces on top of
// GORM with the MySQL driver.
package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/repository"
)

// GormPflegerRepository is the GORM implementation of PflegerRepository.
type GormPflegerRepository struct {
	db *gorm.DB
}

// NewGormPflegerRepository creates a GormPflegerRepository. The DB handle is
// injected; a nil handle is a programming error.
func NewGormPflegerRepository(db *gorm.DB) *GormPflegerRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPflegerRepository")
	}
	return &GormPflegerRepository{db: db}
}

func (r *GormPflegerRepository) FindByID(ctx context.Context, id string) (*domain.Pfleger, error) {
	var pfleger domain.Pfleger
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pfleger).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find pfleger by id %s: %w", id, err)
	}
	return &pfleger, nil
}

func (r *GormPflegerRepository) FindByName(ctx context.Context, name string) (*domain.Pfleger, error) {
	var pfleger domain.Pfleger
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&pfleger).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find pfleger by name %q: %w", name, err)
	}
	return &pfleger, nil
}

func (r *GormPflegerRepository) FindAll(ctx context.Context) ([]domain.Pfleger, error) {
	var pflegern []domain.Pfleger
	if err := r.db.WithContext(ctx).Order("created_at").Find(&pflegern).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all pfleger: %w", err)
	}
	return pflegern, nil
}

func (r *GormPflegerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Pfleger{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm: count pfleger: %w", err)
	}
	return count, nil
}

func (r *GormPflegerRepository) Save(ctx context.Context, pfleger *domain.Pfleger) error {
	if err := r.db.WithContext(ctx).Save(pfleger).Error; err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save pfleger (id: %s, name: %s): %w", pfleger.ID, pfleger.Name, err)
	}
	return nil
}

func (r *GormPflegerRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Pfleger{})
	if result.Error != nil {
		return fmt.Errorf("gorm: delete pfleger %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// isDuplicateEntryError checks common unique-constraint error strings.
// TODO: replace with driver-specific error inspection (mysql error 1062).
func isDuplicateEntryError(err error) bool {
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || // MySQL
		strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
