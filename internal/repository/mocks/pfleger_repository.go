package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
)

// PflegerRepository is a testify mock of repository.PflegerRepository.
type PflegerRepository struct {
	mock.Mock
}

func (m *PflegerRepository) FindByID(ctx context.Context, id string) (*domain.Pfleger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pfleger), args.Error(1)
}

func (m *PflegerRepository) FindByName(ctx context.Context, name string) (*domain.Pfleger, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pfleger), args.Error(1)
}

func (m *PflegerRepository) FindAll(ctx context.Context) ([]domain.Pfleger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pfleger), args.Error(1)
}

func (m *PflegerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PflegerRepository) Save(ctx context.Context, pfleger *domain.Pfleger) error {
	args := m.Called(ctx, pfleger)
	return args.Error(0)
}

func (m *PflegerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
