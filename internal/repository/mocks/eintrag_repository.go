package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
)

// EintragRepository is a testify mock of repository.EintragRepository.
type EintragRepository struct {
	mock.Mock
}

func (m *EintragRepository) FindByID(ctx context.Context, id string) (*domain.Eintrag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Eintrag), args.Error(1)
}

func (m *EintragRepository) FindByProtokoll(ctx context.Context, protokollID string) ([]domain.Eintrag, error) {
	args := m.Called(ctx, protokollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Eintrag), args.Error(1)
}

func (m *EintragRepository) SumMengeByProtokoll(ctx context.Context, protokollID string) (float64, error) {
	args := m.Called(ctx, protokollID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *EintragRepository) Save(ctx context.Context, eintrag *domain.Eintrag) error {
	args := m.Called(ctx, eintrag)
	return args.Error(0)
}

func (m *EintragRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EintragRepository) DeleteByProtokoll(ctx context.Context, protokollID string) error {
	args := m.Called(ctx, protokollID)
	return args.Error(0)
}
