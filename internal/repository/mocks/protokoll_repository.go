package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
)

// ProtokollRepository is a testify mock of repository.ProtokollRepository.
type ProtokollRepository struct {
	mock.Mock
}

func (m *ProtokollRepository) FindByID(ctx context.Context, id string) (*domain.Protokoll, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Protokoll), args.Error(1)
}

func (m *ProtokollRepository) FindVisible(ctx context.Context, pflegerID string) ([]domain.Protokoll, error) {
	args := m.Called(ctx, pflegerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Protokoll), args.Error(1)
}

func (m *ProtokollRepository) FindByErsteller(ctx context.Context, pflegerID string) ([]domain.Protokoll, error) {
	args := m.Called(ctx, pflegerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Protokoll), args.Error(1)
}

func (m *ProtokollRepository) FindByPatientDatum(ctx context.Context, patient string, datum time.Time) (*domain.Protokoll, error) {
	args := m.Called(ctx, patient, datum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Protokoll), args.Error(1)
}

func (m *ProtokollRepository) FindOpenBefore(ctx context.Context, cutoff time.Time) ([]domain.Protokoll, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Protokoll), args.Error(1)
}

func (m *ProtokollRepository) Save(ctx context.Context, protokoll *domain.Protokoll) error {
	args := m.Called(ctx, protokoll)
	return args.Error(0)
}

func (m *ProtokollRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
