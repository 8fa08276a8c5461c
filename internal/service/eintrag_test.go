package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/repository"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/repository/mocks"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/service"
)

func newEintragService() (*service.EintragService, *mocks.EintragRepository, *mocks.ProtokollRepository, *mocks.PflegerRepository) {
	mockEintragRepo := new(mocks.EintragRepository)
	mockProtokollRepo := new(mocks.ProtokollRepository)
	mockPflegerRepo := new(mocks.PflegerRepository)
	eintragService := service.NewEintragService(mockEintragRepo, mockProtokollRepo, mockPflegerRepo)
	return eintragService, mockEintragRepo, mockProtokollRepo, mockPflegerRepo
}

func TestEintragService_Create_Success(t *testing.T) {
	eintragService, mockEintragRepo, mockProtokollRepo, mockPflegerRepo := newEintragService()
	ctx := context.Background()
	erstellerID := "11111111-0000-4000-8000-000000000001"
	protokollID := "22222222-0000-4000-8000-000000000001"

	ersteller := &domain.Pfleger{ID: erstellerID, Name: "Behrens"}
	protokoll := &domain.Protokoll{ID: protokollID, ErstellerID: erstellerID, Patient: "Ziemssen"}

	mockPflegerRepo.On("FindByID", ctx, erstellerID).Return(ersteller, nil).Once()
	mockProtokollRepo.On("FindByID", ctx, protokollID).Return(protokoll, nil).Once()
	mockEintragRepo.On("Save", ctx, mock.MatchedBy(func(e *domain.Eintrag) bool {
		assert.Equal(t, erstellerID, e.ErstellerID)
		assert.Equal(t, protokollID, e.ProtokollID)
		assert.Equal(t, "Kaffee", e.Getraenk)
		assert.Equal(t, float64(100), e.Menge)
		return true
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Eintrag).ID = "33333333-0000-4000-8000-000000000001"
	}).Return(nil).Once()

	created, err := eintragService.Create(ctx, service.CreateEintragParams{
		Ersteller: erstellerID,
		Protokoll: protokollID,
		Getraenk:  "Kaffee",
		Menge:     100,
	})

	require.NoError(t, err)
	assert.Equal(t, "33333333-0000-4000-8000-000000000001", created.ID)
	assert.Equal(t, float64(100), created.Menge)
	assert.Equal(t, protokollID, created.Protokoll)
	assert.Equal(t, "Behrens", created.ErstellerName)

	mockEintragRepo.AssertExpectations(t)
}

func TestEintragService_Create_ZeroMengeAllowed(t *testing.T) {
	eintragService, mockEintragRepo, mockProtokollRepo, mockPflegerRepo := newEintragService()
	ctx := context.Background()
	erstellerID := "11111111-0000-4000-8000-000000000001"
	protokollID := "22222222-0000-4000-8000-000000000001"

	mockPflegerRepo.On("FindByID", ctx, erstellerID).Return(&domain.Pfleger{ID: erstellerID}, nil).Once()
	mockProtokollRepo.On("FindByID", ctx, protokollID).Return(&domain.Protokoll{ID: protokollID}, nil).Once()
	mockEintragRepo.On("Save", ctx, mock.MatchedBy(func(e *domain.Eintrag) bool {
		return e.Menge == 0
	})).Return(nil).Once()

	created, err := eintragService.Create(ctx, service.CreateEintragParams{
		Ersteller: erstellerID,
		Protokoll: protokollID,
		Getraenk:  "Wasser",
		Menge:     0,
	})

	require.NoError(t, err)
	assert.Zero(t, created.Menge)
	mockEintragRepo.AssertExpectations(t)
}

func TestEintragService_Create_ClosedProtokoll(t *testing.T) {
	eintragService, mockEintragRepo, mockProtokollRepo, mockPflegerRepo := newEintragService()
	ctx := context.Background()
	erstellerID := "11111111-0000-4000-8000-000000000001"
	protokollID := "22222222-0000-4000-8000-000000000001"

	mockPflegerRepo.On("FindByID", ctx, erstellerID).Return(&domain.Pfleger{ID: erstellerID}, nil).Once()
	closedProtokoll := &domain.Protokoll{ID: protokollID, Closed: true}
	mockProtokollRepo.On("FindByID", ctx, protokollID).Return(closedProtokoll, nil).Once()

	_, err := eintragService.Create(ctx, service.CreateEintragParams{
		Ersteller: erstellerID,
		Protokoll: protokollID,
		Getraenk:  "Tee",
		Menge:     50,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrProtokollClosed))
	mockEintragRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEintragService_Create_ProtokollNotFound(t *testing.T) {
	eintragService, _, mockProtokollRepo, mockPflegerRepo := newEintragService()
	ctx := context.Background()
	erstellerID := "11111111-0000-4000-8000-000000000001"
	protokollID := "22222222-0000-4000-8000-000000000404"

	mockPflegerRepo.On("FindByID", ctx, erstellerID).Return(&domain.Pfleger{ID: erstellerID}, nil).Once()
	mockProtokollRepo.On("FindByID", ctx, protokollID).Return(nil, repository.ErrNotFound).Once()

	_, err := eintragService.Create(ctx, service.CreateEintragParams{
		Ersteller: erstellerID,
		Protokoll: protokollID,
		Getraenk:  "Tee",
		Menge:     50,
	})
	assert.True(t, errors.Is(err, service.ErrProtokollNotFound))
}

func TestEintragService_Update_KeepsOwnerAndParent(t *testing.T) {
	eintragService, mockEintragRepo, mockProtokollRepo, mockPflegerRepo := newEintragService()
	ctx := context.Background()
	eintragID := "33333333-0000-4000-8000-000000000001"
	erstellerID := "11111111-0000-4000-8000-000000000001"
	protokollID := "22222222-0000-4000-8000-000000000001"

	stored := &domain.Eintrag{ID: eintragID, ErstellerID: erstellerID, ProtokollID: protokollID, Getraenk: "Kaffee", Menge: 100}
	mockEintragRepo.On("FindByID", ctx, eintragID).Return(stored, nil).Once()
	mockProtokollRepo.On("FindByID", ctx, protokollID).Return(&domain.Protokoll{ID: protokollID}, nil).Once()
	mockEintragRepo.On("Save", ctx, mock.MatchedBy(func(e *domain.Eintrag) bool {
		// Only the drinkable fields change.
		assert.Equal(t, erstellerID, e.ErstellerID)
		assert.Equal(t, protokollID, e.ProtokollID)
		assert.Equal(t, "Tee", e.Getraenk)
		assert.Equal(t, float64(150), e.Menge)
		return true
	})).Return(nil).Once()
	mockPflegerRepo.On("FindByID", ctx, erstellerID).Return(&domain.Pfleger{ID: erstellerID, Name: "Behrens"}, nil).Once()

	updated, err := eintragService.Update(ctx, service.UpdateEintragParams{
		ID:       eintragID,
		Getraenk: "Tee",
		Menge:    150,
	})

	require.NoError(t, err)
	assert.Equal(t, erstellerID, updated.Ersteller)
	assert.Equal(t, protokollID, updated.Protokoll)
	mockEintragRepo.AssertExpectations(t)
}

func TestEintragService_Update_ClosedProtokoll(t *testing.T) {
	eintragService, mockEintragRepo, mockProtokollRepo, _ := newEintragService()
	ctx := context.Background()
	eintragID := "33333333-0000-4000-8000-000000000001"
	protokollID := "22222222-0000-4000-8000-000000000001"

	stored := &domain.Eintrag{ID: eintragID, ProtokollID: protokollID, Getraenk: "Kaffee", Menge: 100}
	mockEintragRepo.On("FindByID", ctx, eintragID).Return(stored, nil).Once()
	mockProtokollRepo.On("FindByID", ctx, protokollID).Return(&domain.Protokoll{ID: protokollID, Closed: true}, nil).Once()

	_, err := eintragService.Update(ctx, service.UpdateEintragParams{
		ID:       eintragID,
		Getraenk: "Tee",
		Menge:    150,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrProtokollClosed))
	mockEintragRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEintragService_GetAlleEintraege_ParentMissing(t *testing.T) {
	eintragService, _, mockProtokollRepo, _ := newEintragService()
	ctx := context.Background()
	protokollID := "22222222-0000-4000-8000-000000000404"

	mockProtokollRepo.On("FindByID", ctx, protokollID).Return(nil, repository.ErrNotFound).Once()

	_, err := eintragService.GetAlleEintraege(ctx, protokollID)
	assert.True(t, errors.Is(err, service.ErrProtokollNotFound))
}

func TestEintragService_GetAlleEintraege_Empty(t *testing.T) {
	eintragService, mockEintragRepo, mockProtokollRepo, _ := newEintragService()
	ctx := context.Background()
	protokollID := "22222222-0000-4000-8000-000000000001"

	mockProtokollRepo.On("FindByID", ctx, protokollID).Return(&domain.Protokoll{ID: protokollID}, nil).Once()
	mockEintragRepo.On("FindByProtokoll", ctx, protokollID).Return([]domain.Eintrag{}, nil).Once()

	resources, err := eintragService.GetAlleEintraege(ctx, protokollID)

	require.NoError(t, err)
	assert.NotNil(t, resources)
	assert.Empty(t, resources)
}

func TestEintragService_Delete_NotFound(t *testing.T) {
	eintragService, mockEintragRepo, _, _ := newEintragService()
	ctx := context.Background()
	eintragID := "33333333-0000-4000-8000-000000000404"

	mockEintragRepo.On("Delete", ctx, eintragID).Return(repository.ErrNotFound).Once()

	err := eintragService.Delete(ctx, eintragID)
	assert.True(t, errors.Is(err, service.ErrEintragNotFound))
}
