package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/repository"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/repository/mocks"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/service"
)

// newPflegerService wires a PflegerService with all three repo mocks; the
// protokoll mocks matter only for the cascade tests.
func newPflegerService() (*service.PflegerService, *mocks.PflegerRepository, *mocks.ProtokollRepository, *mocks.EintragRepository) {
	mockPflegerRepo := new(mocks.PflegerRepository)
	mockProtokollRepo := new(mocks.ProtokollRepository)
	mockEintragRepo := new(mocks.EintragRepository)
	protokollService := service.NewProtokollService(mockProtokollRepo, mockEintragRepo, mockPflegerRepo)
	pflegerService := service.NewPflegerService(mockPflegerRepo, protokollService)
	return pflegerService, mockPflegerRepo, mockProtokollRepo, mockEintragRepo
}

func TestPflegerService_Create_Success(t *testing.T) {
	pflegerService, mockPflegerRepo, _, _ := newPflegerService()
	ctx := context.Background()
	password := "Abcdef1!"

	mockPflegerRepo.On("FindByName", ctx, "Behrens").Return(nil, repository.ErrNotFound).Once()
	mockPflegerRepo.On("Save", ctx, mock.MatchedBy(func(p *domain.Pfleger) bool {
		assert.Equal(t, "Behrens", p.Name)
		assert.True(t, p.Admin)
		// The stored password must be a bcrypt hash of the input.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password)))
		return true
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Pfleger).ID = "11111111-0000-4000-8000-000000000001"
	}).Return(nil).Once()

	created, err := pflegerService.Create(ctx, "Behrens", password, true)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "11111111-0000-4000-8000-000000000001", created.ID)
	assert.Equal(t, "Behrens", created.Name)
	assert.True(t, created.Admin)

	mockPflegerRepo.AssertExpectations(t)
}

func TestPflegerService_Create_DuplicateName(t *testing.T) {
	pflegerService, mockPflegerRepo, _, _ := newPflegerService()
	ctx := context.Background()

	existing := &domain.Pfleger{ID: "11111111-0000-4000-8000-000000000002", Name: "Behrens"}
	mockPflegerRepo.On("FindByName", ctx, "Behrens").Return(existing, nil).Once()

	_, err := pflegerService.Create(ctx, "Behrens", "Abcdef1!", false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrDuplicateName))
	mockPflegerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPflegerService_Create_DuplicateOnSave(t *testing.T) {
	pflegerService, mockPflegerRepo, _, _ := newPflegerService()
	ctx := context.Background()

	mockPflegerRepo.On("FindByName", ctx, "Behrens").Return(nil, repository.ErrNotFound).Once()
	mockPflegerRepo.On("Save", ctx, mock.AnythingOfType("*domain.Pfleger")).Return(repository.ErrDuplicateEntry).Once()

	_, err := pflegerService.Create(ctx, "Behrens", "Abcdef1!", false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrDuplicateName))
	mockPflegerRepo.AssertExpectations(t)
}

func TestPflegerService_Update_RehashesPassword(t *testing.T) {
	pflegerService, mockPflegerRepo, _, _ := newPflegerService()
	ctx := context.Background()
	id := "11111111-0000-4000-8000-000000000003"
	oldHash := "$2a$10$old-stored-hash"
	newPassword := "NeuesPw1!"

	stored := &domain.Pfleger{ID: id, Name: "Castorp", Password: oldHash, Admin: false}
	mockPflegerRepo.On("FindByID", ctx, id).Return(stored, nil).Once()
	mockPflegerRepo.On("Save", ctx, mock.MatchedBy(func(p *domain.Pfleger) bool {
		assert.NotEqual(t, oldHash, p.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(newPassword)))
		assert.True(t, p.Admin)
		return true
	})).Return(nil).Once()

	updated, err := pflegerService.Update(ctx, id, "", newPassword, true)

	require.NoError(t, err)
	assert.Equal(t, "Castorp", updated.Name)
	assert.True(t, updated.Admin)
	mockPflegerRepo.AssertExpectations(t)
}

func TestPflegerService_Update_EmptyFieldsUnchanged(t *testing.T) {
	pflegerService, mockPflegerRepo, _, _ := newPflegerService()
	ctx := context.Background()
	id := "11111111-0000-4000-8000-000000000004"
	oldHash := "$2a$10$old-stored-hash"

	stored := &domain.Pfleger{ID: id, Name: "Castorp", Password: oldHash, Admin: true}
	mockPflegerRepo.On("FindByID", ctx, id).Return(stored, nil).Once()
	mockPflegerRepo.On("Save", ctx, mock.MatchedBy(func(p *domain.Pfleger) bool {
		assert.Equal(t, "Castorp", p.Name)
		assert.Equal(t, oldHash, p.Password)
		assert.False(t, p.Admin)
		return true
	})).Return(nil).Once()

	_, err := pflegerService.Update(ctx, id, "", "", false)
	require.NoError(t, err)
	mockPflegerRepo.AssertExpectations(t)
}

func TestPflegerService_Update_NotFound(t *testing.T) {
	pflegerService, mockPflegerRepo, _, _ := newPflegerService()
	ctx := context.Background()
	id := "11111111-0000-4000-8000-000000000005"

	mockPflegerRepo.On("FindByID", ctx, id).Return(nil, repository.ErrNotFound).Once()

	_, err := pflegerService.Update(ctx, id, "x", "", false)
	assert.True(t, errors.Is(err, service.ErrPflegerNotFound))
}

func TestPflegerService_Delete_CascadesProtokolle(t *testing.T) {
	pflegerService, mockPflegerRepo, mockProtokollRepo, mockEintragRepo := newPflegerService()
	ctx := context.Background()
	id := "11111111-0000-4000-8000-000000000006"
	protokollID := "22222222-0000-4000-8000-000000000001"

	stored := &domain.Pfleger{ID: id, Name: "Castorp"}
	owned := []domain.Protokoll{{ID: protokollID, ErstellerID: id, Patient: "Ziemssen"}}

	mockPflegerRepo.On("FindByID", ctx, id).Return(stored, nil).Once()
	mockProtokollRepo.On("FindByErsteller", ctx, id).Return(owned, nil).Once()
	// The cascade re-fetches each Protokoll before deleting it.
	mockProtokollRepo.On("FindByID", ctx, protokollID).Return(&owned[0], nil).Once()
	mockEintragRepo.On("DeleteByProtokoll", ctx, protokollID).Return(nil).Once()
	mockProtokollRepo.On("Delete", ctx, protokollID).Return(nil).Once()
	mockPflegerRepo.On("Delete", ctx, id).Return(nil).Once()

	err := pflegerService.Delete(ctx, id)

	require.NoError(t, err)
	mockPflegerRepo.AssertExpectations(t)
	mockProtokollRepo.AssertExpectations(t)
	mockEintragRepo.AssertExpectations(t)
}

func TestPflegerService_Delete_NotFound(t *testing.T) {
	pflegerService, mockPflegerRepo, _, _ := newPflegerService()
	ctx := context.Background()
	id := "11111111-0000-4000-8000-000000000007"

	mockPflegerRepo.On("FindByID", ctx, id).Return(nil, repository.ErrNotFound).Once()

	err := pflegerService.Delete(ctx, id)
	assert.True(t, errors.Is(err, service.ErrPflegerNotFound))
	mockPflegerRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPflegerService_EnsureSeedAdmin_EmptyStore(t *testing.T) {
	pflegerService, mockPflegerRepo, _, _ := newPflegerService()
	ctx := context.Background()

	mockPflegerRepo.On("Count", ctx).Return(int64(0), nil).Once()
	mockPflegerRepo.On("FindByName", ctx, "admin").Return(nil, repository.ErrNotFound).Once()
	mockPflegerRepo.On("Save", ctx, mock.MatchedBy(func(p *domain.Pfleger) bool {
		return p.Name == "admin" && p.Admin
	})).Return(nil).Once()

	err := pflegerService.EnsureSeedAdmin(ctx, "admin", "Abcdef1!")
	require.NoError(t, err)
	mockPflegerRepo.AssertExpectations(t)
}

func TestPflegerService_EnsureSeedAdmin_SkipsPopulatedStore(t *testing.T) {
	pflegerService, mockPflegerRepo, _, _ := newPflegerService()
	ctx := context.Background()

	mockPflegerRepo.On("Count", ctx).Return(int64(3), nil).Once()

	err := pflegerService.EnsureSeedAdmin(ctx, "admin", "Abcdef1!")
	require.NoError(t, err)
	mockPflegerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
