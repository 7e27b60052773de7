package usecase_test

import (
	"context"
	"strings"
	"testing"

	"laptop-admin/internal/domain/model"
	"laptop-admin/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ProfileRepoMock struct{ mock.Mock }

func (m *ProfileRepoMock) List(ctx context.Context, q string) ([]model.Profile, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Profile)
	return items, args.Error(1)
}

func (m *ProfileRepoMock) FindByID(ctx context.Context, profileID string) (model.Profile, error) {
	args := m.Called(ctx, profileID)
	p, _ := args.Get(0).(model.Profile)
	return p, args.Error(1)
}

func (m *ProfileRepoMock) SetLocked(ctx context.Context, profileID string, locked bool) error {
	args := m.Called(ctx, profileID, locked)
	return args.Error(0)
}

const profileID = "6f2c41d0-8a3b-4e57-9d10-000000000003"

func TestAdminUserUsecase_List_QTooLong(t *testing.T) {
	profileRepo := new(ProfileRepoMock)
	u := usecase.NewAdminUserUsecase(profileRepo, new(AuditRepoMock))

	_, err := u.List(context.Background(), strings.Repeat("a", 101))
	assertErrContains(t, err, "q too long")
	profileRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestAdminUserUsecase_SetLocked_AdminAccountForbidden(t *testing.T) {
	profileRepo := new(ProfileRepoMock)
	u := usecase.NewAdminUserUsecase(profileRepo, new(AuditRepoMock))

	profileRepo.On("FindByID", mock.Anything, profileID).Return(model.Profile{
		ID:   profileID,
		Role: model.RoleAdmin,
	}, nil)

	err := u.SetLocked(context.Background(), adminID, profileID, true)
	assertErrContains(t, err, "cannot lock admin account")
	profileRepo.AssertNotCalled(t, "SetLocked", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUserUsecase_SetLocked_SameStateNoOp(t *testing.T) {
	profileRepo := new(ProfileRepoMock)
	auditRepo := new(AuditRepoMock)
	u := usecase.NewAdminUserUsecase(profileRepo, auditRepo)

	profileRepo.On("FindByID", mock.Anything, profileID).Return(model.Profile{
		ID:       profileID,
		Role:     model.RoleUser,
		IsLocked: true,
	}, nil)

	err := u.SetLocked(context.Background(), adminID, profileID, true)
	assert.NoError(t, err)
	profileRepo.AssertNotCalled(t, "SetLocked", mock.Anything, mock.Anything, mock.Anything)
	auditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUserUsecase_SetLocked_Success(t *testing.T) {
	profileRepo := new(ProfileRepoMock)
	auditRepo := new(AuditRepoMock)
	u := usecase.NewAdminUserUsecase(profileRepo, auditRepo)

	profileRepo.On("FindByID", mock.Anything, profileID).Return(model.Profile{
		ID:   profileID,
		Role: model.RoleUser,
	}, nil)
	profileRepo.On("SetLocked", mock.Anything, profileID, true).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionSetUserLock &&
			l.ActorUserID == adminID &&
			l.ResourceID == profileID &&
			l.BeforeJSON == `{"is_locked":false}` &&
			l.AfterJSON == `{"is_locked":true}`
	})).Return(nil)

	err := u.SetLocked(context.Background(), adminID, profileID, true)
	assert.NoError(t, err)
	profileRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}
