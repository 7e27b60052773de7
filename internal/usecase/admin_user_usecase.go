package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"laptop-admin/internal/domain/model"
	repo "laptop-admin/internal/repository"
)

type AdminUserUsecase struct {
	profileRepo repo.ProfileRepository
	auditRepo   repo.AuditLogRepository
}

func NewAdminUserUsecase(profileRepo repo.ProfileRepository, auditRepo repo.AuditLogRepository) *AdminUserUsecase {
	return &AdminUserUsecase{profileRepo: profileRepo, auditRepo: auditRepo}
}

func (u *AdminUserUsecase) List(ctx context.Context, q string) ([]model.Profile, error) {
	if len(q) > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	items, err := u.profileRepo.List(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// アカウントのロック/解除。管理者アカウントはロックできない。
func (u *AdminUserUsecase) SetLocked(ctx context.Context, actorAdminID string, profileID string, locked bool) error {
	if actorAdminID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(profileID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	p, err := u.profileRepo.FindByID(ctx, profileID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if p.Role == model.RoleAdmin {
		return NewHTTPError(http.StatusForbidden, "cannot lock admin account")
	}
	if p.IsLocked == locked {
		return nil
	}

	if err := u.profileRepo.SetLocked(ctx, profileID, locked); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	beforeJSON := fmt.Sprintf(`{"is_locked":%t}`, p.IsLocked)
	afterJSON := fmt.Sprintf(`{"is_locked":%t}`, locked)
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminID,
		Action:       model.AuditActionSetUserLock,
		ResourceType: model.AuditResourceUser,
		ResourceID:   profileID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
