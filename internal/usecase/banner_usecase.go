package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"laptop-admin/internal/domain/model"
	repo "laptop-admin/internal/repository"

	"github.com/google/uuid"
)

type BannerUsecase struct {
	bannerRepo repo.BannerRepository
}

func NewBannerUsecase(bannerRepo repo.BannerRepository) *BannerUsecase {
	return &BannerUsecase{bannerRepo: bannerRepo}
}

func (u *BannerUsecase) List(ctx context.Context) ([]model.Banner, error) {
	items, err := u.bannerRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type CreateBannerInput struct {
	Title    string
	ImageURL string
}

// 新規バナーは末尾（最大sort_index+1）に追加する。
func (u *BannerUsecase) Create(ctx context.Context, adminUserID string, in CreateBannerInput) (string, error) {
	if adminUserID == "" {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Title) == "" {
		return "", NewHTTPError(http.StatusBadRequest, "title required")
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return "", NewHTTPError(http.StatusBadRequest, "imageurl required")
	}

	items, err := u.bannerRepo.List(ctx)
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	next := 0
	for _, b := range items {
		if b.SortIndex >= next {
			next = b.SortIndex + 1
		}
	}

	b := model.Banner{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		ImageURL:  strings.TrimSpace(in.ImageURL),
		SortIndex: next,
		CreatedAt: time.Now(),
	}
	if err := u.bannerRepo.Create(ctx, b); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b.ID, nil
}

func (u *BannerUsecase) Delete(ctx context.Context, adminUserID string, bannerID string) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(bannerID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid banner id")
	}

	err := u.bannerRepo.Delete(ctx, bannerID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 並べ替え。directionは"up"か"down"。
// 端にいる場合は何もしない（200）。
func (u *BannerUsecase) Move(ctx context.Context, adminUserID string, bannerID string, direction string) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(bannerID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid banner id")
	}
	if direction != "up" && direction != "down" {
		return NewHTTPError(http.StatusBadRequest, "invalid direction")
	}

	items, err := u.bannerRepo.List(ctx)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	idx := -1
	for i, b := range items {
		if b.ID == bannerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	other := idx - 1
	if direction == "down" {
		other = idx + 1
	}
	if other < 0 || other >= len(items) {
		return nil
	}

	if err := u.bannerRepo.SwapSortIndex(ctx, items[idx].ID, items[other].ID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
