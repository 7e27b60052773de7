package repository

import (
	"context"

	"laptop-admin/internal/domain/model"
)

type ProfileRepository interface {
	//qは名前/メール/ロールの部分一致。created_at降順。
	List(ctx context.Context, q string) ([]model.Profile, error)
	FindByID(ctx context.Context, profileID string) (model.Profile, error)
	SetLocked(ctx context.Context, profileID string, locked bool) error
}
