package repository

import (
	"context"

	"laptop-admin/internal/domain/model"
)

type BannerRepository interface {
	//sort_index昇順、同値はcreated_at降順
	List(ctx context.Context) ([]model.Banner, error)
	FindByID(ctx context.Context, bannerID string) (model.Banner, error)
	Create(ctx context.Context, b model.Banner) error
	Delete(ctx context.Context, bannerID string) error

	//並べ替え。2件のsort_indexを同一トランザクションで入れ替える。
	SwapSortIndex(ctx context.Context, aID string, bID string) error
}
