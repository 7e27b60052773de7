package repository

import (
	"context"

	"laptop-admin/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Page  int
	Limit int
	Q     string
	Sort  string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id string) error
}

// 在庫の永続化と履歴保存をまとめた約束。
type InventoryRepository interface {
	SetStockWithAdjustment(ctx context.Context, adminUserID string, productID string, newStock int64, reason string) error
}
