package repository

import (
	"context"
	"errors"
	"time"

	"laptop-admin/internal/domain/model"
	repo "laptop-admin/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫の現在値を設定し、差分を履歴に残す（同一トランザクション）。
func (r *InventoryGormRepository) SetStockWithAdjustment(ctx context.Context, adminUserID string, productID string, newStock int64, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Product
		if err := tx.Where("id = ?", productID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		res := tx.Model(&model.Product{}).
			Where("id = ?", productID).
			Update("stock", newStock)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		adj := model.InventoryAdjustment{
			ProductID:   productID,
			AdminUserID: adminUserID,
			Delta:       newStock - p.Stock,
			Reason:      reason,
			CreatedAt:   time.Now(),
		}
		if err := tx.Create(&adj).Error; err != nil {
			return err
		}
		return nil
	})
}
