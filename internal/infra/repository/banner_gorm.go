package repository

import (
	"context"
	"errors"

	"laptop-admin/internal/domain/model"
	repo "laptop-admin/internal/repository"

	"gorm.io/gorm"
)

type BannerGormRepository struct {
	db *gorm.DB
}

func NewBannerGormRepository(db *gorm.DB) *BannerGormRepository {
	return &BannerGormRepository{db: db}
}

func (r *BannerGormRepository) List(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	err := r.db.WithContext(ctx).
		Order("sort_index asc").
		Order("created_at desc").
		Find(&banners).Error
	if err != nil {
		return []model.Banner{}, err
	}
	return banners, nil
}

func (r *BannerGormRepository) FindByID(ctx context.Context, bannerID string) (model.Banner, error) {
	var b model.Banner
	err := r.db.WithContext(ctx).Where("id = ?", bannerID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Banner{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Banner{}, err
	}
	return b, nil
}

func (r *BannerGormRepository) Create(ctx context.Context, b model.Banner) error {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return err
	}
	return nil
}

func (r *BannerGormRepository) Delete(ctx context.Context, bannerID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", bannerID).Delete(&model.Banner{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 2件のsort_indexを入れ替える。片方でも見つからなければrollback。
func (r *BannerGormRepository) SwapSortIndex(ctx context.Context, aID string, bID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a, b model.Banner
		if err := tx.Where("id = ?", aID).First(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}
		if err := tx.Where("id = ?", bID).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&model.Banner{}).Where("id = ?", a.ID).Update("sort_index", b.SortIndex).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Banner{}).Where("id = ?", b.ID).Update("sort_index", a.SortIndex).Error; err != nil {
			return err
		}
		return nil
	})
}
