package repository

import (
	"context"
	"errors"

	"laptop-admin/internal/domain/model"
	repo "laptop-admin/internal/repository"

	"gorm.io/gorm"
)

type ProfileGormRepository struct {
	db *gorm.DB
}

func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

func (r *ProfileGormRepository) List(ctx context.Context, q string) ([]model.Profile, error) {
	query := r.db.WithContext(ctx).Model(&model.Profile{})

	if q != "" {
		like := "%" + q + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ? OR role ILIKE ?", like, like, like)
	}

	var profiles []model.Profile
	if err := query.Order("created_at desc").Find(&profiles).Error; err != nil {
		return []model.Profile{}, err
	}
	return profiles, nil
}

func (r *ProfileGormRepository) FindByID(ctx context.Context, profileID string) (model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).Where("id = ?", profileID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Profile{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

func (r *ProfileGormRepository) SetLocked(ctx context.Context, profileID string, locked bool) error {
	res := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", profileID).
		Update("is_locked", locked)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
