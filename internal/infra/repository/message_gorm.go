package repository

import (
	"context"
	"errors"

	"laptop-admin/internal/domain/model"
	repo "laptop-admin/internal/repository"

	"gorm.io/gorm"
)

type MessageGormRepository struct {
	db *gorm.DB
}

func NewMessageGormRepository(db *gorm.DB) *MessageGormRepository {
	return &MessageGormRepository{db: db}
}

func (r *MessageGormRepository) ListByConversationID(ctx context.Context, conversationID string) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Find(&msgs).Error
	if err != nil {
		return []model.Message{}, err
	}
	return msgs, nil
}

func (r *MessageGormRepository) FindByID(ctx context.Context, messageID string) (model.Message, error) {
	var m model.Message
	err := r.db.WithContext(ctx).Where("id = ?", messageID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Message{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Message{}, err
	}
	return m, nil
}

func (r *MessageGormRepository) Create(ctx context.Context, m model.Message) error {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	return nil
}

func (r *MessageGormRepository) MarkRecalled(ctx context.Context, messageID string) error {
	res := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", messageID).
		Update("is_recalled", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
