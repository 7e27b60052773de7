package repository

import (
	"context"
	"errors"
	"time"

	"laptop-admin/internal/domain/model"
	repo "laptop-admin/internal/repository"

	"gorm.io/gorm"
)

type ConversationGormRepository struct {
	db *gorm.DB
}

func NewConversationGormRepository(db *gorm.DB) *ConversationGormRepository {
	return &ConversationGormRepository{db: db}
}

func (r *ConversationGormRepository) List(ctx context.Context) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := r.db.WithContext(ctx).
		Order("last_message_at desc nulls last").
		Order("created_at desc").
		Find(&convs).Error
	if err != nil {
		return []model.Conversation{}, err
	}
	return convs, nil
}

func (r *ConversationGormRepository) FindByID(ctx context.Context, conversationID string) (model.Conversation, error) {
	var c model.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", conversationID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Conversation{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Conversation{}, err
	}
	return c, nil
}

func (r *ConversationGormRepository) MarkRead(ctx context.Context, conversationID string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", conversationID).
		Updates(map[string]interface{}{
			"unread_count":       0,
			"last_admin_read_at": at,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ConversationGormRepository) TouchLastMessage(ctx context.Context, conversationID string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", conversationID).
		Update("last_message_at", at)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
