package repository

import (
	"context"

	"laptop-admin/internal/domain/model"
)

type MessageRepository interface {
	//created_at昇順
	ListByConversationID(ctx context.Context, conversationID string) ([]model.Message, error)
	FindByID(ctx context.Context, messageID string) (model.Message, error)
	Create(ctx context.Context, m model.Message) error

	//is_recalled=trueにする。本文は保持する（表示側で差し替える）。
	MarkRecalled(ctx context.Context, messageID string) error
}
