package repository

import (
	"context"
	"time"

	"laptop-admin/internal/domain/model"
)

type ConversationRepository interface {
	//last_message_at降順
	List(ctx context.Context) ([]model.Conversation, error)
	FindByID(ctx context.Context, conversationID string) (model.Conversation, error)

	//既読化。unread_count=0とlast_admin_read_atをまとめて更新する。
	MarkRead(ctx context.Context, conversationID string, at time.Time) error
	//メッセージ追加時にlast_message_atを進める。
	TouchLastMessage(ctx context.Context, conversationID string, at time.Time) error
}
