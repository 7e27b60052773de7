package chatsync

import (
	"context"

	"laptop-admin/internal/domain/model"
)

// Clientはチャットアプリの約束。実装はchatapi。
type Client interface {
	Conversations(ctx context.Context) ([]model.Conversation, error)
	Messages(ctx context.Context, conversationID string) ([]model.Message, error)

	Send(ctx context.Context, conversationID string, adminID string, message string) error
	MarkRead(ctx context.Context, conversationID string, adminID string) error
	Recall(ctx context.Context, adminID string, messageID string) error
}
