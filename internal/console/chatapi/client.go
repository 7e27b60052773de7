package chatapi

import (
	"context"
	"net/url"

	"laptop-admin/internal/console/api"
	"laptop-admin/internal/domain/model"
)

// Clientは /admin/api/shop_chat 系エンドポイントの実装。
type Client struct {
	api *api.Client
}

func New(baseURL string, token string) *Client {
	return &Client{api: api.NewClient(baseURL, token)}
}

func NewWithAPI(a *api.Client) *Client {
	return &Client{api: a}
}

type sendBody struct {
	ConversationID string `json:"conversation_id"`
	AdminID        string `json:"admin_id"`
	Message        string `json:"message"`
}

type markReadBody struct {
	ConversationID string `json:"conversation_id"`
	AdminID        string `json:"admin_id"`
}

type recallBody struct {
	AdminID   string `json:"admin_id"`
	MessageID string `json:"message_id"`
}

func (c *Client) Conversations(ctx context.Context) ([]model.Conversation, error) {
	var items []model.Conversation
	if err := c.api.Get(ctx, "/admin/api/shop_chat/conversations", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	vals := url.Values{}
	vals.Set("conversation_id", conversationID)

	var items []model.Message
	if err := c.api.Get(ctx, "/admin/api/shop_chat/messages", vals, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Send(ctx context.Context, conversationID string, adminID string, message string) error {
	return c.api.Post(ctx, "/admin/api/shop_chat/send", sendBody{
		ConversationID: conversationID,
		AdminID:        adminID,
		Message:        message,
	}, nil)
}

func (c *Client) MarkRead(ctx context.Context, conversationID string, adminID string) error {
	return c.api.Post(ctx, "/admin/api/shop_chat/mark_read", markReadBody{
		ConversationID: conversationID,
		AdminID:        adminID,
	}, nil)
}

func (c *Client) Recall(ctx context.Context, adminID string, messageID string) error {
	return c.api.Post(ctx, "/admin/api/shop_chat/recall", recallBody{
		AdminID:   adminID,
		MessageID: messageID,
	}, nil)
}
