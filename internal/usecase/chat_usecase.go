package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"laptop-admin/internal/domain/model"
	"laptop-admin/internal/realtime"
	repo "laptop-admin/internal/repository"
)

// 行イベントの配信先。realtime.Hubが満たす。
type EventPublisher interface {
	PublishRow(table string, kind realtime.Kind, newRow any, oldRow any)
}

// メッセージIDの発行。本番はuuid、テストでは固定値に差し替える。
type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

type ChatUsecase struct {
	tx    repo.TransactionManager
	conv  repo.ConversationRepository
	msg   repo.MessageRepository
	pub   EventPublisher
	idGen IDGenerator
	clock Clock
}

func NewChatUsecase(
	tx repo.TransactionManager,
	conv repo.ConversationRepository,
	msg repo.MessageRepository,
	pub EventPublisher,
	idGen IDGenerator,
	clock Clock,
) *ChatUsecase {
	return &ChatUsecase{
		tx:    tx,
		conv:  conv,
		msg:   msg,
		pub:   pub,
		idGen: idGen,
		clock: clock,
	}
}

// 会話一覧。last_message_at降順。
func (u *ChatUsecase) Conversations(ctx context.Context) ([]model.Conversation, error) {
	items, err := u.conv.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 指定会話のメッセージ一覧。created_at昇順。
func (u *ChatUsecase) Messages(ctx context.Context, conversationID string) ([]model.Message, error) {
	if strings.TrimSpace(conversationID) == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid conversation id")
	}

	if _, err := u.conv.FindByID(ctx, conversationID); err != nil {
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusNotFound, "not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.msg.ListByConversationID(ctx, conversationID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 管理者メッセージの送信。
// 保存とlast_message_at更新を同一Txで行い、commit後に行イベントを流す。
func (u *ChatUsecase) Send(ctx context.Context, adminUserID string, conversationID string, content string) (model.Message, error) {
	if adminUserID == "" {
		return model.Message{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(conversationID) == "" {
		return model.Message{}, NewHTTPError(http.StatusBadRequest, "invalid conversation id")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Message{}, NewHTTPError(http.StatusBadRequest, "content required")
	}

	now := u.clock.Now()
	m := model.Message{
		ID:             u.idGen.NewID(),
		ConversationID: conversationID,
		SenderRole:     model.SenderRoleAdmin,
		SenderID:       adminUserID,
		Content:        content,
		CreatedAt:      now,
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Conversations().FindByID(ctx, conversationID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Messages().Create(ctx, m); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Conversations().TouchLastMessage(ctx, conversationID, now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return model.Message{}, err
	}

	u.pub.PublishRow(model.Message{}.TableName(), realtime.KindInsert, m, nil)

	conv, err := u.conv.FindByID(ctx, conversationID)
	if err == nil {
		u.pub.PublishRow(model.Conversation{}.TableName(), realtime.KindUpdate, conv, nil)
	}

	return m, nil
}

// 既読化。unread_count=0とlast_admin_read_atをまとめて更新する。
func (u *ChatUsecase) MarkRead(ctx context.Context, adminUserID string, conversationID string) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(conversationID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid conversation id")
	}

	if err := u.conv.MarkRead(ctx, conversationID, u.clock.Now()); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	conv, err := u.conv.FindByID(ctx, conversationID)
	if err == nil {
		u.pub.PublishRow(model.Conversation{}.TableName(), realtime.KindUpdate, conv, nil)
	}
	return nil
}

// メッセージ取り消し。管理者自身の未取り消しメッセージのみ。
func (u *ChatUsecase) Recall(ctx context.Context, adminUserID string, messageID string) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(messageID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid message id")
	}

	m, err := u.msg.FindByID(ctx, messageID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if m.SenderRole != model.SenderRoleAdmin {
		return NewHTTPError(http.StatusForbidden, "cannot recall user message")
	}
	if m.IsRecalled {
		return NewHTTPError(http.StatusBadRequest, "already recalled")
	}

	if err := u.msg.MarkRecalled(ctx, messageID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	m.IsRecalled = true
	u.pub.PublishRow(model.Message{}.TableName(), realtime.KindUpdate, m, nil)
	return nil
}
