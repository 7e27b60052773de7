package usecase_test

import (
	"context"
	"testing"
	"time"

	"laptop-admin/internal/domain/model"
	"laptop-admin/internal/realtime"
	repo "laptop-admin/internal/repository"
	"laptop-admin/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ConversationRepoMock struct{ mock.Mock }

func (m *ConversationRepoMock) List(ctx context.Context) ([]model.Conversation, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Conversation)
	return items, args.Error(1)
}

func (m *ConversationRepoMock) FindByID(ctx context.Context, conversationID string) (model.Conversation, error) {
	args := m.Called(ctx, conversationID)
	c, _ := args.Get(0).(model.Conversation)
	return c, args.Error(1)
}

func (m *ConversationRepoMock) MarkRead(ctx context.Context, conversationID string, at time.Time) error {
	args := m.Called(ctx, conversationID, at)
	return args.Error(0)
}

func (m *ConversationRepoMock) TouchLastMessage(ctx context.Context, conversationID string, at time.Time) error {
	args := m.Called(ctx, conversationID, at)
	return args.Error(0)
}

type MessageRepoMock struct{ mock.Mock }

func (m *MessageRepoMock) ListByConversationID(ctx context.Context, conversationID string) ([]model.Message, error) {
	args := m.Called(ctx, conversationID)
	items, _ := args.Get(0).([]model.Message)
	return items, args.Error(1)
}

func (m *MessageRepoMock) FindByID(ctx context.Context, messageID string) (model.Message, error) {
	args := m.Called(ctx, messageID)
	msg, _ := args.Get(0).(model.Message)
	return msg, args.Error(1)
}

func (m *MessageRepoMock) Create(ctx context.Context, msg model.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepoMock) MarkRecalled(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

// 発行されたイベントを記録するだけのPublisher
type PublisherMock struct {
	events []publishedEvent
}

type publishedEvent struct {
	table string
	kind  realtime.Kind
}

func (p *PublisherMock) PublishRow(table string, kind realtime.Kind, newRow any, oldRow any) {
	p.events = append(p.events, publishedEvent{table: table, kind: kind})
}

type fixedIDGen struct{ id string }

func (g *fixedIDGen) NewID() string { return g.id }

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

const convID = "51e3b7aa-2f3c-4f9a-b7f4-000000000003"
const msgID = "b41c88de-55aa-47c2-9ff4-000000000004"

func newChatUsecase(tx *TxManagerMock, conv *ConversationRepoMock, msg *MessageRepoMock, pub *PublisherMock) *usecase.ChatUsecase {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	return usecase.NewChatUsecase(tx, conv, msg, pub, &fixedIDGen{id: msgID}, &fixedClock{t: now})
}

func TestChatUsecase_Send_EmptyContent(t *testing.T) {
	tx := new(TxManagerMock)
	conv := new(ConversationRepoMock)
	msg := new(MessageRepoMock)
	pub := &PublisherMock{}

	uc := newChatUsecase(tx, conv, msg, pub)

	_, err := uc.Send(context.Background(), adminID, convID, "   ")
	assertErrContains(t, err, "content required")
	assert.Empty(t, pub.events)
}

func TestChatUsecase_Send_Success_CreatesAndPublishes(t *testing.T) {
	tx := new(TxManagerMock)
	convRepo := new(ConversationRepoMock)
	msgRepo := new(MessageRepoMock)
	pub := &PublisherMock{}

	txConv := new(ConversationRepoMock)
	txMsg := new(MessageRepoMock)
	tx.Repos = &TxReposMock{conversations: txConv, messages: txMsg}
	tx.On("WithinTx", mock.Anything).Return(nil)

	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

	txConv.On("FindByID", mock.Anything, convID).Return(model.Conversation{ID: convID}, nil)
	txMsg.On("Create", mock.Anything, mock.MatchedBy(func(m model.Message) bool {
		return m.ID == msgID &&
			m.ConversationID == convID &&
			m.SenderRole == model.SenderRoleAdmin &&
			m.Content == "hello"
	})).Return(nil)
	txConv.On("TouchLastMessage", mock.Anything, convID, now).Return(nil)

	//commit後の通知用
	convRepo.On("FindByID", mock.Anything, convID).Return(model.Conversation{ID: convID}, nil)

	uc := usecase.NewChatUsecase(tx, convRepo, msgRepo, pub, &fixedIDGen{id: msgID}, &fixedClock{t: now})

	m, err := uc.Send(context.Background(), adminID, convID, "  hello  ")
	assert.NoError(t, err)
	assert.Equal(t, msgID, m.ID)
	assert.Equal(t, "hello", m.Content)

	//メッセージのINSERTと会話のUPDATEが流れる
	if assert.Equal(t, 2, len(pub.events)) {
		assert.Equal(t, "shop_messages", pub.events[0].table)
		assert.Equal(t, realtime.KindInsert, pub.events[0].kind)
		assert.Equal(t, "shop_conversations", pub.events[1].table)
		assert.Equal(t, realtime.KindUpdate, pub.events[1].kind)
	}

	txMsg.AssertExpectations(t)
	txConv.AssertExpectations(t)
}

func TestChatUsecase_Send_ConversationNotFound(t *testing.T) {
	tx := new(TxManagerMock)
	convRepo := new(ConversationRepoMock)
	msgRepo := new(MessageRepoMock)
	pub := &PublisherMock{}

	txConv := new(ConversationRepoMock)
	txMsg := new(MessageRepoMock)
	tx.Repos = &TxReposMock{conversations: txConv, messages: txMsg}
	tx.On("WithinTx", mock.Anything).Return(nil)

	txConv.On("FindByID", mock.Anything, convID).Return(model.Conversation{}, repo.ErrNotFound)

	uc := newChatUsecase(tx, convRepo, msgRepo, pub)

	_, err := uc.Send(context.Background(), adminID, convID, "hello")
	assertErrContains(t, err, "not found")
	assert.Empty(t, pub.events)
	txMsg.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChatUsecase_MarkRead_Success(t *testing.T) {
	tx := new(TxManagerMock)
	convRepo := new(ConversationRepoMock)
	msgRepo := new(MessageRepoMock)
	pub := &PublisherMock{}

	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	convRepo.On("MarkRead", mock.Anything, convID, now).Return(nil)
	convRepo.On("FindByID", mock.Anything, convID).Return(model.Conversation{ID: convID}, nil)

	uc := usecase.NewChatUsecase(tx, convRepo, msgRepo, pub, &fixedIDGen{id: msgID}, &fixedClock{t: now})

	err := uc.MarkRead(context.Background(), adminID, convID)
	assert.NoError(t, err)

	if assert.Equal(t, 1, len(pub.events)) {
		assert.Equal(t, "shop_conversations", pub.events[0].table)
		assert.Equal(t, realtime.KindUpdate, pub.events[0].kind)
	}
	convRepo.AssertExpectations(t)
}

func TestChatUsecase_Recall_UserMessageForbidden(t *testing.T) {
	tx := new(TxManagerMock)
	convRepo := new(ConversationRepoMock)
	msgRepo := new(MessageRepoMock)
	pub := &PublisherMock{}

	msgRepo.On("FindByID", mock.Anything, msgID).Return(model.Message{
		ID:         msgID,
		SenderRole: model.SenderRoleUser,
	}, nil)

	uc := newChatUsecase(tx, convRepo, msgRepo, pub)

	err := uc.Recall(context.Background(), adminID, msgID)
	assertErrContains(t, err, "cannot recall user message")
	msgRepo.AssertNotCalled(t, "MarkRecalled", mock.Anything, mock.Anything)
}

func TestChatUsecase_Recall_AlreadyRecalled(t *testing.T) {
	tx := new(TxManagerMock)
	convRepo := new(ConversationRepoMock)
	msgRepo := new(MessageRepoMock)
	pub := &PublisherMock{}

	msgRepo.On("FindByID", mock.Anything, msgID).Return(model.Message{
		ID:         msgID,
		SenderRole: model.SenderRoleAdmin,
		IsRecalled: true,
	}, nil)

	uc := newChatUsecase(tx, convRepo, msgRepo, pub)

	err := uc.Recall(context.Background(), adminID, msgID)
	assertErrContains(t, err, "already recalled")
}

func TestChatUsecase_Recall_Success_PublishesUpdate(t *testing.T) {
	tx := new(TxManagerMock)
	convRepo := new(ConversationRepoMock)
	msgRepo := new(MessageRepoMock)
	pub := &PublisherMock{}

	msgRepo.On("FindByID", mock.Anything, msgID).Return(model.Message{
		ID:         msgID,
		SenderRole: model.SenderRoleAdmin,
	}, nil)
	msgRepo.On("MarkRecalled", mock.Anything, msgID).Return(nil)

	uc := newChatUsecase(tx, convRepo, msgRepo, pub)

	err := uc.Recall(context.Background(), adminID, msgID)
	assert.NoError(t, err)

	if assert.Equal(t, 1, len(pub.events)) {
		assert.Equal(t, "shop_messages", pub.events[0].table)
		assert.Equal(t, realtime.KindUpdate, pub.events[0].kind)
	}
	msgRepo.AssertExpectations(t)
}
