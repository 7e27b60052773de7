package chatsync

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"laptop-admin/internal/domain/model"
	"laptop-admin/internal/realtime"

	"github.com/google/uuid"
)

// Syncは会話一覧と選択中会話のメッセージを、
// 取得・楽観更新・購読イベントの3系統から1つのビューに合流させる。
//
// 購読イベントはtransportのgoroutineから届くのでmutexで守る。
// 会話を切り替えるたびに世代番号を進め、古い世代宛ての応答とイベントは捨てる。
type Sync struct {
	mu      sync.Mutex
	client  Client
	store   realtime.Store
	adminID string

	conversations []model.Conversation
	selectedID    string
	messages      []model.Message
	draft         string
	lastErr       error

	gen     int
	convSub realtime.Subscription
	msgSub  realtime.Subscription

	openMenuID string

	newID func() string
	now   func() time.Time
}

func New(client Client, store realtime.Store, adminID string) *Sync {
	return &Sync{
		client:  client,
		store:   store,
		adminID: adminID,
		newID:   func() string { return model.PendingIDPrefix + uuid.NewString() },
		now:     time.Now,
	}
}

// Startは会話一覧の購読を開始して初回ロードを行う。
func (s *Sync) Start(ctx context.Context) error {
	sub, err := s.store.Subscribe(ctx, realtime.Channel{
		Table: model.Conversation{}.TableName(),
	}, func(realtime.Event) {
		// どのイベントでも一覧を丸ごと取り直す
		s.loadConversations(ctx)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.convSub = sub
	s.mu.Unlock()

	s.loadConversations(ctx)
	return nil
}

func (s *Sync) Close() error {
	s.mu.Lock()
	convSub := s.convSub
	msgSub := s.msgSub
	s.convSub = nil
	s.msgSub = nil
	s.gen++
	s.mu.Unlock()

	if convSub != nil {
		_ = convSub.Close()
	}
	if msgSub != nil {
		_ = msgSub.Close()
	}
	return nil
}

// loadConversationsは一覧を取り直し、必要なら選択を付け替える。
// 未選択なら先頭を自動選択、選択中の会話が消えていたら残りの先頭へ。
func (s *Sync) loadConversations(ctx context.Context) {
	items, err := s.client.Conversations(ctx)
	if err != nil {
		s.setErr(err)
		return
	}

	s.mu.Lock()
	s.conversations = items

	target := ""
	if s.selectedID == "" {
		if len(items) > 0 {
			target = items[0].ID
		}
	} else {
		found := false
		for _, c := range items {
			if c.ID == s.selectedID {
				found = true
				break
			}
		}
		if !found {
			if len(items) > 0 {
				target = items[0].ID
			} else {
				// 全部消えた。選択解除だけする。
				s.selectedID = ""
				s.messages = nil
				s.gen++
				msgSub := s.msgSub
				s.msgSub = nil
				s.mu.Unlock()
				if msgSub != nil {
					_ = msgSub.Close()
				}
				return
			}
		}
	}
	s.mu.Unlock()

	if target != "" {
		_ = s.Select(ctx, target)
	}
}

// Selectは選択会話を切り替える。同じidなら何もしない。
// 旧購読を先に畳んでから、取得→既読化→購読の順で張り直す。
func (s *Sync) Select(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	if s.selectedID == conversationID {
		s.mu.Unlock()
		return nil
	}
	s.selectedID = conversationID
	s.gen++
	gen := s.gen
	s.openMenuID = ""
	oldSub := s.msgSub
	s.msgSub = nil
	s.mu.Unlock()

	if oldSub != nil {
		_ = oldSub.Close()
	}

	msgs, err := s.client.Messages(ctx, conversationID)
	if err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	if s.gen != gen {
		// もう別の会話が選ばれている。この応答は捨てる。
		s.mu.Unlock()
		return nil
	}
	s.messages = msgs
	s.mu.Unlock()

	// 既読化は楽観更新。失敗は無視する。
	s.markReadOptimistic(gen, conversationID)
	_ = s.client.MarkRead(ctx, conversationID, s.adminID)

	sub, err := s.store.Subscribe(ctx, realtime.Channel{
		Table:  model.Message{}.TableName(),
		Filter: &realtime.Filter{Column: "conversation_id", Equals: conversationID},
	}, func(ev realtime.Event) {
		s.handleMessageEvent(gen, ev)
	})
	if err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		_ = sub.Close()
		return nil
	}
	s.msgSub = sub
	s.mu.Unlock()
	return nil
}

// unread_count=0とlast_admin_read_atをローカルへ即時反映する。
func (s *Sync) markReadOptimistic(gen int, conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	now := s.now()
	for i := range s.conversations {
		if s.conversations[i].ID == conversationID {
			s.conversations[i].UnreadCount = 0
			s.conversations[i].LastAdminReadAt = &now
			break
		}
	}
}

// 購読イベントの適用。INSERTはid重複を弾いて追加、UPDATEはidで差し替え、DELETEはidで除去。
func (s *Sync) handleMessageEvent(gen int, ev realtime.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}

	switch ev.Kind {
	case realtime.KindInsert:
		var m model.Message
		if err := json.Unmarshal(ev.New, &m); err != nil {
			return
		}
		for _, have := range s.messages {
			if have.ID == m.ID {
				return
			}
		}
		s.messages = append(s.messages, m)
		sort.SliceStable(s.messages, func(i, j int) bool {
			return s.messages[i].CreatedAt.Before(s.messages[j].CreatedAt)
		})

	case realtime.KindUpdate:
		var m model.Message
		if err := json.Unmarshal(ev.New, &m); err != nil {
			return
		}
		for i := range s.messages {
			if s.messages[i].ID == m.ID {
				s.messages[i] = m
				break
			}
		}

	case realtime.KindDelete:
		var m model.Message
		if err := json.Unmarshal(ev.Old, &m); err != nil {
			return
		}
		for i := range s.messages {
			if s.messages[i].ID == m.ID {
				s.messages = append(s.messages[:i], s.messages[i+1:]...)
				break
			}
		}
	}
}

// Sendは楽観送信。
// 下書きを即座にクリアして仮メッセージを足し、成功したら取得し直して本物に置き換える。
// 失敗しても仮メッセージは残す（操作者がエラーを見て判断する）。
func (s *Sync) Send(ctx context.Context) error {
	s.mu.Lock()
	if s.selectedID == "" {
		s.mu.Unlock()
		return nil
	}
	content := strings.TrimSpace(s.draft)
	if content == "" {
		s.mu.Unlock()
		return nil
	}
	s.draft = ""
	convID := s.selectedID
	gen := s.gen

	pending := model.Message{
		ID:             s.newID(),
		ConversationID: convID,
		SenderRole:     model.SenderRoleAdmin,
		SenderID:       s.adminID,
		Content:        content,
		CreatedAt:      s.now(),
	}
	s.messages = append(s.messages, pending)
	s.mu.Unlock()

	if err := s.client.Send(ctx, convID, s.adminID, content); err != nil {
		s.setErr(err)
		return err
	}

	msgs, err := s.client.Messages(ctx, convID)
	if err == nil {
		s.mu.Lock()
		if s.gen == gen {
			s.messages = msgs
		}
		s.mu.Unlock()
	}

	s.loadConversations(ctx)
	return nil
}

// CanRecallは取り消しを出してよいメッセージか。
// 管理者発で、未取り消しで、サーバー確定済みのものだけ。
func (s *Sync) CanRecall(m model.Message) bool {
	return m.SenderRole == model.SenderRoleAdmin && !m.IsRecalled && !m.Pending()
}

// Recallは楽観取り消し。即座にローカルを書き換え、失敗したら取得し直して戻す。
func (s *Sync) Recall(ctx context.Context, messageID string) error {
	s.mu.Lock()
	var target *model.Message
	for i := range s.messages {
		if s.messages[i].ID == messageID {
			target = &s.messages[i]
			break
		}
	}
	if target == nil || !s.CanRecall(*target) {
		s.mu.Unlock()
		return nil
	}

	target.IsRecalled = true
	target.Content = model.RecalledContent
	s.openMenuID = ""
	convID := s.selectedID
	gen := s.gen
	s.mu.Unlock()

	if err := s.client.Recall(ctx, s.adminID, messageID); err != nil {
		s.setErr(err)

		// ロールバック。正とする状態を取り直す。
		msgs, ferr := s.client.Messages(ctx, convID)
		if ferr == nil {
			s.mu.Lock()
			if s.gen == gen {
				s.messages = msgs
			}
			s.mu.Unlock()
		}
		return err
	}
	return nil
}

func (s *Sync) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

func (s *Sync) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *Sync) Conversations() []model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

func (s *Sync) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Sync) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

func (s *Sync) SelectedConversation() (model.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conversations {
		if c.ID == s.selectedID {
			return c, true
		}
	}
	return model.Conversation{}, false
}

// OpenMenuはメッセージidのアクションメニューを開く。開けるのは同時に1つ。
func (s *Sync) OpenMenu(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openMenuID = messageID
}

func (s *Sync) MenuFor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openMenuID
}

// PointerDownはメニュー外のクリックでメニューを閉じる。
func (s *Sync) PointerDown(insideMenu bool) {
	if insideMenu {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openMenuID = ""
}

// Errは直近のエラーを返して消す。
func (s *Sync) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.lastErr
	s.lastErr = nil
	return err
}

func (s *Sync) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}
