package realtime

import (
	"context"
	"encoding/json"
	"sync"
)

// Hubはプロセス内のイベント配送。Storeを実装しているので
// コンソールのテストやシングルバイナリ構成でもそのまま使える。
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*hubSub
}

type hubSub struct {
	id  int
	ch  Channel
	fn  func(Event)
	hub *Hub
}

func (s *hubSub) Close() error {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	delete(s.hub.subs, s.id)
	return nil
}

func NewHub() *Hub {
	return &Hub{subs: map[int]*hubSub{}}
}

func (h *Hub) Subscribe(ctx context.Context, ch Channel, fn func(Event)) (Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	s := &hubSub{id: h.nextID, ch: ch, fn: fn, hub: h}
	h.subs[s.id] = s
	return s, nil
}

// Publishは条件に合う購読者へ同期的に配る。
// ロックを持ったままハンドラを呼ばない。
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	fns := make([]func(Event), 0, len(h.subs))
	for _, s := range h.subs {
		if s.ch.Matches(ev) {
			fns = append(fns, s.fn)
		}
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// PublishRowは行をJSONにしてPublishするヘルパ。
// marshal失敗は通知を落とすだけ（書き込み自体は成功している）。
func (h *Hub) PublishRow(table string, kind Kind, newRow any, oldRow any) {
	ev := Event{Table: table, Kind: kind}
	if newRow != nil {
		b, err := json.Marshal(newRow)
		if err != nil {
			return
		}
		ev.New = b
	}
	if oldRow != nil {
		b, err := json.Marshal(oldRow)
		if err != nil {
			return
		}
		ev.Old = b
	}
	h.Publish(ev)
}

// SubscriberCountはテスト用。
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
