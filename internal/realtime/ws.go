package realtime

import (
	"context"
	"net/http"
	"sync"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// websocket越しの購読依頼。1本のコネクションで複数テーブルを購読できる。
type subscribeFrame struct {
	Subscribe *Channel `json:"subscribe"`
}

// HandleWSは /admin/api/realtime のwebsocketエンドポイント。
// クライアントからsubscribeフレームを受けて、合致するイベントを流す。
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()

	// 書き込みは購読ごとのgoroutineから来るので直列化する
	var writeMu sync.Mutex
	send := func(ev Event) {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = wsjson.Write(ctx, conn, ev)
	}

	var subs []Subscription
	defer func() {
		for _, s := range subs {
			_ = s.Close()
		}
	}()

	for {
		var frame subscribeFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			return
		}
		if frame.Subscribe == nil {
			continue
		}

		sub, err := h.Subscribe(ctx, *frame.Subscribe, send)
		if err != nil {
			return
		}
		subs = append(subs, sub)
	}
}

// WSDialerはコンソール側のStore実装。購読1件につきコネクション1本。
type WSDialer struct {
	URL        string
	HTTPClient *http.Client
	// Bearerトークン（外部IDプロバイダ発行）
	Token string
}

func NewWSDialer(url string, token string) *WSDialer {
	return &WSDialer{URL: url, Token: token}
}

type wsSubscription struct {
	conn   *websocket.Conn
	cancel context.CancelFunc
}

func (s *wsSubscription) Close() error {
	s.cancel()
	return s.conn.Close(websocket.StatusNormalClosure, "")
}

func (d *WSDialer) Subscribe(ctx context.Context, ch Channel, fn func(Event)) (Subscription, error) {
	opts := &websocket.DialOptions{HTTPClient: d.HTTPClient}
	if d.Token != "" {
		opts.HTTPHeader = http.Header{"Authorization": []string{"Bearer " + d.Token}}
	}

	conn, _, err := websocket.Dial(ctx, d.URL, opts)
	if err != nil {
		return nil, err
	}

	if err := wsjson.Write(ctx, conn, subscribeFrame{Subscribe: &ch}); err != nil {
		conn.Close(websocket.StatusInternalError, "subscribe failed")
		return nil, err
	}

	readCtx, cancel := context.WithCancel(ctx)
	sub := &wsSubscription{conn: conn, cancel: cancel}

	go func() {
		for {
			var ev Event
			if err := wsjson.Read(readCtx, conn, &ev); err != nil {
				return
			}
			if ch.Matches(ev) {
				fn(ev)
			}
		}
	}()

	return sub, nil
}
