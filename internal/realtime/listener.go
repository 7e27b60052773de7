package realtime

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
)

// NOTIFYのチャネル名。ショップ側アプリのトリガーと合わせてある。
const notifyChannel = "row_events"

// ListenAndForwardはpostgresのLISTEN/NOTIFYを購読してHubへ流す。
// 他プロセス（ショップ側アプリ）が書いた行の変更もここ経由で届く。
// ctxが閉じるかコネクションが切れたら返る。
func ListenAndForward(ctx context.Context, dsn string, h *Hub) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "listen "+notifyChannel); err != nil {
		return err
	}

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var ev Event
		if err := json.Unmarshal([]byte(n.Payload), &ev); err != nil {
			//壊れたpayloadは捨てる
			continue
		}
		h.Publish(ev)
	}
}
