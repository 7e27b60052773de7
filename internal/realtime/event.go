package realtime

import (
	"context"
	"encoding/json"
)

type Kind string

const (
	KindInsert Kind = "INSERT"
	KindUpdate Kind = "UPDATE"
	KindDelete Kind = "DELETE"
)

// テーブル行の変更通知。NewはINSERT/UPDATE後の行、OldはDELETEされた行。
type Event struct {
	Table string          `json:"table"`
	Kind  Kind            `json:"kind"`
	New   json.RawMessage `json:"new,omitempty"`
	Old   json.RawMessage `json:"old,omitempty"`
}

// 行のカラム値による絞り込み（conversation_id=eq.xxx相当）。
type Filter struct {
	Column string `json:"column"`
	Equals string `json:"equals"`
}

// 購読条件。Kindsが空なら全イベント。
type Channel struct {
	Table  string  `json:"table"`
	Kinds  []Kind  `json:"events,omitempty"`
	Filter *Filter `json:"filter,omitempty"`
}

type Subscription interface {
	Close() error
}

// Storeは行変更イベントの購読口。
// サーバー内ではHub、コンソール側ではwebsocketクライアントが実装する。
type Store interface {
	Subscribe(ctx context.Context, ch Channel, fn func(Event)) (Subscription, error)
}

// Matchesはイベントが購読条件に合うかどうか。
func (ch Channel) Matches(ev Event) bool {
	if ch.Table != "" && ch.Table != ev.Table {
		return false
	}
	if len(ch.Kinds) > 0 {
		ok := false
		for _, k := range ch.Kinds {
			if k == ev.Kind {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if ch.Filter != nil {
		return rowColumnEquals(ev.New, ch.Filter) || rowColumnEquals(ev.Old, ch.Filter)
	}
	return true
}

func rowColumnEquals(row json.RawMessage, f *Filter) bool {
	if len(row) == 0 {
		return false
	}
	var m map[string]any
	if err := json.Unmarshal(row, &m); err != nil {
		return false
	}
	v, ok := m[f.Column]
	if !ok {
		return false
	}
	s, ok := v.(string)
	return ok && s == f.Equals
}
