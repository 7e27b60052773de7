package model

import (
	"strings"
	"time"
)

type SenderRole string

const (
	SenderRoleAdmin SenderRole = "admin"
	SenderRoleUser  SenderRole = "user"
)

// 送信確定前のローカル仮メッセージに付けるIDの接頭辞。
// サーバー発行のuuidとは絶対に衝突しない。
const PendingIDPrefix = "tmp-"

// 取り消し済みメッセージの本文の代わりに出す固定文言。
const RecalledContent = "Message recalled"

type Message struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID string     `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderRole     SenderRole `gorm:"type:varchar(10);not null" json:"sender_role"`
	SenderID       string     `gorm:"type:uuid" json:"sender_id"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	IsRecalled     bool       `gorm:"not null;default:false" json:"is_recalled"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "shop_messages"
}

// Pendingはまだサーバー確定していないローカル仮メッセージかどうか。
func (m Message) Pending() bool {
	return strings.HasPrefix(m.ID, PendingIDPrefix)
}

// DisplayContentは表示用の本文。取り消し済みなら固定文言に差し替える。
func (m Message) DisplayContent() string {
	if m.IsRecalled {
		return RecalledContent
	}
	return m.Content
}
