package model

import "time"

// お客さんとのチャット1本分。
// unread_countはlast_admin_read_at以降のユーザー発言数。
type Conversation struct {
	ID              string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string     `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName        string     `gorm:"type:varchar(255)" json:"user_name"`
	UserAvatarURL   string     `gorm:"type:text" json:"user_avatar_url"`
	Status          string     `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	UnreadCount     int        `gorm:"not null;default:0" json:"unread_count"`
	LastMessageAt   *time.Time `json:"last_message_at"`
	LastUserReadAt  *time.Time `json:"last_user_read_at"`
	LastAdminReadAt *time.Time `json:"last_admin_read_at"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Conversation) TableName() string {
	return "shop_conversations"
}
