package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Profileは外部IDプロバイダのユーザーに紐づく属性。
// 認証そのものは外部側の責務で、ここではidと属性だけを持つ。
type Profile struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string `gorm:"type:varchar(255)" json:"full_name"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role      Role   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	AvatarURL string `gorm:"type:text" json:"avatar_url"`
	IsLocked  bool   `gorm:"not null;default:false" json:"is_locked"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
