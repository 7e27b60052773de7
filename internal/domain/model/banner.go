package model

import "time"

// トップページに出すバナー。sort_index昇順で表示する。
type Banner struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	ImageURL  string    `gorm:"column:imageurl;type:text" json:"imageurl"`
	SortIndex int       `gorm:"not null;default:0;index" json:"sort_index"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
