package model

import "time"

// 注文明細。商品名・価格は注文時点のスナップショット。
type OrderItem struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID  string `gorm:"type:uuid;not null;index" json:"-"`
	LaptopID string `gorm:"type:uuid;not null" json:"laptop_id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	ImageURL string `gorm:"type:text" json:"image_url"`
	Price    int64  `gorm:"not null" json:"price"`
	Quantity int64  `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-"`
}
