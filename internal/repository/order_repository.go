package repository

import (
	"context"
	"errors"
	"time"

	"laptop-admin/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 管理画面の注文一覧の絞り込み。
// Monthは対象月の月初（その月の範囲でcreated_atを絞る）。
type AdminOrderListFilter struct {
	Page     int
	PageSize int
	Q        string
	Status   string
	Month    *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error

	//キャンセル要求の却下（statusは変えない）
	RejectCancel(ctx context.Context, orderID string, reason string, at time.Time) error
	//返品要求の却下（statusは変えない）
	RejectReturn(ctx context.Context, orderID string, reason string) error
}
