package orderflow

import (
	"context"

	"laptop-admin/internal/domain/model"
)

// 一覧の検索条件。Monthは"2025-11"形式。
type ListQuery struct {
	Q        string
	Status   string
	Month    string
	Page     int
	PageSize int
}

type ListResult struct {
	Items []model.Order
	Total int64
	Page  int
}

type Detail struct {
	Order model.Order
	Items []model.OrderItem
}

// Clientは注文APIの約束。実装はordersapi。
type Client interface {
	ListOrders(ctx context.Context, q ListQuery) (ListResult, error)
	OrderDetail(ctx context.Context, orderID string) (Detail, error)

	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	ApproveCancel(ctx context.Context, orderID string) error
	RejectCancel(ctx context.Context, orderID string, reason string) error
	AcceptReturn(ctx context.Context, orderID string) error
	RejectReturn(ctx context.Context, orderID string, reason string) error
}
