package repository

import (
	"context"

	"laptop-admin/internal/domain/model"
)

type OrderItemRepository interface {
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
}
