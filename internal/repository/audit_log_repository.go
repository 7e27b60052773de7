package repository

import (
	"context"

	"laptop-admin/internal/domain/model"
)

type AuditLogFilter struct {
	Page         int
	Limit        int
	ActorUserID  string
	Action       string
	ResourceType string
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
