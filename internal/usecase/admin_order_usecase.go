package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"laptop-admin/internal/domain/model"
	repo "laptop-admin/internal/repository"
)

type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
}

func NewAdminOrderUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, auditRepo: auditRepo}
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

type OrderListOutput struct {
	Items []model.Order `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
}

type OrderDetailOutput struct {
	Order model.Order       `json:"order"`
	Items []model.OrderItem `json:"items"`
}

// 注文一覧（q/status/月/ページ）
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (OrderListOutput, error) {
	// page/page_sizeの最低限チェック
	if f.Page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page_size")
	}
	if len(f.Q) > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	if f.Status != "" && !model.OrderStatus(f.Status).Valid() {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = OrderListOutput{Items: items, Total: total, Page: f.Page}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func (u *AdminOrderUsecase) Detail(ctx context.Context, orderID string) (OrderDetailOutput, error) {
	if strings.TrimSpace(orderID) == "" {
		return OrderDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderDetailOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderDetailOutput{Order: o, Items: items}
		return nil
	})

	if err != nil {
		return OrderDetailOutput{}, err
	}
	return out, nil
}

// ステータス更新。遷移表に無い遷移は拒否する。
// CANCELLED/RETURNEDへは専用の承認操作（ApproveCancel/AcceptReturn）から入る。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminID string, orderID string, in AdminUpdateOrderStatusInput) error {
	if actorAdminID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !newStatus.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			return nil
		}
		// 終端ガード
		if o.Status.IsTerminal() {
			return NewHTTPError(http.StatusBadRequest, "cannot change "+strings.ToLower(string(o.Status))+" order")
		}
		// 遷移表チェック
		if !o.Status.CanTransition(newStatus) {
			return NewHTTPError(http.StatusBadRequest, "invalid transition")
		}

		return u.applyStatus(ctx, r, o, newStatus, actorAdminID)
	})
}

// キャンセル要求の承認。status=CANCELLEDにする。
// 手動遷移の制限は通らない（要求ベースの専用経路）。
func (u *AdminOrderUsecase) ApproveCancel(ctx context.Context, actorAdminID string, orderID string) error {
	if actorAdminID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !o.HasPendingCancelRequest() {
			return NewHTTPError(http.StatusBadRequest, "no pending cancel request")
		}

		return u.applyStatus(ctx, r, o, model.OrderStatusCancelled, actorAdminID)
	})
}

// キャンセル要求の却下。statusは変えずに却下理由を残す。
func (u *AdminOrderUsecase) RejectCancel(ctx context.Context, actorAdminID string, orderID string, reason string) error {
	if actorAdminID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return NewHTTPError(http.StatusBadRequest, "reason required")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !o.HasPendingCancelRequest() {
			return NewHTTPError(http.StatusBadRequest, "no pending cancel request")
		}

		now := time.Now()
		if err := r.Orders().RejectCancel(ctx, orderID, reason, now); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminID,
			Action:       model.AuditActionRejectCancelRequest,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			AfterJSON:    `{"cancel_reject_reason":"` + reason + `"}`,
			CreatedAt:    now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// 返品要求の承認。status=RETURNEDにする。
func (u *AdminOrderUsecase) AcceptReturn(ctx context.Context, actorAdminID string, orderID string) error {
	if actorAdminID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !o.HasPendingReturnRequest() {
			return NewHTTPError(http.StatusBadRequest, "no pending return request")
		}

		return u.applyStatus(ctx, r, o, model.OrderStatusReturned, actorAdminID)
	})
}

// 返品要求の却下。
func (u *AdminOrderUsecase) RejectReturn(ctx context.Context, actorAdminID string, orderID string, reason string) error {
	if actorAdminID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(orderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return NewHTTPError(http.StatusBadRequest, "reason required")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !o.HasPendingReturnRequest() {
			return NewHTTPError(http.StatusBadRequest, "no pending return request")
		}

		if err := r.Orders().RejectReturn(ctx, orderID, reason); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminID,
			Action:       model.AuditActionRejectReturnRequest,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			AfterJSON:    `{"return_reject_reason":"` + reason + `"}`,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// ステータスを書き換えて監査ログを残す共通処理。
func (u *AdminOrderUsecase) applyStatus(ctx context.Context, r repo.TxRepos, o model.Order, newStatus model.OrderStatus, actorAdminID string) error {
	beforeStatus := string(o.Status)
	if err := r.Orders().UpdateStatus(ctx, o.ID, newStatus); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// ★監査ログ（UPDATE_ORDER_STATUS）
	beforeJSON := `{"status":"` + beforeStatus + `"}`
	afterJSON := `{"status":"` + string(newStatus) + `"}`
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminID,
		Action:       model.AuditActionUpdateOrderStatus,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   o.ID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 月パラメータ（"2025-11"）を月初のtime.Timeへ。
func ParseMonth(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
