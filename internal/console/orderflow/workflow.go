package orderflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"laptop-admin/internal/domain/model"
)

// 操作前の確認ゲート。falseを返すと何もしない。
type ConfirmFunc func(prompt string) bool

var (
	ErrUnknownOrder  = errors.New("unknown order")
	ErrLocked        = errors.New("order is locked")
	ErrSpecialTarget = errors.New("cancelled/returned must go through the approve actions")
	ErrBadTransition = errors.New("transition not allowed")
	ErrReasonNeeded  = errors.New("reason required")
	ErrNoPending     = errors.New("no pending request")
)

// Workflowは注文一覧と詳細の状態を持ち、遷移ルールをネットワークの手前で検証する。
// 書き込み成功後は必ず一覧（と表示中の詳細）を取り直す。楽観更新はしない。
type Workflow struct {
	mu      sync.Mutex
	client  Client
	confirm ConfirmFunc
	now     func() time.Time

	filter     ListQuery
	orders     []model.Order
	total      int64
	page       int
	selectedID string
	detail     *Detail
}

func New(client Client, confirm ConfirmFunc) *Workflow {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	return &Workflow{
		client:  client,
		confirm: confirm,
		now:     time.Now,
		filter:  ListQuery{Page: 1, PageSize: 20},
	}
}

func (w *Workflow) Orders() []model.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]model.Order, len(w.orders))
	copy(out, w.orders)
	return out
}

func (w *Workflow) Total() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.total
}

func (w *Workflow) Page() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.page
}

func (w *Workflow) SelectedID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedID
}

func (w *Workflow) Detail() (Detail, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.detail == nil {
		return Detail{}, false
	}
	return *w.detail, true
}

// SetFilterは検索条件を差し替える。次のLoadOrdersから効く。
func (w *Workflow) SetFilter(q string, status string, month string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filter.Q = strings.TrimSpace(q)
	w.filter.Status = status
	w.filter.Month = month
}

func (w *Workflow) LoadOrders(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	w.mu.Lock()
	q := w.filter
	q.Page = page
	w.mu.Unlock()

	res, err := w.client.ListOrders(ctx, q)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.orders = res.Items
	w.total = res.Total
	w.page = res.Page
	w.filter.Page = res.Page
	w.mu.Unlock()
	return nil
}

// ToggleDetailは同じidなら閉じる、違うidなら詳細を取得して開く。
func (w *Workflow) ToggleDetail(ctx context.Context, orderID string) error {
	w.mu.Lock()
	if w.selectedID == orderID {
		w.selectedID = ""
		w.detail = nil
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	d, err := w.client.OrderDetail(ctx, orderID)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.selectedID = orderID
	w.detail = &d
	w.mu.Unlock()
	return nil
}

// SetStatusは手動のステータス変更。
// CANCELLED/RETURNEDへはallowSpecialなしでは進めない（承認専用経路）。
func (w *Workflow) SetStatus(ctx context.Context, orderID string, target model.OrderStatus, allowSpecial bool) error {
	if !target.Valid() {
		return fmt.Errorf("invalid status %q", string(target))
	}

	o, ok := w.findOrder(orderID)
	if !ok {
		return ErrUnknownOrder
	}

	if (target == model.OrderStatusCancelled || target == model.OrderStatusReturned) && !allowSpecial {
		return ErrSpecialTarget
	}
	if o.EditLocked(w.now()) {
		return ErrLocked
	}
	if o.Status == target {
		return nil
	}
	if !o.Status.CanTransition(target) {
		return ErrBadTransition
	}

	if !w.confirm(fmt.Sprintf("change order %s to %s?", orderID, target)) {
		return nil
	}

	if err := w.client.UpdateStatus(ctx, orderID, target); err != nil {
		return err
	}
	return w.refreshAfterWrite(ctx, orderID)
}

// キャンセル要求の承認。遷移表の制限は通らない。
func (w *Workflow) ApproveCancel(ctx context.Context, orderID string) error {
	o, ok := w.findOrder(orderID)
	if !ok {
		return ErrUnknownOrder
	}
	if !w.CanResolveCancel(o) {
		return ErrNoPending
	}

	if !w.confirm(fmt.Sprintf("approve cancellation of order %s?", orderID)) {
		return nil
	}

	if err := w.client.ApproveCancel(ctx, orderID); err != nil {
		return err
	}
	return w.refreshAfterWrite(ctx, orderID)
}

// キャンセル要求の却下。理由は必須、ステータスは変わらない。
func (w *Workflow) RejectCancel(ctx context.Context, orderID string, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonNeeded
	}

	o, ok := w.findOrder(orderID)
	if !ok {
		return ErrUnknownOrder
	}
	if !w.CanResolveCancel(o) {
		return ErrNoPending
	}

	if err := w.client.RejectCancel(ctx, orderID, strings.TrimSpace(reason)); err != nil {
		return err
	}
	return w.refreshAfterWrite(ctx, orderID)
}

// 返品要求の承認。
func (w *Workflow) AcceptReturn(ctx context.Context, orderID string) error {
	o, ok := w.findOrder(orderID)
	if !ok {
		return ErrUnknownOrder
	}
	if !w.CanResolveReturn(o) {
		return ErrNoPending
	}

	if !w.confirm(fmt.Sprintf("accept return of order %s?", orderID)) {
		return nil
	}

	if err := w.client.AcceptReturn(ctx, orderID); err != nil {
		return err
	}
	return w.refreshAfterWrite(ctx, orderID)
}

// 返品要求の却下。
func (w *Workflow) RejectReturn(ctx context.Context, orderID string, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonNeeded
	}

	o, ok := w.findOrder(orderID)
	if !ok {
		return ErrUnknownOrder
	}
	if !w.CanResolveReturn(o) {
		return ErrNoPending
	}

	if err := w.client.RejectReturn(ctx, orderID, strings.TrimSpace(reason)); err != nil {
		return err
	}
	return w.refreshAfterWrite(ctx, orderID)
}

// 承認/却下ボタンを出してよいか。
func (w *Workflow) CanResolveCancel(o model.Order) bool {
	return !o.EditLocked(w.now()) && o.HasPendingCancelRequest()
}

func (w *Workflow) CanResolveReturn(o model.Order) bool {
	return !o.EditLocked(w.now()) && o.HasPendingReturnRequest()
}

func (w *Workflow) findOrder(orderID string) (model.Order, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, o := range w.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	if w.detail != nil && w.detail.Order.ID == orderID {
		return w.detail.Order, true
	}
	return model.Order{}, false
}

// 書き込み成功後は一覧を取り直す。表示中の注文なら詳細も取り直す。
func (w *Workflow) refreshAfterWrite(ctx context.Context, orderID string) error {
	w.mu.Lock()
	page := w.page
	selected := w.selectedID
	w.mu.Unlock()

	if err := w.LoadOrders(ctx, page); err != nil {
		return err
	}

	if selected == orderID {
		d, err := w.client.OrderDetail(ctx, orderID)
		if err != nil {
			return err
		}
		w.mu.Lock()
		w.detail = &d
		w.mu.Unlock()
	}
	return nil
}
