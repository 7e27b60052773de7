package model

import "time"

type OrderStatus string

const (
	OrderStatusPendingConfirm  OrderStatus = "PENDING_CONFIRM"
	OrderStatusPendingPickup   OrderStatus = "PENDING_PICKUP"
	OrderStatusPendingDelivery OrderStatus = "PENDING_DELIVERY"
	OrderStatusCompleted       OrderStatus = "COMPLETED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusReturned        OrderStatus = "RETURNED"
)

// 手動で選べる遷移先。終端ステータスは自分自身のみ。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingConfirm:  {OrderStatusPendingConfirm, OrderStatusPendingPickup, OrderStatusCancelled},
	OrderStatusPendingPickup:   {OrderStatusPendingPickup, OrderStatusPendingDelivery, OrderStatusCancelled},
	OrderStatusPendingDelivery: {OrderStatusPendingDelivery, OrderStatusCompleted, OrderStatusReturned},
	OrderStatusCompleted:       {OrderStatusCompleted},
	OrderStatusCancelled:       {OrderStatusCancelled},
	OrderStatusReturned:        {OrderStatusReturned},
}

var AllOrderStatuses = []OrderStatus{
	OrderStatusPendingConfirm,
	OrderStatusPendingPickup,
	OrderStatusPendingDelivery,
	OrderStatusCompleted,
	OrderStatusCancelled,
	OrderStatusReturned,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled || s == OrderStatusReturned
}

// AllowedTargetsは遷移表のコピーを返す。未知のステータスは自分自身のみ。
func (s OrderStatus) AllowedTargets() []OrderStatus {
	ts, ok := orderTransitions[s]
	if !ok {
		return []OrderStatus{s}
	}
	out := make([]OrderStatus, len(ts))
	copy(out, ts)
	return out
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, t := range s.AllowedTargets() {
		if t == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID            string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string      `gorm:"type:uuid;not null;index" json:"user_id"`
	PhoneNumber   string      `gorm:"type:varchar(20)" json:"phone_number"`
	Address       string      `gorm:"type:text" json:"address"`
	PaymentMethod string      `gorm:"type:varchar(50)" json:"payment_method"`
	Content       string      `gorm:"type:text" json:"content"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount   int64       `gorm:"not null" json:"total_amount"`

	// キャンセル要求とその却下（要求が無いのに却下だけ立つことは無い）
	CancelRequestReason *string    `gorm:"type:text" json:"cancel_request_reason"`
	CancelRequestAt     *time.Time `json:"cancel_request_at"`
	CancelRejectReason  *string    `gorm:"type:text" json:"cancel_reject_reason"`
	CancelRejectAt      *time.Time `json:"cancel_reject_at"`

	// 返品要求とその却下
	ReturnRequestReason *string    `gorm:"type:text" json:"return_request_reason"`
	ReturnRequestAt     *time.Time `json:"return_request_at"`
	ReturnRejectReason  *string    `gorm:"type:text" json:"return_reject_reason"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

const orderEditLockAfter = 3 * 24 * time.Hour

// EditLockedは作成から3日を過ぎた完了/キャンセル済み注文の編集を禁止する。
// RETURNEDは対象外（現行挙動をそのまま維持している）。
func (o Order) EditLocked(now time.Time) bool {
	if o.Status != OrderStatusCompleted && o.Status != OrderStatusCancelled {
		return false
	}
	return now.Sub(o.CreatedAt) > orderEditLockAfter
}

// 未処理のキャンセル要求が残っているか
func (o Order) HasPendingCancelRequest() bool {
	if o.CancelRequestReason == nil || *o.CancelRequestReason == "" {
		return false
	}
	if o.CancelRejectReason != nil && *o.CancelRejectReason != "" {
		return false
	}
	return o.Status != OrderStatusCancelled && o.Status != OrderStatusCompleted
}

// 未処理の返品要求が残っているか
func (o Order) HasPendingReturnRequest() bool {
	if o.ReturnRequestReason == nil || *o.ReturnRequestReason == "" {
		return false
	}
	if o.ReturnRejectReason != nil && *o.ReturnRejectReason != "" {
		return false
	}
	return o.Status != OrderStatusReturned
}

// ManualStatusOptionsはステータスselectに出す選択肢。
// CANCELLED/RETURNEDは専用の承認操作からしか入れないので除外する。
// ただし現にその状態の注文は表示用に自分自身だけを返す。
func (o Order) ManualStatusOptions() []OrderStatus {
	if o.Status == OrderStatusCancelled || o.Status == OrderStatusReturned {
		return []OrderStatus{o.Status}
	}
	opts := make([]OrderStatus, 0, len(AllOrderStatuses))
	for _, s := range AllOrderStatuses {
		if s == OrderStatusCancelled || s == OrderStatusReturned {
			continue
		}
		opts = append(opts, s)
	}
	return opts
}
