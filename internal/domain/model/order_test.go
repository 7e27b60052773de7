package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_TransitionTable(t *testing.T) {
	cases := map[OrderStatus][]OrderStatus{
		OrderStatusPendingConfirm:  {OrderStatusPendingConfirm, OrderStatusPendingPickup, OrderStatusCancelled},
		OrderStatusPendingPickup:   {OrderStatusPendingPickup, OrderStatusPendingDelivery, OrderStatusCancelled},
		OrderStatusPendingDelivery: {OrderStatusPendingDelivery, OrderStatusCompleted, OrderStatusReturned},
		OrderStatusCompleted:       {OrderStatusCompleted},
		OrderStatusCancelled:       {OrderStatusCancelled},
		OrderStatusReturned:        {OrderStatusReturned},
	}

	for from, wantTargets := range cases {
		assert.ElementsMatch(t, wantTargets, from.AllowedTargets(), "from=%s", from)

		//表に無い遷移は全部falseになること
		for _, to := range AllOrderStatuses {
			want := false
			for _, w := range wantTargets {
				if w == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransition(to), "from=%s to=%s", from, to)
		}
	}
}

func TestOrderStatus_TerminalsSelfLoopOnly(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled, OrderStatusReturned} {
		assert.True(t, s.IsTerminal())
		assert.Equal(t, []OrderStatus{s}, s.AllowedTargets())
	}

	for _, s := range []OrderStatus{OrderStatusPendingConfirm, OrderStatusPendingPickup, OrderStatusPendingDelivery} {
		assert.False(t, s.IsTerminal())
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range AllOrderStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, OrderStatus("SHIPPED").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrder_EditLocked_Boundary(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

	//ちょうど3日は未ロック、少しでも超えたらロック
	exactly := Order{Status: OrderStatusCompleted, CreatedAt: now.Add(-3 * 24 * time.Hour)}
	assert.False(t, exactly.EditLocked(now))

	over := Order{Status: OrderStatusCompleted, CreatedAt: now.Add(-3*24*time.Hour - time.Second)}
	assert.True(t, over.EditLocked(now))

	cancelled := Order{Status: OrderStatusCancelled, CreatedAt: now.Add(-4 * 24 * time.Hour)}
	assert.True(t, cancelled.EditLocked(now))
}

func TestOrder_EditLocked_ReturnedNeverLocks(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

	//RETURNEDは何日経ってもロックされない（現行挙動の維持）
	o := Order{Status: OrderStatusReturned, CreatedAt: now.Add(-365 * 24 * time.Hour)}
	assert.False(t, o.EditLocked(now))
}

func TestOrder_EditLocked_PendingNeverLocks(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

	for _, s := range []OrderStatus{OrderStatusPendingConfirm, OrderStatusPendingPickup, OrderStatusPendingDelivery} {
		o := Order{Status: s, CreatedAt: now.Add(-30 * 24 * time.Hour)}
		assert.False(t, o.EditLocked(now), "status=%s", s)
	}
}

func strPtr(s string) *string { return &s }

func TestOrder_HasPendingCancelRequest(t *testing.T) {
	o := Order{
		Status:              OrderStatusPendingConfirm,
		CancelRequestReason: strPtr("changed mind"),
	}
	assert.True(t, o.HasPendingCancelRequest())

	//却下済みなら未処理ではない
	o.CancelRejectReason = strPtr("too late")
	assert.False(t, o.HasPendingCancelRequest())

	//CANCELLED/COMPLETEDでは出さない
	o = Order{Status: OrderStatusCancelled, CancelRequestReason: strPtr("x")}
	assert.False(t, o.HasPendingCancelRequest())
	o = Order{Status: OrderStatusCompleted, CancelRequestReason: strPtr("x")}
	assert.False(t, o.HasPendingCancelRequest())

	//要求なし
	assert.False(t, Order{Status: OrderStatusPendingConfirm}.HasPendingCancelRequest())
}

func TestOrder_HasPendingReturnRequest(t *testing.T) {
	o := Order{
		Status:              OrderStatusPendingDelivery,
		ReturnRequestReason: strPtr("defective"),
	}
	assert.True(t, o.HasPendingReturnRequest())

	o.ReturnRejectReason = strPtr("no")
	assert.False(t, o.HasPendingReturnRequest())

	o = Order{Status: OrderStatusReturned, ReturnRequestReason: strPtr("x")}
	assert.False(t, o.HasPendingReturnRequest())
}

func TestOrder_ManualStatusOptions(t *testing.T) {
	//通常の注文：CANCELLED/RETURNED以外の全ステータス
	o := Order{Status: OrderStatusPendingConfirm}
	assert.Equal(t, []OrderStatus{
		OrderStatusPendingConfirm,
		OrderStatusPendingPickup,
		OrderStatusPendingDelivery,
		OrderStatusCompleted,
	}, o.ManualStatusOptions())

	//現にCANCELLED/RETURNEDの注文は自分自身だけ
	assert.Equal(t, []OrderStatus{OrderStatusCancelled}, Order{Status: OrderStatusCancelled}.ManualStatusOptions())
	assert.Equal(t, []OrderStatus{OrderStatusReturned}, Order{Status: OrderStatusReturned}.ManualStatusOptions())
}

func TestMessage_PendingAndDisplayContent(t *testing.T) {
	pending := Message{ID: PendingIDPrefix + "abc", Content: "hi"}
	assert.True(t, pending.Pending())
	assert.Equal(t, "hi", pending.DisplayContent())

	confirmed := Message{ID: "3f1c", Content: "hello", IsRecalled: true}
	assert.False(t, confirmed.Pending())
	assert.Equal(t, RecalledContent, confirmed.DisplayContent())
}
