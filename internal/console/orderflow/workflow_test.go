package orderflow_test

import (
	"context"
	"testing"
	"time"

	"laptop-admin/internal/console/orderflow"
	"laptop-admin/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ClientMock struct{ mock.Mock }

func (m *ClientMock) ListOrders(ctx context.Context, q orderflow.ListQuery) (orderflow.ListResult, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).(orderflow.ListResult)
	return res, args.Error(1)
}

func (m *ClientMock) OrderDetail(ctx context.Context, orderID string) (orderflow.Detail, error) {
	args := m.Called(ctx, orderID)
	d, _ := args.Get(0).(orderflow.Detail)
	return d, args.Error(1)
}

func (m *ClientMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *ClientMock) ApproveCancel(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *ClientMock) RejectCancel(ctx context.Context, orderID string, reason string) error {
	args := m.Called(ctx, orderID, reason)
	return args.Error(0)
}

func (m *ClientMock) AcceptReturn(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *ClientMock) RejectReturn(ctx context.Context, orderID string, reason string) error {
	args := m.Called(ctx, orderID, reason)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

const orderID = "0d5b43a8-1ce4-4f43-9d2f-000000000002"

// 一覧に1件だけ積んだWorkflowを作る
func loadedWorkflow(t *testing.T, client *ClientMock, o model.Order, confirm orderflow.ConfirmFunc) *orderflow.Workflow {
	t.Helper()

	w := orderflow.New(client, confirm)
	client.On("ListOrders", mock.Anything, mock.Anything).Return(orderflow.ListResult{
		Items: []model.Order{o},
		Total: 1,
		Page:  1,
	}, nil)
	assert.NoError(t, w.LoadOrders(context.Background(), 1))
	return w
}

func TestWorkflow_SetStatus_RejectsSpecialTargetWithoutFlag(t *testing.T) {
	client := new(ClientMock)
	o := model.Order{ID: orderID, Status: model.OrderStatusPendingConfirm, CreatedAt: time.Now()}
	w := loadedWorkflow(t, client, o, nil)

	err := w.SetStatus(context.Background(), orderID, model.OrderStatusCancelled, false)
	assert.ErrorIs(t, err, orderflow.ErrSpecialTarget)

	err = w.SetStatus(context.Background(), orderID, model.OrderStatusReturned, false)
	assert.ErrorIs(t, err, orderflow.ErrSpecialTarget)

	//ネットワークには出ない
	client.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_SetStatus_RejectsIllegalTransition(t *testing.T) {
	client := new(ClientMock)
	o := model.Order{ID: orderID, Status: model.OrderStatusPendingConfirm, CreatedAt: time.Now()}
	w := loadedWorkflow(t, client, o, nil)

	err := w.SetStatus(context.Background(), orderID, model.OrderStatusPendingDelivery, false)
	assert.ErrorIs(t, err, orderflow.ErrBadTransition)
	client.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_SetStatus_ConfirmGateBlocks(t *testing.T) {
	client := new(ClientMock)
	o := model.Order{ID: orderID, Status: model.OrderStatusPendingConfirm, CreatedAt: time.Now()}

	declined := false
	w := loadedWorkflow(t, client, o, func(string) bool {
		declined = true
		return false
	})

	err := w.SetStatus(context.Background(), orderID, model.OrderStatusPendingPickup, false)
	assert.NoError(t, err)
	assert.True(t, declined)
	client.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_SetStatus_Success_RefreshesList(t *testing.T) {
	client := new(ClientMock)
	o := model.Order{ID: orderID, Status: model.OrderStatusPendingConfirm, CreatedAt: time.Now()}
	w := loadedWorkflow(t, client, o, nil)

	client.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusPendingPickup).Return(nil)

	err := w.SetStatus(context.Background(), orderID, model.OrderStatusPendingPickup, false)
	assert.NoError(t, err)

	//初回ロード + 書き込み後の再取得
	client.AssertNumberOfCalls(t, "ListOrders", 2)
	client.AssertExpectations(t)
}

func TestWorkflow_SetStatus_LockedOrder(t *testing.T) {
	client := new(ClientMock)
	o := model.Order{
		ID:        orderID,
		Status:    model.OrderStatusCompleted,
		CreatedAt: time.Now().Add(-4 * 24 * time.Hour),
	}
	w := loadedWorkflow(t, client, o, nil)

	err := w.SetStatus(context.Background(), orderID, model.OrderStatusCompleted, false)
	assert.ErrorIs(t, err, orderflow.ErrLocked)
}

func TestWorkflow_SetStatus_SameStatusNoOp(t *testing.T) {
	client := new(ClientMock)
	o := model.Order{ID: orderID, Status: model.OrderStatusPendingConfirm, CreatedAt: time.Now()}
	w := loadedWorkflow(t, client, o, nil)

	err := w.SetStatus(context.Background(), orderID, model.OrderStatusPendingConfirm, false)
	assert.NoError(t, err)
	client.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_CancelRequestScenario(t *testing.T) {
	//キャンセル要求が来ているPENDING_CONFIRMの注文：
	//承認/却下は出せるが、手動selectにCANCELLED/RETURNEDは出ない
	client := new(ClientMock)
	o := model.Order{
		ID:                  orderID,
		Status:              model.OrderStatusPendingConfirm,
		CancelRequestReason: strPtr("changed mind"),
		CreatedAt:           time.Now(),
	}
	w := loadedWorkflow(t, client, o, nil)

	assert.True(t, w.CanResolveCancel(o))
	assert.False(t, w.CanResolveReturn(o))

	opts := o.ManualStatusOptions()
	assert.NotContains(t, opts, model.OrderStatusCancelled)
	assert.NotContains(t, opts, model.OrderStatusReturned)
}

func TestWorkflow_ApproveCancel_Success(t *testing.T) {
	client := new(ClientMock)
	o := model.Order{
		ID:                  orderID,
		Status:              model.OrderStatusPendingConfirm,
		CancelRequestReason: strPtr("changed mind"),
		CreatedAt:           time.Now(),
	}
	w := loadedWorkflow(t, client, o, nil)

	client.On("ApproveCancel", mock.Anything, orderID).Return(nil)

	err := w.ApproveCancel(context.Background(), orderID)
	assert.NoError(t, err)
	client.AssertNumberOfCalls(t, "ListOrders", 2)
}

func TestWorkflow_ApproveCancel_NoPendingRequest(t *testing.T) {
	client := new(ClientMock)
	o := model.Order{ID: orderID, Status: model.OrderStatusPendingConfirm, CreatedAt: time.Now()}
	w := loadedWorkflow(t, client, o, nil)

	err := w.ApproveCancel(context.Background(), orderID)
	assert.ErrorIs(t, err, orderflow.ErrNoPending)
	client.AssertNotCalled(t, "ApproveCancel", mock.Anything, mock.Anything)
}

func TestWorkflow_RejectCancel_RequiresReason(t *testing.T) {
	client := new(ClientMock)
	o := model.Order{
		ID:                  orderID,
		Status:              model.OrderStatusPendingConfirm,
		CancelRequestReason: strPtr("changed mind"),
		CreatedAt:           time.Now(),
	}
	w := loadedWorkflow(t, client, o, nil)

	err := w.RejectCancel(context.Background(), orderID, "  ")
	assert.ErrorIs(t, err, orderflow.ErrReasonNeeded)
	client.AssertNotCalled(t, "RejectCancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_RejectReturn_Success(t *testing.T) {
	client := new(ClientMock)
	o := model.Order{
		ID:                  orderID,
		Status:              model.OrderStatusPendingDelivery,
		ReturnRequestReason: strPtr("defective"),
		CreatedAt:           time.Now(),
	}
	w := loadedWorkflow(t, client, o, nil)

	client.On("RejectReturn", mock.Anything, orderID, "inspected, no defect").Return(nil)

	err := w.RejectReturn(context.Background(), orderID, "inspected, no defect")
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestWorkflow_ToggleDetail(t *testing.T) {
	client := new(ClientMock)
	o := model.Order{ID: orderID, Status: model.OrderStatusPendingConfirm, CreatedAt: time.Now()}
	w := loadedWorkflow(t, client, o, nil)

	client.On("OrderDetail", mock.Anything, orderID).Return(orderflow.Detail{Order: o}, nil)

	assert.NoError(t, w.ToggleDetail(context.Background(), orderID))
	assert.Equal(t, orderID, w.SelectedID())
	_, ok := w.Detail()
	assert.True(t, ok)

	//同じidをもう一度で閉じる
	assert.NoError(t, w.ToggleDetail(context.Background(), orderID))
	assert.Equal(t, "", w.SelectedID())
	_, ok = w.Detail()
	assert.False(t, ok)
}

func TestWorkflow_SetStatus_RefreshesOpenDetail(t *testing.T) {
	client := new(ClientMock)
	o := model.Order{ID: orderID, Status: model.OrderStatusPendingConfirm, CreatedAt: time.Now()}
	w := loadedWorkflow(t, client, o, nil)

	client.On("OrderDetail", mock.Anything, orderID).Return(orderflow.Detail{Order: o}, nil)
	assert.NoError(t, w.ToggleDetail(context.Background(), orderID))

	client.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusPendingPickup).Return(nil)

	assert.NoError(t, w.SetStatus(context.Background(), orderID, model.OrderStatusPendingPickup, false))

	//開いている詳細も取り直される
	client.AssertNumberOfCalls(t, "OrderDetail", 2)
}
