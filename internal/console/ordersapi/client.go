package ordersapi

import (
	"context"
	"net/url"
	"strconv"

	"laptop-admin/internal/console/api"
	"laptop-admin/internal/console/orderflow"
	"laptop-admin/internal/domain/model"
)

// Clientは /admin/api/orders 系エンドポイントの実装。
type Client struct {
	api *api.Client
}

func New(baseURL string, token string) *Client {
	return &Client{api: api.NewClient(baseURL, token)}
}

func NewWithAPI(a *api.Client) *Client {
	return &Client{api: a}
}

type statusBody struct {
	Status string `json:"status"`
}

type reasonBody struct {
	Reason string `json:"reason"`
}

func (c *Client) ListOrders(ctx context.Context, q orderflow.ListQuery) (orderflow.ListResult, error) {
	vals := url.Values{}
	if q.Q != "" {
		vals.Set("q", q.Q)
	}
	if q.Status != "" {
		vals.Set("status", q.Status)
	}
	if q.Month != "" {
		vals.Set("month", q.Month)
	}
	if q.Page > 0 {
		vals.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		vals.Set("page_size", strconv.Itoa(q.PageSize))
	}

	var resp struct {
		OK    bool          `json:"ok"`
		Items []model.Order `json:"items"`
		Total int64         `json:"total"`
		Page  int           `json:"page"`
	}
	if err := c.api.Get(ctx, "/admin/api/orders", vals, &resp); err != nil {
		return orderflow.ListResult{}, err
	}

	return orderflow.ListResult{Items: resp.Items, Total: resp.Total, Page: resp.Page}, nil
}

func (c *Client) OrderDetail(ctx context.Context, orderID string) (orderflow.Detail, error) {
	var resp struct {
		OK    bool              `json:"ok"`
		Order model.Order       `json:"order"`
		Items []model.OrderItem `json:"items"`
	}
	if err := c.api.Get(ctx, "/admin/api/orders/"+orderID, nil, &resp); err != nil {
		return orderflow.Detail{}, err
	}

	return orderflow.Detail{Order: resp.Order, Items: resp.Items}, nil
}

func (c *Client) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	return c.api.Post(ctx, "/admin/api/orders/"+orderID+"/status", statusBody{Status: string(status)}, nil)
}

func (c *Client) ApproveCancel(ctx context.Context, orderID string) error {
	return c.api.Post(ctx, "/admin/api/orders/"+orderID+"/approve_cancel", nil, nil)
}

func (c *Client) RejectCancel(ctx context.Context, orderID string, reason string) error {
	return c.api.Post(ctx, "/admin/api/orders/"+orderID+"/reject_cancel", reasonBody{Reason: reason}, nil)
}

func (c *Client) AcceptReturn(ctx context.Context, orderID string) error {
	return c.api.Post(ctx, "/admin/api/orders/"+orderID+"/accept_return", nil, nil)
}

func (c *Client) RejectReturn(ctx context.Context, orderID string, reason string) error {
	return c.api.Post(ctx, "/admin/api/orders/"+orderID+"/reject_return", reasonBody{Reason: reason}, nil)
}
