package handler

import (
	"net/http"
	"strconv"

	"laptop-admin/internal/config"
	"laptop-admin/internal/domain/model"
	"laptop-admin/internal/middleware"
	"laptop-admin/internal/repository"
	"laptop-admin/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

type OrderRejectRequest struct {
	Reason string `json:"reason"`
}

// 注文系はok/reasonの封筒形式で返す。
type orderListResponse struct {
	OK    bool          `json:"ok"`
	Items []model.Order `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
}

type orderDetailResponse struct {
	OK    bool              `json:"ok"`
	Order model.Order       `json:"order"`
	Items []model.OrderItem `json:"items"`
}

type orderOKResponse struct {
	OK bool `json:"ok"`
}

type orderErrorResponse struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason"`
}

func writeOrderError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, orderErrorResponse{OK: false, Reason: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, orderErrorResponse{OK: false, Reason: "internal error"})
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, profileRepo repository.ProfileRepository) {
	admin := e.Group("/admin/api")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AccountLockGuard(profileRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/orders", h.list)
	admin.GET("/orders/:id", h.detail)
	admin.POST("/orders/:id/status", h.updateStatus)
	admin.POST("/orders/:id/approve_cancel", h.approveCancel)
	admin.POST("/orders/:id/reject_cancel", h.rejectCancel)
	admin.POST("/orders/:id/accept_return", h.acceptReturn)
	admin.POST("/orders/:id/reject_return", h.rejectReturn)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, orderErrorResponse{OK: false, Reason: "invalid page"})
		}
		page = p
	}

	pageSize := 20
	if v := c.QueryParam("page_size"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, orderErrorResponse{OK: false, Reason: "invalid page_size"})
		}
		pageSize = s
	}

	f := repository.AdminOrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Q:        c.QueryParam("q"),
		Status:   c.QueryParam("status"),
	}

	//月は"2025-11"形式
	if v := c.QueryParam("month"); v != "" {
		m, ok := usecase.ParseMonth(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, orderErrorResponse{OK: false, Reason: "invalid month"})
		}
		f.Month = m
	}

	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeOrderError(c, err)
	}

	return c.JSON(http.StatusOK, orderListResponse{
		OK:    true,
		Items: out.Items,
		Total: out.Total,
		Page:  out.Page,
	})
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	out, err := h.uc.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeOrderError(c, err)
	}

	return c.JSON(http.StatusOK, orderDetailResponse{
		OK:    true,
		Order: out.Order,
		Items: out.Items,
	})
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, orderErrorResponse{OK: false, Reason: "invalid body"})
	}

	// ★操作した管理者IDを取得（監査ログ用）
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, orderErrorResponse{OK: false, Reason: "unauthorized"})
	}

	if err := h.uc.UpdateStatus(
		c.Request().Context(),
		adminID,
		c.Param("id"),
		usecase.AdminUpdateOrderStatusInput{Status: req.Status},
	); err != nil {
		return writeOrderError(c, err)
	}

	return c.JSON(http.StatusOK, orderOKResponse{OK: true})
}

func (h *AdminOrderHandler) approveCancel(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, orderErrorResponse{OK: false, Reason: "unauthorized"})
	}

	if err := h.uc.ApproveCancel(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return writeOrderError(c, err)
	}

	return c.JSON(http.StatusOK, orderOKResponse{OK: true})
}

func (h *AdminOrderHandler) rejectCancel(c echo.Context) error {
	var req OrderRejectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, orderErrorResponse{OK: false, Reason: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, orderErrorResponse{OK: false, Reason: "unauthorized"})
	}

	if err := h.uc.RejectCancel(c.Request().Context(), adminID, c.Param("id"), req.Reason); err != nil {
		return writeOrderError(c, err)
	}

	return c.JSON(http.StatusOK, orderOKResponse{OK: true})
}

func (h *AdminOrderHandler) acceptReturn(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, orderErrorResponse{OK: false, Reason: "unauthorized"})
	}

	if err := h.uc.AcceptReturn(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return writeOrderError(c, err)
	}

	return c.JSON(http.StatusOK, orderOKResponse{OK: true})
}

func (h *AdminOrderHandler) rejectReturn(c echo.Context) error {
	var req OrderRejectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, orderErrorResponse{OK: false, Reason: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, orderErrorResponse{OK: false, Reason: "unauthorized"})
	}

	if err := h.uc.RejectReturn(c.Request().Context(), adminID, c.Param("id"), req.Reason); err != nil {
		return writeOrderError(c, err)
	}

	return c.JSON(http.StatusOK, orderOKResponse{OK: true})
}
