package handler

import (
	"net/http"

	"laptop-admin/internal/config"
	"laptop-admin/internal/middleware"
	"laptop-admin/internal/repository"
	"laptop-admin/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	uc *usecase.AdminUserUsecase
}

func NewAdminUserHandler(uc *usecase.AdminUserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

type UserLockRequest struct {
	Locked bool `json:"locked"`
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, profileRepo repository.ProfileRepository) {
	admin := e.Group("/admin/api")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AccountLockGuard(profileRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/users", h.list)
	admin.PUT("/users/:id/lock", h.setLock)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AdminUserHandler) setLock(c echo.Context) error {
	var req UserLockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.SetLocked(c.Request().Context(), adminID, c.Param("id"), req.Locked); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}
