package handler

import (
	"laptop-admin/internal/config"
	"laptop-admin/internal/middleware"
	"laptop-admin/internal/realtime"
	"laptop-admin/internal/repository"

	"github.com/labstack/echo/v4"
)

// /admin/api/realtime のwebsocket購読口。
type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

func (h *RealtimeHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, profileRepo repository.ProfileRepository) {
	admin := e.Group("/admin/api")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AccountLockGuard(profileRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/realtime", h.subscribe)
}

func (h *RealtimeHandler) subscribe(c echo.Context) error {
	h.hub.HandleWS(c.Response(), c.Request())
	return nil
}
