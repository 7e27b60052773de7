package handler

import (
	"net/http"

	"laptop-admin/internal/config"
	"laptop-admin/internal/middleware"
	"laptop-admin/internal/repository"
	"laptop-admin/internal/usecase"

	"github.com/labstack/echo/v4"
)

type BannerHandler struct {
	uc *usecase.BannerUsecase
}

func NewBannerHandler(uc *usecase.BannerUsecase) *BannerHandler {
	return &BannerHandler{uc: uc}
}

type BannerCreateRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageurl"`
}

type BannerMoveRequest struct {
	Direction string `json:"direction"` // "up" | "down"
}

func (h *BannerHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, profileRepo repository.ProfileRepository) {
	admin := e.Group("/admin/api")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AccountLockGuard(profileRepo))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/banners", h.list)
	admin.POST("/banners", h.create)
	admin.DELETE("/banners/:id", h.delete)
	admin.POST("/banners/:id/move", h.move)
}

func (h *BannerHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *BannerHandler) create(c echo.Context) error {
	var req BannerCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := h.uc.Create(c.Request().Context(), adminID, usecase.CreateBannerInput{
		Title:    req.Title,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

func (h *BannerHandler) delete(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Delete(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *BannerHandler) move(c echo.Context) error {
	var req BannerMoveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Move(c.Request().Context(), adminID, c.Param("id"), req.Direction); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "moved"})
}
