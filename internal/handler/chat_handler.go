package handler

import (
	"net/http"

	"laptop-admin/internal/config"
	"laptop-admin/internal/middleware"
	"laptop-admin/internal/repository"
	"laptop-admin/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/api/shop_chat のAPI
type ChatHandler struct {
	uc *usecase.ChatUsecase
}

func NewChatHandler(uc *usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

type ChatSendRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

type ChatMarkReadRequest struct {
	ConversationID string `json:"conversation_id"`
}

type ChatRecallRequest struct {
	MessageID string `json:"message_id"`
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, profileRepo repository.ProfileRepository) {
	chat := e.Group("/admin/api/shop_chat")
	chat.Use(middleware.AuthJWT(cfg))
	chat.Use(middleware.AccountLockGuard(profileRepo))
	chat.Use(middleware.AdminRoleGuard())

	chat.GET("/conversations", h.conversations)
	chat.GET("/messages", h.messages)
	chat.POST("/send", h.send)
	chat.POST("/mark_read", h.markRead)
	chat.POST("/recall", h.recall)
}

func (h *ChatHandler) conversations(c echo.Context) error {
	items, err := h.uc.Conversations(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ChatHandler) messages(c echo.Context) error {
	items, err := h.uc.Messages(c.Request().Context(), c.QueryParam("conversation_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ChatHandler) send(c echo.Context) error {
	var req ChatSendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	m, err := h.uc.Send(c.Request().Context(), adminID, req.ConversationID, req.Message)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, m)
}

func (h *ChatHandler) markRead(c echo.Context) error {
	var req ChatMarkReadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.MarkRead(c.Request().Context(), adminID, req.ConversationID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "read"})
}

func (h *ChatHandler) recall(c echo.Context) error {
	var req ChatRecallRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Recall(c.Request().Context(), adminID, req.MessageID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "recalled"})
}
