package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskly/internal/services"
)

type UserHandler struct {
	service services.UserService
	log     logrus.FieldLogger
}

func NewUserHandler(service services.UserService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

type telegramLinkRequest struct {
	ChatID  int64 `json:"chat_id"`
	Enabled bool  `json:"enabled"`
}

type meResponse struct {
	ID              int64  `json:"id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	TelegramLinked  bool   `json:"telegram_linked"`
	TelegramEnabled bool   `json:"telegram_enabled"`
}

// @Summary      Current user
// @Tags         Users
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.service.GetUserByID(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.log, "user.me", err)
		return
	}
	c.JSON(http.StatusOK, meResponse{
		ID:              u.ID,
		FullName:        u.FullName,
		Email:           u.Email,
		TelegramLinked:  u.TelegramChatID != 0,
		TelegramEnabled: u.NotifyTelegram,
	})
}

// @Summary      Telegram notifications
// @Description  Links a Telegram chat for offline notifications, or turns them off
// @Tags         Users
// @Accept       json
// @Param        link  body  telegramLinkRequest  true  "Chat and switch"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Security     BearerAuth
// @Router       /users/me/telegram [put]
func (h *UserHandler) LinkTelegram(c *gin.Context) {
	var req telegramLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := h.service.LinkTelegram(c.Request.Context(), currentUser(c), req.ChatID, req.Enabled); err != nil {
		respondError(c, h.log, "user.telegram", err)
		return
	}
	c.Status(http.StatusNoContent)
}
