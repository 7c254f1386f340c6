package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskly/internal/realtime"
	"taskly/internal/services"
)

type NotificationHandler struct {
	service      services.NotificationService
	registry     *realtime.Registry
	writeTimeout time.Duration
	log          logrus.FieldLogger
}

func NewNotificationHandler(service services.NotificationService, registry *realtime.Registry, writeTimeout time.Duration, log logrus.FieldLogger) *NotificationHandler {
	return &NotificationHandler{service: service, registry: registry, writeTimeout: writeTimeout, log: log}
}

type markAllResponse struct {
	Updated int64 `json:"updated"`
}

type markOneResponse struct {
	Link string `json:"link"`
}

type meetingInvitationRequest struct {
	TargetUserIDs []int64 `json:"target_user_ids" binding:"required"`
	Topic         string  `json:"topic" binding:"required"`
	Link          string  `json:"link" binding:"required"`
}

type meetingInvitationResponse struct {
	Sent int `json:"sent"`
}

// @Summary      Recent notifications
// @Description  The caller's latest notifications, newest first
// @Tags         Notifications
// @Produce      json
// @Success      200  {array}  models.Notification
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.service.ListForUser(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.log, "notification.list", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Mark all as read
// @Tags         Notifications
// @Produce      json
// @Success      200  {object}  markAllResponse
// @Security     BearerAuth
// @Router       /notifications/mark-as-read [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.service.MarkAllRead(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.log, "notification.mark_all", err)
		return
	}
	c.JSON(http.StatusOK, markAllResponse{Updated: n})
}

// @Summary      Mark one as read
// @Description  Marks the notification read and returns its link so the UI can navigate
// @Tags         Notifications
// @Produce      json
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  markOneResponse
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /notifications/{id}/mark-as-read [post]
func (h *NotificationHandler) MarkOneRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	link, err := h.service.MarkOneRead(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, h.log, "notification.mark_one", err)
		return
	}
	c.JSON(http.StatusOK, markOneResponse{Link: link})
}

// @Summary      Invite to a meeting
// @Tags         Notifications
// @Accept       json
// @Produce      json
// @Param        invitation  body      meetingInvitationRequest  true  "Invitation"
// @Success      201         {object}  meetingInvitationResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Security     BearerAuth
// @Router       /notifications/meeting-invitations [post]
func (h *NotificationHandler) Invite(c *gin.Context) {
	var req meetingInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	n, err := h.service.SendMeetingInvitation(c.Request.Context(), currentUser(c), req.TargetUserIDs, req.Topic, req.Link)
	if err != nil {
		respondError(c, h.log, "notification.invite", err)
		return
	}
	c.JSON(http.StatusCreated, meetingInvitationResponse{Sent: n})
}

// @Summary      Live notifications
// @Description  Websocket that pushes each new notification as a JSON text frame. Pass the token as access_token.
// @Tags         Notifications
// @Param        access_token  query  string  false  "JWT when the Authorization header cannot be set"
// @Success      101
// @Failure      400  {object}  errorResponse
// @Router       /notifications/stream [get]
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID := currentUser(c)
	conn, err := realtime.Upgrade(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	defer conn.Close()

	sub := h.registry.Subscribe(userID)
	defer h.registry.Unsubscribe(sub)

	log := h.log.WithFields(logrus.Fields{"op": "notification.stream", "user_id": userID, "conn": sub.ID.String()})
	log.Debug("subscriber connected")
	if err := realtime.Stream(c.Request.Context(), conn, sub, h.writeTimeout); err != nil {
		log.WithError(err).Info("subscriber dropped")
		return
	}
	log.Debug("subscriber disconnected")
}
