package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskly/internal/services"
)

type ActivityHandler struct {
	service services.ActivityService
	log     logrus.FieldLogger
}

func NewActivityHandler(service services.ActivityService, log logrus.FieldLogger) *ActivityHandler {
	return &ActivityHandler{service: service, log: log}
}

type logActivityRequest struct {
	Description string  `json:"description" binding:"required"`
	ImageURL    *string `json:"image_url"`
}

// @Summary      Log progress
// @Description  The assignee records what was done on a task
// @Tags         Activities
// @Accept       json
// @Produce      json
// @Param        id        path      int                 true  "Task ID"
// @Param        activity  body      logActivityRequest  true  "Activity"
// @Success      201       {object}  models.Activity
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Security     BearerAuth
// @Router       /tasks/{id}/activities [post]
func (h *ActivityHandler) Log(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req logActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	a, err := h.service.LogActivity(c.Request.Context(), taskID, currentUser(c), req.Description, req.ImageURL)
	if err != nil {
		respondError(c, h.log, "activity.log", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// @Summary      Task activities
// @Description  The assignee's activities on one task, each with its comment thread
// @Tags         Activities
// @Produce      json
// @Param        id   path     int  true  "Task ID"
// @Success      200  {array}  models.ActivityFeedItem
// @Failure      403  {object} errorResponse
// @Security     BearerAuth
// @Router       /tasks/{id}/activities [get]
func (h *ActivityHandler) ForTask(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.TaskActivities(c.Request.Context(), taskID, currentUser(c))
	if err != nil {
		respondError(c, h.log, "activity.task", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Team feed
// @Description  Every activity on the team's tasks, newest first
// @Tags         Activities
// @Produce      json
// @Param        id   path     int  true  "Team ID"
// @Success      200  {array}  models.ActivityFeedItem
// @Failure      403  {object} errorResponse
// @Failure      404  {object} errorResponse
// @Security     BearerAuth
// @Router       /teams/{id}/activities [get]
func (h *ActivityHandler) TeamFeed(c *gin.Context) {
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.TeamFeed(c.Request.Context(), teamID, currentUser(c))
	if err != nil {
		respondError(c, h.log, "activity.team", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      My activities
// @Tags         Activities
// @Produce      json
// @Success      200  {array}  models.ActivityFeedItem
// @Security     BearerAuth
// @Router       /activities/mine [get]
func (h *ActivityHandler) Mine(c *gin.Context) {
	items, err := h.service.MyActivities(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.log, "activity.mine", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Export an activity
// @Description  Renders the activity and its comment thread as a PDF
// @Tags         Activities
// @Produce      application/pdf
// @Param        id   path  int  true  "Activity ID"
// @Success      200  {file}  file
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /activities/{id}/export.pdf [get]
func (h *ActivityHandler) ExportPDF(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	// render into memory so a failure can still become a JSON error
	var buf bytes.Buffer
	if err := h.service.ExportActivity(c.Request.Context(), id, currentUser(c), &buf); err != nil {
		respondError(c, h.log, "activity.export", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="activity-%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
