package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskly/internal/services"
)

type CommentHandler struct {
	service services.CommentService
	log     logrus.FieldLogger
}

func NewCommentHandler(service services.CommentService, log logrus.FieldLogger) *CommentHandler {
	return &CommentHandler{service: service, log: log}
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// @Summary      Comment thread
// @Description  The comment forest of an activity, oldest first at every level
// @Tags         Comments
// @Produce      json
// @Param        id   path     int  true  "Activity ID"
// @Success      200  {array}  models.CommentNode
// @Failure      403  {object} errorResponse
// @Failure      404  {object} errorResponse
// @Security     BearerAuth
// @Router       /activities/{id}/comments [get]
func (h *CommentHandler) Thread(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	nodes, err := h.service.Thread(c.Request.Context(), id, currentUser(c))
	if err != nil {
		respondError(c, h.log, "comment.thread", err)
		return
	}
	c.JSON(http.StatusOK, nodes)
}

// @Summary      Comment on an activity
// @Description  Anyone in the team except the activity's author may start a thread
// @Tags         Comments
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Activity ID"
// @Param        comment  body      commentRequest  true  "Comment"
// @Success      201      {object}  models.CommentNode
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Security     BearerAuth
// @Router       /activities/{id}/comments [post]
func (h *CommentHandler) AddRoot(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	node, err := h.service.AddRootComment(c.Request.Context(), id, currentUser(c), req.Content)
	if err != nil {
		respondError(c, h.log, "comment.root", err)
		return
	}
	c.JSON(http.StatusCreated, node)
}

// @Summary      Reply to a comment
// @Description  Only the assignee of the task may reply
// @Tags         Comments
// @Accept       json
// @Produce      json
// @Param        id     path      int             true  "Parent comment ID"
// @Param        reply  body      commentRequest  true  "Reply"
// @Success      201    {object}  models.CommentNode
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Security     BearerAuth
// @Router       /comments/{id}/replies [post]
func (h *CommentHandler) Reply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	node, err := h.service.AddReply(c.Request.Context(), id, currentUser(c), req.Content)
	if err != nil {
		respondError(c, h.log, "comment.reply", err)
		return
	}
	c.JSON(http.StatusCreated, node)
}
