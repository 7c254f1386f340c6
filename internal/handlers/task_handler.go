package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskly/internal/models"
	"taskly/internal/services"
)

type TaskHandler struct {
	service services.TaskService
	log     logrus.FieldLogger
}

func NewTaskHandler(service services.TaskService, log logrus.FieldLogger) *TaskHandler {
	return &TaskHandler{service: service, log: log}
}

type createTaskRequest struct {
	TeamID         int64               `json:"team_id" binding:"required"`
	AssignedUserID int64               `json:"assigned_user_id" binding:"required"`
	Title          string              `json:"title" binding:"required"`
	Description    string              `json:"description"`
	Priority       models.TaskPriority `json:"priority"`   // low|medium|high|urgent
	StartDate      string              `json:"start_date"` // RFC3339 or YYYY-MM-DD
	DueDate        string              `json:"due_date"`
}

type statusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

type reopenRequest struct {
	Status  models.TaskStatus `json:"status" binding:"required"`
	Comment string            `json:"comment"`
}

// @Summary      Create a task
// @Description  Creates a task in a team and notifies the assignee
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body      createTaskRequest  true  "Task"
// @Success      201   {object}  models.Task
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Security     BearerAuth
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	start, err := parseTime(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid start_date"})
		return
	}
	due, err := parseTime(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid due_date"})
		return
	}

	task, err := h.service.Create(c.Request.Context(), currentUser(c), services.CreateTaskInput{
		TeamID:      req.TeamID,
		AssigneeID:  req.AssignedUserID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		StartDate:   start,
		DueDate:     due,
	})
	if err != nil {
		respondError(c, h.log, "task.create", err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// @Summary      My tasks
// @Description  Tasks assigned to the caller, ordered by due date
// @Tags         Tasks
// @Produce      json
// @Success      200  {array}   models.Task
// @Security     BearerAuth
// @Router       /tasks/mine [get]
func (h *TaskHandler) Mine(c *gin.Context) {
	tasks, err := h.service.ListAssigned(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.log, "task.mine", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.service.Get(c.Request.Context(), id, currentUser(c))
	if err != nil {
		respondError(c, h.log, "task.get", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Change task status
// @Description  Moves a task along the workflow. Assignees may only start work or submit for review.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id      path      int            true  "Task ID"
// @Param        status  body      statusRequest  true  "Target status"
// @Success      200     {object}  models.Task
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      409     {object}  errorResponse
// @Security     BearerAuth
// @Router       /tasks/{id}/status [put]
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	task, err := h.service.RequestTransition(c.Request.Context(), id, currentUser(c), req.Status)
	if err != nil {
		respondError(c, h.log, "task.status", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Approve a task
// @Description  Team lead accepts a task that is in review
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Security     BearerAuth
// @Router       /tasks/{id}/approve [put]
func (h *TaskHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.service.Approve(c.Request.Context(), id, currentUser(c))
	if err != nil {
		respondError(c, h.log, "task.approve", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Reopen a task
// @Description  Team lead sends a task in review back to work with a reason
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id      path      int            true  "Task ID"
// @Param        reopen  body      reopenRequest  true  "Target status and reason"
// @Success      200     {object}  models.Task
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      409     {object}  errorResponse
// @Security     BearerAuth
// @Router       /tasks/{id}/reopen [put]
func (h *TaskHandler) Reopen(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reopenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	task, err := h.service.Reopen(c.Request.Context(), id, currentUser(c), req.Status, req.Comment)
	if err != nil {
		respondError(c, h.log, "task.reopen", err)
		return
	}
	c.JSON(http.StatusOK, task)
}
