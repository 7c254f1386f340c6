package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"taskly/internal/authz"
	"taskly/internal/models"
	"taskly/internal/repositories"
)

const (
	maxTitleLen  = 200
	maxReasonLen = 1000

	teamTasksLink = "/app/team-tasks"
)

type CreateTaskInput struct {
	TeamID      int64
	AssigneeID  int64
	Title       string
	Description string
	Priority    models.TaskPriority
	StartDate   *time.Time
	DueDate     *time.Time
}

// TaskService owns the task lifecycle: creation, reads and every status change.
type TaskService interface {
	Create(ctx context.Context, creatorID int64, in CreateTaskInput) (*models.Task, error)
	Get(ctx context.Context, taskID, callerID int64) (*models.Task, error)
	ListAssigned(ctx context.Context, callerID int64) ([]models.Task, error)

	RequestTransition(ctx context.Context, taskID, requesterID int64, to models.TaskStatus) (*models.Task, error)
	Approve(ctx context.Context, taskID, requesterID int64) (*models.Task, error)
	Reopen(ctx context.Context, taskID, requesterID int64, to models.TaskStatus, reason string) (*models.Task, error)
}

type taskService struct {
	tasks    repositories.TaskRepository
	teams    repositories.TeamRepository
	users    repositories.UserRepository
	notifier Notifier
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewTaskService(
	tasks repositories.TaskRepository,
	teams repositories.TeamRepository,
	users repositories.UserRepository,
	notifier Notifier,
	log logrus.FieldLogger,
) TaskService {
	return &taskService{tasks: tasks, teams: teams, users: users, notifier: notifier, log: log, now: utcNow}
}

func taskLink(id int64) string { return fmt.Sprintf("/tasks/%d", id) }

func (s *taskService) Create(ctx context.Context, creatorID int64, in CreateTaskInput) (*models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	switch {
	case in.Title == "":
		return nil, fail(ErrValidation, "title is required")
	case utf8.RuneCountInString(in.Title) > maxTitleLen:
		return nil, failf(ErrValidation, "title must be at most %d characters", maxTitleLen)
	case !in.Priority.Valid():
		return nil, failf(ErrValidation, "unknown priority %q", in.Priority)
	case in.StartDate != nil && in.DueDate != nil && in.DueDate.Before(*in.StartDate):
		return nil, fail(ErrValidation, "due date must not be before start date")
	}

	team, err := s.teams.FindByID(ctx, in.TeamID)
	if err != nil {
		return nil, storeErr(err, "team")
	}
	if !team.HasMember(creatorID) {
		return nil, fail(ErrForbidden, "only team members can create tasks for this team")
	}
	if !team.HasMember(in.AssigneeID) {
		return nil, fail(ErrInvalidOperation, "the assignee must be a member of the team")
	}

	now := s.now()
	task := &models.Task{
		TeamID:      team.ID,
		AssigneeID:  in.AssigneeID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      models.StatusToDo,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}
	if err := s.tasks.Store(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	log := s.log.WithFields(logrus.Fields{"op": "task.create", "task_id": task.ID, "user_id": creatorID})
	msg := fmt.Sprintf("%s assigned you a new task: '%s'.", s.displayName(ctx, creatorID), task.Title)
	s.notify(ctx, log, []int64{task.AssigneeID}, creatorID, msg, taskLink(task.ID))
	log.Info("task created")
	return task, nil
}

func (s *taskService) Get(ctx context.Context, taskID, callerID int64) (*models.Task, error) {
	task, team, err := s.load(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !team.HasMember(callerID) && task.AssigneeID != callerID {
		return nil, fail(ErrForbidden, "you are not a member of this task's team")
	}
	return task, nil
}

func (s *taskService) ListAssigned(ctx context.Context, callerID int64) ([]models.Task, error) {
	tasks, err := s.tasks.ListByAssignee(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) RequestTransition(ctx context.Context, taskID, requesterID int64, to models.TaskStatus) (*models.Task, error) {
	if !to.Valid() {
		return nil, failf(ErrValidation, "unknown status %q", to)
	}
	task, team, err := s.load(ctx, taskID)
	if err != nil {
		return nil, err
	}
	log := s.log.WithFields(logrus.Fields{"op": "task.transition", "task_id": taskID, "user_id": requesterID, "from": task.Status, "to": to})

	role := authz.RoleOf(task, team, requesterID)
	if !authz.IsRelated(role) {
		log.Debug("[task][status][deny] no relation")
		return nil, fail(ErrUnauthorized, "only the assignee or the team lead can change this task's status")
	}
	if task.Status == to {
		return task, nil
	}
	if !canTransition(task.Status, to, role) {
		log.Debug("[task][status][deny] role")
		return nil, failf(ErrForbidden, "as the assignee you can only move a task to %s or %s", models.StatusInProgress, models.StatusInReview)
	}

	task.SetStatus(to, s.now())
	if err := s.tasks.UpdateStatus(ctx, task); err != nil {
		return nil, storeErr(err, "task")
	}
	log.Info("task status changed")

	if requesterID == task.AssigneeID && to == models.StatusInReview {
		msg := fmt.Sprintf("%s submitted the task '%s' for review.", s.displayName(ctx, requesterID), task.Title)
		s.notify(ctx, log, []int64{team.LeadID}, requesterID, msg, teamTasksLink)
	}
	return task, nil
}

func (s *taskService) Approve(ctx context.Context, taskID, requesterID int64) (*models.Task, error) {
	task, team, err := s.load(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := requireLead(task, team, requesterID, "approve"); err != nil {
		return nil, err
	}
	if task.Status != models.StatusInReview {
		return nil, failf(ErrInvalidState, "only tasks in review can be approved, this one is %s", task.Status)
	}

	task.SetStatus(models.StatusDone, s.now())
	if err := s.tasks.UpdateStatus(ctx, task); err != nil {
		return nil, storeErr(err, "task")
	}
	log := s.log.WithFields(logrus.Fields{"op": "task.approve", "task_id": taskID, "user_id": requesterID})
	log.Info("task approved")

	msg := fmt.Sprintf("Your task '%s' has been approved by %s.", task.Title, s.displayName(ctx, requesterID))
	s.notify(ctx, log, []int64{task.AssigneeID}, requesterID, msg, taskLink(task.ID))
	return task, nil
}

func (s *taskService) Reopen(ctx context.Context, taskID, requesterID int64, to models.TaskStatus, reason string) (*models.Task, error) {
	reason = strings.TrimSpace(reason)
	switch {
	case to != models.StatusInProgress && to != models.StatusToDo:
		return nil, failf(ErrValidation, "a reopened task can only go back to %s or %s; use a status change for other targets", models.StatusInProgress, models.StatusToDo)
	case reason == "":
		return nil, fail(ErrValidation, "a reason is required to reopen a task")
	case utf8.RuneCountInString(reason) > maxReasonLen:
		return nil, failf(ErrValidation, "reason must be at most %d characters", maxReasonLen)
	}

	task, team, err := s.load(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := requireLead(task, team, requesterID, "reopen"); err != nil {
		return nil, err
	}
	if task.Status != models.StatusInReview {
		return nil, failf(ErrInvalidState, "only tasks in review can be reopened, this one is %s", task.Status)
	}

	now := s.now()
	task.SetStatus(to, now)
	audit := &models.Activity{
		TaskID:      task.ID,
		AuthorID:    requesterID,
		Description: fmt.Sprintf("Task was reopened. Reason: \"%s\"", reason),
		CreatedAt:   now,
	}
	if err := s.tasks.UpdateStatusWithActivity(ctx, task, audit); err != nil {
		return nil, storeErr(err, "task")
	}
	log := s.log.WithFields(logrus.Fields{"op": "task.reopen", "task_id": taskID, "user_id": requesterID, "activity_id": audit.ID})
	log.Info("task reopened")

	msg := fmt.Sprintf("Your task '%s' was reopened by %s. Reason: \"%s\"", task.Title, s.displayName(ctx, requesterID), reason)
	s.notify(ctx, log, []int64{task.AssigneeID}, requesterID, msg, taskLink(task.ID))
	return task, nil
}

func requireLead(task *models.Task, team *models.Team, userID int64, action string) error {
	role := authz.RoleOf(task, team, userID)
	switch {
	case authz.IsElevated(role):
		return nil
	case role == authz.RoleAssignee:
		return failf(ErrForbidden, "only the team lead can %s tasks", action)
	}
	return failf(ErrUnauthorized, "only the team lead can %s tasks", action)
}

func (s *taskService) load(ctx context.Context, taskID int64) (*models.Task, *models.Team, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, nil, storeErr(err, "task")
	}
	team, err := s.teams.FindByID(ctx, task.TeamID)
	if err != nil {
		return nil, nil, storeErr(err, "team")
	}
	return task, team, nil
}

func (s *taskService) displayName(ctx context.Context, userID int64) string {
	return displayName(ctx, s.users, s.log, userID)
}

func (s *taskService) notify(ctx context.Context, log logrus.FieldLogger, targets []int64, actor int64, msg, link string) {
	dispatch(ctx, s.notifier, log, targets, actor, msg, link)
}
