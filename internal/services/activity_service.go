package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"taskly/internal/models"
	"taskly/internal/repositories"
)

const maxActivityLen = 2000

// Exporter renders one activity with its discussion, e.g. as PDF.
type Exporter interface {
	ExportActivity(w io.Writer, item *models.ActivityFeedItem) error
}

type ActivityService interface {
	LogActivity(ctx context.Context, taskID, callerID int64, description string, imageURL *string) (*models.Activity, error)
	TaskActivities(ctx context.Context, taskID, callerID int64) ([]models.ActivityFeedItem, error)
	TeamFeed(ctx context.Context, teamID, callerID int64) ([]models.ActivityFeedItem, error)
	MyActivities(ctx context.Context, callerID int64) ([]models.ActivityFeedItem, error)
	ExportActivity(ctx context.Context, activityID, callerID int64, w io.Writer) error
}

type activityService struct {
	activities repositories.ActivityRepository
	comments   repositories.CommentRepository
	tasks      repositories.TaskRepository
	teams      repositories.TeamRepository
	exporter   Exporter
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewActivityService(
	activities repositories.ActivityRepository,
	comments repositories.CommentRepository,
	tasks repositories.TaskRepository,
	teams repositories.TeamRepository,
	exporter Exporter,
	log logrus.FieldLogger,
) ActivityService {
	return &activityService{
		activities: activities,
		comments:   comments,
		tasks:      tasks,
		teams:      teams,
		exporter:   exporter,
		log:        log,
		now:        utcNow,
	}
}

func (s *activityService) LogActivity(ctx context.Context, taskID, callerID int64, description string, imageURL *string) (*models.Activity, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fail(ErrValidation, "description is required")
	}
	if utf8.RuneCountInString(description) > maxActivityLen {
		return nil, failf(ErrValidation, "description must be at most %d characters", maxActivityLen)
	}
	if imageURL != nil && strings.TrimSpace(*imageURL) == "" {
		imageURL = nil
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, storeErr(err, "task")
	}
	if task.AssigneeID != callerID {
		return nil, fail(ErrForbidden, "only the assignee can log activity on this task")
	}

	a := &models.Activity{
		TaskID:      task.ID,
		AuthorID:    callerID,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   s.now(),
	}
	if err := s.activities.Store(ctx, a); err != nil {
		return nil, fmt.Errorf("store activity: %w", err)
	}
	s.log.WithFields(logrus.Fields{"op": "activity.log", "task_id": taskID, "activity_id": a.ID, "user_id": callerID}).Info("activity logged")
	return a, nil
}

// TaskActivities is the assignee's own log on one task. Other callers get the same error as for a missing task.
func (s *activityService) TaskActivities(ctx context.Context, taskID, callerID int64) ([]models.ActivityFeedItem, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("load task: %w", err)
	}
	if task == nil || task.AssigneeID != callerID {
		return nil, fail(ErrForbidden, "you are not authorized to view activities for this task")
	}
	items, err := s.activities.ListByTaskAndAuthor(ctx, taskID, callerID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return s.withComments(ctx, items)
}

func (s *activityService) TeamFeed(ctx context.Context, teamID, callerID int64) ([]models.ActivityFeedItem, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, storeErr(err, "team")
	}
	if !team.HasMember(callerID) {
		return nil, fail(ErrForbidden, "you are not a member of this team")
	}
	items, err := s.activities.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team activities: %w", err)
	}
	return s.withComments(ctx, items)
}

func (s *activityService) MyActivities(ctx context.Context, callerID int64) ([]models.ActivityFeedItem, error) {
	items, err := s.activities.ListByAuthor(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return s.withComments(ctx, items)
}

func (s *activityService) ExportActivity(ctx context.Context, activityID, callerID int64, w io.Writer) error {
	item, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return storeErr(err, "activity")
	}
	task, err := s.tasks.FindByID(ctx, item.TaskID)
	if err != nil {
		return storeErr(err, "task")
	}
	team, err := s.teams.FindByID(ctx, task.TeamID)
	if err != nil {
		return storeErr(err, "team")
	}
	if !team.HasMember(callerID) {
		return fail(ErrForbidden, "you are not a member of this team")
	}

	items, err := s.withComments(ctx, []models.ActivityFeedItem{*item})
	if err != nil {
		return err
	}
	return s.exporter.ExportActivity(w, &items[0])
}

// withComments loads the comments of every item in one query and attaches each activity's forest.
func (s *activityService) withComments(ctx context.Context, items []models.ActivityFeedItem) ([]models.ActivityFeedItem, error) {
	if len(items) == 0 {
		return items, nil
	}
	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	nodes, err := s.comments.ListByActivities(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	forests := buildForests(nodes)
	for i := range items {
		items[i].Comments = forests[items[i].ID]
		if items[i].Comments == nil {
			items[i].Comments = []*models.CommentNode{}
		}
	}
	return items, nil
}
