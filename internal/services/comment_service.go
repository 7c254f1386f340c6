package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"taskly/internal/models"
	"taskly/internal/repositories"
)

const maxCommentLen = 1000

// CommentService runs the discussion under activities: the team raises comments, the assignee replies.
type CommentService interface {
	AddRootComment(ctx context.Context, activityID, authorID int64, content string) (*models.CommentNode, error)
	AddReply(ctx context.Context, parentCommentID, authorID int64, content string) (*models.CommentNode, error)
	// BuildTree assembles the comment forest of one activity, children ordered by creation time.
	BuildTree(ctx context.Context, activityID int64) ([]*models.CommentNode, error)
	// Thread is BuildTree for a caller who must belong to the activity's team.
	Thread(ctx context.Context, activityID, callerID int64) ([]*models.CommentNode, error)
}

type commentService struct {
	activities repositories.ActivityRepository
	comments   repositories.CommentRepository
	tasks      repositories.TaskRepository
	teams      repositories.TeamRepository
	users      repositories.UserRepository
	notifier   Notifier
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewCommentService(
	activities repositories.ActivityRepository,
	comments repositories.CommentRepository,
	tasks repositories.TaskRepository,
	teams repositories.TeamRepository,
	users repositories.UserRepository,
	notifier Notifier,
	log logrus.FieldLogger,
) CommentService {
	return &commentService{
		activities: activities,
		comments:   comments,
		tasks:      tasks,
		teams:      teams,
		users:      users,
		notifier:   notifier,
		log:        log,
		now:        utcNow,
	}
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fail(ErrValidation, "comment content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return "", failf(ErrValidation, "comment must be at most %d characters", maxCommentLen)
	}
	return content, nil
}

func (s *commentService) AddRootComment(ctx context.Context, activityID, authorID int64, content string) (*models.CommentNode, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	activity, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return nil, storeErr(err, "activity")
	}
	task, team, err := s.taskAndTeam(ctx, activity.TaskID)
	if err != nil {
		return nil, err
	}
	if !team.HasMember(authorID) {
		return nil, fail(ErrForbidden, "you are not a member of this team")
	}
	if activity.AuthorID == authorID {
		return nil, fail(ErrInvalidOperation, "you cannot comment on your own activity, only reply to comments")
	}

	c := &models.Comment{
		Parent:    models.RootOf(activity.ID),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.comments.Store(ctx, c); err != nil {
		return nil, fmt.Errorf("store comment: %w", err)
	}

	log := s.log.WithFields(logrus.Fields{"op": "comment.root", "activity_id": activityID, "comment_id": c.ID, "user_id": authorID})
	name := displayName(ctx, s.users, s.log, authorID)
	msg := fmt.Sprintf("%s commented on an activity in task '%s'.", name, task.Title)
	dispatch(ctx, s.notifier, log, []int64{task.AssigneeID, team.LeadID}, authorID, msg, taskLink(task.ID))
	log.Info("comment added")

	return &models.CommentNode{Comment: *c, AuthorName: name, Replies: []*models.CommentNode{}}, nil
}

func (s *commentService) AddReply(ctx context.Context, parentCommentID, authorID int64, content string) (*models.CommentNode, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	parent, err := s.comments.FindByID(ctx, parentCommentID)
	if err != nil {
		return nil, storeErr(err, "comment")
	}
	activity, err := s.activities.FindByID(ctx, parent.ActivityID)
	if err != nil {
		return nil, storeErr(err, "activity")
	}
	task, team, err := s.taskAndTeam(ctx, activity.TaskID)
	if err != nil {
		return nil, err
	}
	if task.AssigneeID != authorID {
		return nil, fail(ErrForbidden, "only the user assigned to the task can reply to comments")
	}

	c := &models.Comment{
		ActivityID: parent.ActivityID,
		Parent:     models.ReplyTo(parent.ID),
		AuthorID:   authorID,
		Content:    content,
		CreatedAt:  s.now(),
	}
	if err := s.comments.Store(ctx, c); err != nil {
		return nil, fmt.Errorf("store reply: %w", err)
	}

	log := s.log.WithFields(logrus.Fields{"op": "comment.reply", "parent_id": parentCommentID, "comment_id": c.ID, "user_id": authorID})
	name := displayName(ctx, s.users, s.log, authorID)
	msg := fmt.Sprintf("%s replied to a comment in task '%s'.", name, task.Title)
	dispatch(ctx, s.notifier, log, []int64{team.LeadID, parent.AuthorID}, authorID, msg, taskLink(task.ID))
	log.Info("reply added")

	return &models.CommentNode{Comment: *c, AuthorName: name, Replies: []*models.CommentNode{}}, nil
}

func (s *commentService) BuildTree(ctx context.Context, activityID int64) ([]*models.CommentNode, error) {
	nodes, err := s.comments.ListByActivities(ctx, []int64{activityID})
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	if forest := buildForests(nodes)[activityID]; forest != nil {
		return forest, nil
	}
	return []*models.CommentNode{}, nil
}

func (s *commentService) Thread(ctx context.Context, activityID, callerID int64) ([]*models.CommentNode, error) {
	activity, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return nil, storeErr(err, "activity")
	}
	_, team, err := s.taskAndTeam(ctx, activity.TaskID)
	if err != nil {
		return nil, err
	}
	if !team.HasMember(callerID) {
		return nil, fail(ErrForbidden, "you are not a member of this team")
	}
	return s.BuildTree(ctx, activityID)
}

func (s *commentService) taskAndTeam(ctx context.Context, taskID int64) (*models.Task, *models.Team, error) {
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

// buildForests groups flat comments into one forest per activity. Input order does not matter:
// nodes are sorted by creation time first, so every level comes out oldest first.
// A reply whose parent is missing from the input is dropped.
func buildForests(nodes []*models.CommentNode) map[int64][]*models.CommentNode {
	sorted := make([]*models.CommentNode, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	byID := make(map[int64]*models.CommentNode, len(sorted))
	for _, n := range sorted {
		if n.Replies == nil {
			n.Replies = []*models.CommentNode{}
		}
		byID[n.ID] = n
	}

	forests := make(map[int64][]*models.CommentNode)
	for _, n := range sorted {
		if n.Parent.IsRoot() {
			forests[n.ActivityID] = append(forests[n.ActivityID], n)
			continue
		}
		parentID, _ := n.Parent.CommentID()
		if parent, ok := byID[parentID]; ok {
			parent.Replies = append(parent.Replies, n)
		}
	}
	return forests
}
