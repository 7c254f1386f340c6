package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskly/internal/models"
)

type ActivityRepository interface {
	Store(ctx context.Context, activity *models.Activity) error
	FindByID(ctx context.Context, id int64) (*models.ActivityFeedItem, error)

	// Feed reads, newest first. Comments are left empty for the caller to assemble.
	ListByTaskAndAuthor(ctx context.Context, taskID, authorID int64) ([]models.ActivityFeedItem, error)
	ListByTeam(ctx context.Context, teamID int64) ([]models.ActivityFeedItem, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.ActivityFeedItem, error)
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

const feedSelect = `
	SELECT a.id, a.task_id, a.author_id, a.description, a.image_url, a.created_at,
	       t.title AS task_title, COALESCE(u.full_name, '') AS author_name
	FROM activities a
	JOIN tasks t ON t.id = a.task_id
	LEFT JOIN users u ON u.id = a.author_id`

const feedOrder = ` ORDER BY a.created_at DESC, a.id DESC`

func (r *activityRepository) Store(ctx context.Context, activity *models.Activity) error {
	return insertActivity(ctx, r.db, activity)
}

func insertActivity(ctx context.Context, q sqlx.ExtContext, activity *models.Activity) error {
	id, err := insertReturningID(ctx, q, `
		INSERT INTO activities (task_id, author_id, description, image_url, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		activity.TaskID, activity.AuthorID, activity.Description, activity.ImageURL, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	activity.ID = id
	return nil
}

func (r *activityRepository) FindByID(ctx context.Context, id int64) (*models.ActivityFeedItem, error) {
	var item models.ActivityFeedItem
	if err := r.db.GetContext(ctx, &item, r.db.Rebind(feedSelect+` WHERE a.id = ?`), id); err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *activityRepository) ListByTaskAndAuthor(ctx context.Context, taskID, authorID int64) ([]models.ActivityFeedItem, error) {
	return r.list(ctx, ` WHERE a.task_id = ? AND a.author_id = ?`, taskID, authorID)
}

func (r *activityRepository) ListByTeam(ctx context.Context, teamID int64) ([]models.ActivityFeedItem, error) {
	return r.list(ctx, ` WHERE t.team_id = ?`, teamID)
}

func (r *activityRepository) ListByAuthor(ctx context.Context, authorID int64) ([]models.ActivityFeedItem, error) {
	return r.list(ctx, ` WHERE a.author_id = ?`, authorID)
}

func (r *activityRepository) list(ctx context.Context, where string, args ...interface{}) ([]models.ActivityFeedItem, error) {
	items := []models.ActivityFeedItem{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(feedSelect+where+feedOrder), args...); err != nil {
		return nil, err
	}
	return items, nil
}
