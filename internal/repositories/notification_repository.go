package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskly/internal/models"
)

type NotificationRepository interface {
	// CreateBatch inserts all rows in one transaction and fills in their ids. No rows are kept on error.
	CreateBatch(ctx context.Context, notifications []*models.Notification) error
	ListForUser(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	// FindForUser returns ErrNotFound both for missing ids and for rows owned by another user.
	FindForUser(ctx context.Context, id, userID int64) (*models.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, target_user_id, message, link, is_read, created_at`

func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ids := make([]int64, len(notifications))
	for i, n := range notifications {
		id, err := insertReturningID(ctx, tx, `
			INSERT INTO notifications (target_user_id, message, link, is_read, created_at)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id`,
			n.TargetUserID, n.Message, n.Link, n.IsRead, n.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert notification for user %d: %w", n.TargetUserID, err)
		}
		ids[i] = id
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	for i, n := range notifications {
		n.ID = ids[i]
	}
	return nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	list := []models.Notification{}
	err := r.db.SelectContext(ctx, &list, r.db.Rebind(`
		SELECT `+notificationColumns+` FROM notifications
		WHERE target_user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`), userID, limit)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepository) FindForUser(ctx context.Context, id, userID int64) (*models.Notification, error) {
	var n models.Notification
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`
		SELECT `+notificationColumns+` FROM notifications
		WHERE id = ? AND target_user_id = ?`), id, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return &n, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE notifications SET is_read = ? WHERE id = ? AND target_user_id = ?`), true, id, userID)
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE notifications SET is_read = ? WHERE target_user_id = ? AND is_read = ?`), true, userID, false)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
