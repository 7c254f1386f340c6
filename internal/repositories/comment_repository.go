package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"taskly/internal/models"
)

type CommentRepository interface {
	Store(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id int64) (*models.Comment, error)
	// ListByActivities returns every comment under the given activities, oldest first, with author names.
	ListByActivities(ctx context.Context, activityIDs []int64) ([]*models.CommentNode, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// commentRow is the storage shape: parent_comment_id is null for roots.
type commentRow struct {
	ID              int64         `db:"id"`
	ActivityID      int64         `db:"activity_id"`
	ParentCommentID sql.NullInt64 `db:"parent_comment_id"`
	AuthorID        int64         `db:"author_id"`
	AuthorName      string        `db:"author_name"`
	Content         string        `db:"content"`
	CreatedAt       time.Time     `db:"created_at"`
}

func (row commentRow) comment() models.Comment {
	parent := models.RootOf(row.ActivityID)
	if row.ParentCommentID.Valid {
		parent = models.ReplyTo(row.ParentCommentID.Int64)
	}
	return models.Comment{
		ID:         row.ID,
		ActivityID: row.ActivityID,
		Parent:     parent,
		AuthorID:   row.AuthorID,
		Content:    row.Content,
		CreatedAt:  row.CreatedAt,
	}
}

const commentSelect = `
	SELECT c.id, c.activity_id, c.parent_comment_id, c.author_id, c.content, c.created_at,
	       COALESCE(u.full_name, '') AS author_name
	FROM comments c
	LEFT JOIN users u ON u.id = c.author_id`

// Store inserts a comment. For a reply, comment.ActivityID must already hold the parent's activity.
func (r *commentRepository) Store(ctx context.Context, comment *models.Comment) error {
	if !comment.Parent.Valid() {
		return errors.New("comment parent is not set")
	}
	var parentID sql.NullInt64
	if id, ok := comment.Parent.CommentID(); ok {
		parentID = sql.NullInt64{Int64: id, Valid: true}
	} else {
		comment.ActivityID, _ = comment.Parent.ActivityID()
	}

	id, err := insertReturningID(ctx, r.db, `
		INSERT INTO comments (activity_id, parent_comment_id, author_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		comment.ActivityID, parentID, comment.AuthorID, comment.Content, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	comment.ID = id
	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	var row commentRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(commentSelect+` WHERE c.id = ?`), id); err != nil {
		return nil, notFound(err)
	}
	c := row.comment()
	return &c, nil
}

func (r *commentRepository) ListByActivities(ctx context.Context, activityIDs []int64) ([]*models.CommentNode, error) {
	if len(activityIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(commentSelect+` WHERE c.activity_id IN (?) ORDER BY c.created_at, c.id`, activityIDs)
	if err != nil {
		return nil, err
	}
	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	nodes := make([]*models.CommentNode, 0, len(rows))
	for _, row := range rows {
		nodes = append(nodes, &models.CommentNode{Comment: row.comment(), AuthorName: row.AuthorName, Replies: []*models.CommentNode{}})
	}
	return nodes, nil
}
