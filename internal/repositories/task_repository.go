package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskly/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	ListByAssignee(ctx context.Context, assigneeID int64) ([]models.Task, error)

	// UpdateStatus writes status, completed_at and updated_at if task.Version still matches the row,
	// then bumps task.Version. ErrStaleVersion means another writer got there first.
	UpdateStatus(ctx context.Context, task *models.Task) error
	// UpdateStatusWithActivity is UpdateStatus plus an activity insert, committed together.
	UpdateStatusWithActivity(ctx context.Context, task *models.Task, activity *models.Activity) error
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, team_id, assignee_id, title, description, priority, status,
	start_date, due_date, created_at, updated_at, completed_at, version`

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	if task.Version == 0 {
		task.Version = 1
	}
	id, err := insertReturningID(ctx, r.db, `
		INSERT INTO tasks (
			team_id, assignee_id, title, description, priority, status,
			start_date, due_date, created_at, updated_at, completed_at, version
		)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
		RETURNING id`,
		task.TeamID, task.AssigneeID, task.Title, task.Description, task.Priority, task.Status,
		task.StartDate, task.DueDate, task.CreatedAt, task.UpdatedAt, task.CompletedAt, task.Version,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	task.ID = id
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	err := r.db.GetContext(ctx, &task, r.db.Rebind(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id)
	if err != nil {
		return nil, notFound(err)
	}
	return &task, nil
}

func (r *taskRepository) ListByAssignee(ctx context.Context, assigneeID int64) ([]models.Task, error) {
	// tasks without a due date sort last on both drivers
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE assignee_id = ?
		ORDER BY CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date, id`
	tasks := []models.Task{}
	if err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(query), assigneeID); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, task *models.Task) error {
	if err := updateStatus(ctx, r.db, task); err != nil {
		return err
	}
	task.Version++
	return nil
}

func (r *taskRepository) UpdateStatusWithActivity(ctx context.Context, task *models.Task, activity *models.Activity) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := updateStatus(ctx, tx, task); err != nil {
		return err
	}
	if err := insertActivity(ctx, tx, activity); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	task.Version++
	return nil
}

func updateStatus(ctx context.Context, q sqlx.ExtContext, task *models.Task) error {
	res, err := q.ExecContext(ctx, q.Rebind(`
		UPDATE tasks
		SET status = ?, completed_at = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?`),
		task.Status, task.CompletedAt, task.UpdatedAt, task.ID, task.Version,
	)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var exists int
	if err := sqlx.GetContext(ctx, q, &exists, q.Rebind(`SELECT COUNT(*) FROM tasks WHERE id = ?`), task.ID); err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}
	return ErrStaleVersion
}
