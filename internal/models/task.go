package models

import "time"

// TaskStatus is the workflow position of a task.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusInReview   TaskStatus = "in_review"
	StatusDone       TaskStatus = "done"
	StatusCancelled  TaskStatus = "cancelled"
)

// AllStatuses lists every status in workflow order.
var AllStatuses = []TaskStatus{StatusToDo, StatusInProgress, StatusInReview, StatusDone, StatusCancelled}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusInReview, StatusDone, StatusCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work owned by one assignee inside one team.
// CompletedAt is set exactly while Status is done.
type Task struct {
	ID          int64        `json:"id" db:"id"`
	TeamID      int64        `json:"team_id" db:"team_id"`
	AssigneeID  int64        `json:"assigned_user_id" db:"assignee_id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Priority    TaskPriority `json:"priority" db:"priority"`
	Status      TaskStatus   `json:"status" db:"status"`
	StartDate   *time.Time   `json:"start_date,omitempty" db:"start_date"`
	DueDate     *time.Time   `json:"due_date,omitempty" db:"due_date"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
	Version     int64        `json:"version" db:"version"`
}

// SetStatus moves the task to status and keeps CompletedAt consistent with it.
func (t *Task) SetStatus(status TaskStatus, now time.Time) {
	if status == StatusDone && t.Status != StatusDone {
		t.CompletedAt = &now
	} else if status != StatusDone {
		t.CompletedAt = nil
	}
	t.Status = status
	t.UpdatedAt = now
}
