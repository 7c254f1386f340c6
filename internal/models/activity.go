package models

import "time"

// Activity is a progress log entry on a task, normally written by its assignee.
type Activity struct {
	ID          int64     `json:"id" db:"id"`
	TaskID      int64     `json:"task_id" db:"task_id"`
	AuthorID    int64     `json:"author_id" db:"author_id"`
	Description string    `json:"description" db:"description"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ActivityFeedItem is an activity with its task context and assembled discussion.
type ActivityFeedItem struct {
	Activity
	TaskTitle  string         `json:"task_title" db:"task_title"`
	AuthorName string         `json:"author_name" db:"author_name"`
	Comments   []*CommentNode `json:"comments" db:"-"`
}
