package models

import "time"

// Notification is a persisted message for one recipient. IsRead only ever flips to true.
type Notification struct {
	ID           int64     `json:"id" db:"id"`
	TargetUserID int64     `json:"-" db:"target_user_id"`
	Message      string    `json:"message" db:"message"`
	Link         string    `json:"link" db:"link"`
	IsRead       bool      `json:"is_read" db:"is_read"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// NotificationPushed is the live event written to a recipient's subscription channel.
type NotificationPushed struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) Pushed() NotificationPushed {
	return NotificationPushed{
		ID:        n.ID,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
