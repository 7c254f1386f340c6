package models

import (
	"encoding/json"
	"time"
)

type parentKind uint8

const (
	parentActivity parentKind = iota + 1
	parentComment
)

// CommentParent says what a comment hangs off: an activity (root) or another comment (reply).
// The zero value is invalid; build one with RootOf or ReplyTo.
type CommentParent struct {
	kind parentKind
	id   int64
}

func RootOf(activityID int64) CommentParent { return CommentParent{kind: parentActivity, id: activityID} }
func ReplyTo(commentID int64) CommentParent { return CommentParent{kind: parentComment, id: commentID} }

func (p CommentParent) Valid() bool  { return p.kind != 0 && p.id > 0 }
func (p CommentParent) IsRoot() bool { return p.kind == parentActivity }

// ActivityID returns the parent activity for a root comment.
func (p CommentParent) ActivityID() (int64, bool) { return p.id, p.kind == parentActivity }

// CommentID returns the parent comment for a reply.
func (p CommentParent) CommentID() (int64, bool) { return p.id, p.kind == parentComment }

func (p CommentParent) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case parentActivity:
		return json.Marshal(map[string]int64{"activity_id": p.id})
	case parentComment:
		return json.Marshal(map[string]int64{"comment_id": p.id})
	}
	return []byte("null"), nil
}

// Comment is immutable once written. ActivityID is the owning activity for roots and replies alike.
type Comment struct {
	ID         int64         `json:"id"`
	ActivityID int64         `json:"activity_id"`
	Parent     CommentParent `json:"parent"`
	AuthorID   int64         `json:"author_id"`
	Content    string        `json:"content"`
	CreatedAt  time.Time     `json:"created_at"`
}

// CommentNode is a comment with its replies, ordered by creation time.
type CommentNode struct {
	Comment
	AuthorName string         `json:"author_name,omitempty"`
	Replies    []*CommentNode `json:"replies"`
}
