package authz

import "taskly/internal/models"

// Role is the caller's relation to one task. It is derived per request from
// the task and its team, never stored.
type Role int

const (
	RoleNone Role = iota
	RoleAssignee
	RoleLead
)

func (r Role) String() string {
	switch r {
	case RoleAssignee:
		return "assignee"
	case RoleLead:
		return "lead"
	}
	return "none"
}

// RoleOf resolves userID's role on task. A lead who is also the assignee acts as lead.
func RoleOf(task *models.Task, team *models.Team, userID int64) Role {
	switch {
	case team != nil && team.LeadID == userID:
		return RoleLead
	case task != nil && task.AssigneeID == userID:
		return RoleAssignee
	}
	return RoleNone
}

// IsElevated reports whether the role may override the workflow.
func IsElevated(r Role) bool {
	return r == RoleLead
}

// IsRelated reports whether the role has any say over the task.
func IsRelated(r Role) bool {
	return r != RoleNone
}
