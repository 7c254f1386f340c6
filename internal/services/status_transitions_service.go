package services

import (
	"taskly/internal/authz"
	"taskly/internal/models"
)

type transitionKey struct {
	from models.TaskStatus
	role authz.Role
}

// TaskTransitions lists the targets each role may request from each status through the generic path.
// Assignees only move work forward into progress or review; the lead may set any status.
// Approve and Reopen are separate operations that additionally require in_review.
var TaskTransitions = buildTaskTransitions()

func buildTaskTransitions() map[transitionKey]map[models.TaskStatus]bool {
	table := make(map[transitionKey]map[models.TaskStatus]bool)
	for _, from := range models.AllStatuses {
		table[transitionKey{from, authz.RoleAssignee}] = map[models.TaskStatus]bool{
			models.StatusInProgress: true,
			models.StatusInReview:   true,
		}
		lead := make(map[models.TaskStatus]bool, len(models.AllStatuses))
		for _, to := range models.AllStatuses {
			lead[to] = true
		}
		table[transitionKey{from, authz.RoleLead}] = lead
	}
	return table
}

func canTransition(current, to models.TaskStatus, role authz.Role) bool {
	return TaskTransitions[transitionKey{current, role}][to]
}
