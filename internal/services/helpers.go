package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"taskly/internal/models"
	"taskly/internal/repositories"
)

// displayName is only used for post-commit messages, so it also ignores request cancellation.
func displayName(ctx context.Context, users repositories.UserRepository, log logrus.FieldLogger, userID int64) string {
	u, err := users.GetByID(context.WithoutCancel(ctx), userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("display name lookup failed")
		return (*models.User)(nil).DisplayName()
	}
	return u.DisplayName()
}

// dispatch runs after the triggering write has committed. A failure is logged and never undoes that write.
// The request may already be gone, so the notification is stored on a context that outlives it.
func dispatch(ctx context.Context, n Notifier, log logrus.FieldLogger, targets []int64, actor int64, msg, link string) {
	if _, err := n.CreateAndDispatch(context.WithoutCancel(ctx), targets, actor, msg, link); err != nil {
		log.WithError(err).Warn("notification dispatch failed")
	}
}
