package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"taskly/internal/models"
	"taskly/internal/repositories"
)

// Publisher pushes a live event to every open connection of a user and reports how many took it.
type Publisher interface {
	Publish(userID int64, ev models.NotificationPushed) int
}

// Relay delivers a notification through an offline channel (mail, messenger) to a user who is not connected.
type Relay interface {
	Name() string
	Deliver(ctx context.Context, user *models.User, n *models.Notification) error
}

// Notifier is the dispatch entry point used by the workflow services.
type Notifier interface {
	// CreateAndDispatch persists one row per distinct recipient (minus excludedUserID) in one batch,
	// then pushes each row to its recipient's live connections. Push never affects the stored rows.
	CreateAndDispatch(ctx context.Context, targetUserIDs []int64, excludedUserID int64, message, link string) ([]*models.Notification, error)
}

type NotificationService interface {
	Notifier
	ListForUser(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	// MarkOneRead returns the notification link. Repeating it is fine.
	MarkOneRead(ctx context.Context, userID, notificationID int64) (string, error)
	SendMeetingInvitation(ctx context.Context, senderID int64, targetUserIDs []int64, topic, link string) (int, error)
	// Wait blocks until background offline deliveries have finished.
	Wait()
}

type NotificationOptions struct {
	ListLimit    int
	RelayTimeout time.Duration
	Relays       []Relay
	Now          func() time.Time
}

type notificationService struct {
	repo      repositories.NotificationRepository
	users     repositories.UserRepository
	publisher Publisher
	log       logrus.FieldLogger
	opts      NotificationOptions

	relays sync.WaitGroup
}

func NewNotificationService(
	repo repositories.NotificationRepository,
	users repositories.UserRepository,
	publisher Publisher,
	log logrus.FieldLogger,
	opts NotificationOptions,
) NotificationService {
	if opts.ListLimit <= 0 {
		opts.ListLimit = 15
	}
	if opts.RelayTimeout <= 0 {
		opts.RelayTimeout = 10 * time.Second
	}
	if opts.Now == nil {
		opts.Now = utcNow
	}
	return &notificationService{repo: repo, users: users, publisher: publisher, log: log, opts: opts}
}

func utcNow() time.Time { return time.Now().UTC() }

// recipients dedupes ids in first-seen order and drops excluded and non-positive ids.
func recipients(ids []int64, excluded int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || id == excluded {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *notificationService) CreateAndDispatch(ctx context.Context, targetUserIDs []int64, excludedUserID int64, message, link string) ([]*models.Notification, error) {
	targets := recipients(targetUserIDs, excludedUserID)
	if len(targets) == 0 {
		return nil, nil
	}
	log := s.log.WithFields(logrus.Fields{"op": "notifications.dispatch", "recipients": len(targets), "link": link})

	now := s.opts.Now()
	batch := make([]*models.Notification, len(targets))
	for i, userID := range targets {
		batch[i] = &models.Notification{TargetUserID: userID, Message: message, Link: link, CreatedAt: now}
	}
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("store notifications: %w", err)
	}

	var offline []*models.Notification
	for _, n := range batch {
		if s.publisher.Publish(n.TargetUserID, n.Pushed()) == 0 {
			offline = append(offline, n)
		}
	}
	log.WithField("offline", len(offline)).Debug("notifications dispatched")

	if len(offline) > 0 && len(s.opts.Relays) > 0 {
		s.relay(context.WithoutCancel(ctx), offline)
	}
	return batch, nil
}

// relay hands notifications nobody received live to the offline relays in the background.
func (s *notificationService) relay(ctx context.Context, batch []*models.Notification) {
	s.relays.Add(1)
	go func() {
		defer s.relays.Done()
		ctx, cancel := context.WithTimeout(ctx, s.opts.RelayTimeout)
		defer cancel()

		ids := make([]int64, len(batch))
		for i, n := range batch {
			ids[i] = n.TargetUserID
		}
		users, err := s.users.GetByIDs(ctx, ids)
		if err != nil {
			s.log.WithError(err).WithField("op", "notifications.relay").Warn("load recipients failed")
			return
		}
		byID := make(map[int64]*models.User, len(users))
		for i := range users {
			byID[users[i].ID] = &users[i]
		}

		for _, n := range batch {
			user, ok := byID[n.TargetUserID]
			if !ok {
				continue
			}
			for _, r := range s.opts.Relays {
				if err := r.Deliver(ctx, user, n); err != nil {
					s.log.WithError(err).WithFields(logrus.Fields{
						"op":              "notifications.relay",
						"relay":           r.Name(),
						"user_id":         user.ID,
						"notification_id": n.ID,
					}).Warn("offline delivery failed")
				}
			}
		}
	}()
}

func (s *notificationService) Wait() { s.relays.Wait() }

func (s *notificationService) ListForUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	list, err := s.repo.ListForUser(ctx, userID, s.opts.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return n, nil
}

func (s *notificationService) MarkOneRead(ctx context.Context, userID, notificationID int64) (string, error) {
	n, err := s.repo.FindForUser(ctx, notificationID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", fail(ErrNotFound, "notification not found")
	}
	if err != nil {
		return "", fmt.Errorf("load notification: %w", err)
	}
	if n.IsRead {
		return n.Link, nil
	}
	if err := s.repo.MarkRead(ctx, n.ID, userID); err != nil {
		return "", fmt.Errorf("mark notification read: %w", err)
	}
	return n.Link, nil
}

func (s *notificationService) SendMeetingInvitation(ctx context.Context, senderID int64, targetUserIDs []int64, topic, link string) (int, error) {
	topic = strings.TrimSpace(topic)
	switch {
	case len(targetUserIDs) == 0:
		return 0, fail(ErrValidation, "at least one invitee is required")
	case topic == "":
		return 0, fail(ErrValidation, "meeting topic is required")
	case utf8.RuneCountInString(topic) > 200:
		return 0, fail(ErrValidation, "meeting topic must be at most 200 characters")
	case strings.TrimSpace(link) == "":
		return 0, fail(ErrValidation, "meeting link is required")
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if errors.Is(err, repositories.ErrNotFound) {
		return 0, fail(ErrUnauthorized, "unknown sender")
	}
	if err != nil {
		return 0, fmt.Errorf("load sender: %w", err)
	}

	msg := fmt.Sprintf("%s invites you to the meeting \"%s\"", sender.DisplayName(), topic)
	created, err := s.CreateAndDispatch(ctx, targetUserIDs, senderID, msg, link)
	if err != nil {
		return 0, err
	}
	return len(created), nil
}
