package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskly/internal/models"
)

const shardCount = 32

// Subscriber is one live connection of one user. Events is closed when the subscriber is removed.
type Subscriber struct {
	ID     uuid.UUID
	UserID int64
	send   chan models.NotificationPushed
}

func (s *Subscriber) Events() <-chan models.NotificationPushed { return s.send }

type shard struct {
	mu   sync.RWMutex
	subs map[int64]map[uuid.UUID]*Subscriber
}

// Registry routes pushed notifications to every open connection of a user.
// It holds no business state; an empty registry just means nobody is online.
type Registry struct {
	shards [shardCount]shard
	buffer int
	log    logrus.FieldLogger
}

func NewRegistry(buffer int, log logrus.FieldLogger) *Registry {
	if buffer <= 0 {
		buffer = 1
	}
	r := &Registry{buffer: buffer, log: log}
	for i := range r.shards {
		r.shards[i].subs = make(map[int64]map[uuid.UUID]*Subscriber)
	}
	return r
}

func (r *Registry) shardFor(userID int64) *shard {
	return &r.shards[uint64(userID)%shardCount]
}

func (r *Registry) Subscribe(userID int64) *Subscriber {
	sub := &Subscriber{
		ID:     uuid.New(),
		UserID: userID,
		send:   make(chan models.NotificationPushed, r.buffer),
	}
	s := r.shardFor(userID)
	s.mu.Lock()
	if s.subs[userID] == nil {
		s.subs[userID] = make(map[uuid.UUID]*Subscriber)
	}
	s.subs[userID][sub.ID] = sub
	s.mu.Unlock()

	r.log.WithFields(logrus.Fields{"op": "realtime.subscribe", "user_id": userID, "sub_id": sub.ID}).Debug("subscriber connected")
	return sub
}

// Unsubscribe removes sub and closes its channel. Calling it twice is harmless.
func (r *Registry) Unsubscribe(sub *Subscriber) {
	s := r.shardFor(sub.UserID)
	s.mu.Lock()
	defer s.mu.Unlock()
	subs, ok := s.subs[sub.UserID]
	if !ok {
		return
	}
	if _, ok := subs[sub.ID]; !ok {
		return
	}
	delete(subs, sub.ID)
	if len(subs) == 0 {
		delete(s.subs, sub.UserID)
	}
	close(sub.send)
	r.log.WithFields(logrus.Fields{"op": "realtime.unsubscribe", "user_id": sub.UserID, "sub_id": sub.ID}).Debug("subscriber disconnected")
}

// Publish hands ev to each of the user's connections without blocking and returns how many accepted it.
// A connection whose buffer is full is skipped; the notification stays available through the poll path.
func (r *Registry) Publish(userID int64, ev models.NotificationPushed) int {
	s := r.shardFor(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	delivered := 0
	for _, sub := range s.subs[userID] {
		select {
		case sub.send <- ev:
			delivered++
		default:
			r.log.WithFields(logrus.Fields{"op": "realtime.publish", "user_id": userID, "sub_id": sub.ID, "notification_id": ev.ID}).
				Warn("subscriber buffer full, event dropped")
		}
	}
	return delivered
}

func (r *Registry) Connected(userID int64) bool {
	s := r.shardFor(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs[userID]) > 0
}

// Count returns the number of open subscriptions across all users.
func (r *Registry) Count() int {
	n := 0
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.RLock()
		for _, subs := range s.subs {
			n += len(subs)
		}
		s.mu.RUnlock()
	}
	return n
}

// Stream writes the subscriber's events to conn until the client disconnects, ctx ends,
// the subscriber is removed, or a write misses writeTimeout.
func Stream(ctx context.Context, conn *Conn, sub *Subscriber, writeTimeout time.Duration) error {
	gone := make(chan error, 1)
	go func() { gone <- conn.Drain() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-gone:
			return nil
		case ev, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := conn.WriteJSON(ev, writeTimeout); err != nil {
				return err
			}
		}
	}
}
