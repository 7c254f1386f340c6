package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"taskly/internal/models"
	"taskly/internal/realtime"
	"taskly/internal/repositories"
	"taskly/internal/repositories/storetest"
)

var t0 = time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

// fakeClock ticks one second per call so every write gets a distinct timestamp.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type env struct {
	ctx  context.Context
	f    *storetest.Fixture
	hook *test.Hook
	log  logrus.FieldLogger

	registry   *realtime.Registry
	taskRepo   repositories.TaskRepository
	notifRepo  repositories.NotificationRepository
	activities repositories.ActivityRepository

	notifications NotificationService
	tasks         TaskService
	comments      CommentService
	activity      ActivityService
	exporter      *fakeExporter
	relay         *fakeRelay
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := storetest.Open(t)
	f := storetest.Seed(t, db)
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	clock := &fakeClock{t: t0}

	users := repositories.NewUserRepository(db)
	teams := repositories.NewTeamRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	notifRepo := repositories.NewNotificationRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	registry := realtime.NewRegistry(8, log)
	relay := &fakeRelay{}
	notifications := NewNotificationService(notifRepo, users, registry, log, NotificationOptions{
		Relays: []Relay{relay},
		Now:    clock.Now,
	})
	t.Cleanup(notifications.Wait)

	tasks := NewTaskService(taskRepo, teams, users, notifications, log)
	tasks.(*taskService).now = clock.Now
	comments := NewCommentService(activityRepo, commentRepo, taskRepo, teams, users, notifications, log)
	comments.(*commentService).now = clock.Now
	exporter := &fakeExporter{}
	activity := NewActivityService(activityRepo, commentRepo, taskRepo, teams, exporter, log)
	activity.(*activityService).now = clock.Now

	return &env{
		ctx:           context.Background(),
		f:             f,
		hook:          hook,
		log:           log,
		registry:      registry,
		taskRepo:      taskRepo,
		notifRepo:     notifRepo,
		activities:    activityRepo,
		notifications: notifications,
		tasks:         tasks,
		comments:      comments,
		activity:      activity,
		exporter:      exporter,
		relay:         relay,
	}
}

// newTask creates a task in the fixture team assigned to Alice and returns it in the given status.
func (e *env) newTask(t *testing.T, status models.TaskStatus) *models.Task {
	t.Helper()
	task, err := e.tasks.Create(e.ctx, e.f.Lead.ID, CreateTaskInput{
		TeamID:     e.f.Team.ID,
		AssigneeID: e.f.Alice.ID,
		Title:      "Write release notes",
	})
	require.NoError(t, err)
	if status != models.StatusToDo {
		task, err = e.tasks.RequestTransition(e.ctx, task.ID, e.f.Lead.ID, status)
		require.NoError(t, err)
	}
	e.notifications.Wait()
	e.relay.reset()
	return task
}

func (e *env) reload(t *testing.T, id int64) *models.Task {
	t.Helper()
	task, err := e.taskRepo.FindByID(e.ctx, id)
	require.NoError(t, err)
	return task
}

func (e *env) inbox(t *testing.T, userID int64) []models.Notification {
	t.Helper()
	list, err := e.notifications.ListForUser(e.ctx, userID)
	require.NoError(t, err)
	return list
}

func drain(sub *realtime.Subscriber) []models.NotificationPushed {
	var out []models.NotificationPushed
	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return out
			}
			out = append(out, ev)
		default:
			return out
		}
	}
}

type delivery struct {
	relay  string
	userID int64
	msg    string
}

type fakeRelay struct {
	mu   sync.Mutex
	sent []delivery
	err  error
}

func (r *fakeRelay) Name() string { return "fake" }

func (r *fakeRelay) Deliver(_ context.Context, user *models.User, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, delivery{relay: "fake", userID: user.ID, msg: n.Message})
	return r.err
}

func (r *fakeRelay) deliveries() []delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]delivery(nil), r.sent...)
}

func (r *fakeRelay) reset() {
	r.mu.Lock()
	r.sent = nil
	r.mu.Unlock()
}

type fakeExporter struct {
	got *models.ActivityFeedItem
}

func (f *fakeExporter) ExportActivity(w io.Writer, item *models.ActivityFeedItem) error {
	f.got = item
	_, err := io.WriteString(w, "%PDF-fake")
	return err
}

type failingNotifier struct{}

func (failingNotifier) CreateAndDispatch(context.Context, []int64, int64, string, string) ([]*models.Notification, error) {
	return nil, errors.New("notification store down")
}
