package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskly/internal/models"
	"taskly/internal/repositories"
	"taskly/internal/repositories/storetest"
)

var t0 = time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

func newTask(f *storetest.Fixture) *models.Task {
	return &models.Task{
		TeamID:     f.Team.ID,
		AssigneeID: f.Alice.ID,
		Title:      "Write release notes",
		Priority:   models.PriorityMedium,
		Status:     models.StatusToDo,
		CreatedAt:  t0,
		UpdatedAt:  t0,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := storetest.Open(t)
	require.NoError(t, repositories.Migrate(context.Background(), db))

	var version int
	require.NoError(t, db.Get(&version, `SELECT MAX(version) FROM schema_version`))
	assert.Equal(t, 1, version)
}

func TestTeamRepository(t *testing.T) {
	db := storetest.Open(t)
	f := storetest.Seed(t, db)
	ctx := context.Background()
	teams := repositories.NewTeamRepository(db)

	team, err := teams.FindByID(ctx, f.Team.ID)
	require.NoError(t, err)
	assert.Equal(t, "Platform", team.Name)
	assert.ElementsMatch(t, []int64{f.Lead.ID, f.Alice.ID, f.Bob.ID}, team.MemberIDs)

	ok, err := teams.IsMember(ctx, f.Team.ID, f.Bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = teams.IsMember(ctx, f.Team.ID, f.Outsider.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = teams.FindByID(ctx, 999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestTaskUpdateStatusVersioning(t *testing.T) {
	db := storetest.Open(t)
	f := storetest.Seed(t, db)
	ctx := context.Background()
	tasks := repositories.NewTaskRepository(db)

	task := newTask(f)
	require.NoError(t, tasks.Store(ctx, task))
	require.NotZero(t, task.ID)
	assert.Equal(t, int64(1), task.Version)

	stale := *task

	task.SetStatus(models.StatusDone, t0.Add(time.Hour))
	require.NoError(t, tasks.UpdateStatus(ctx, task))
	assert.Equal(t, int64(2), task.Version)

	got, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(t0.Add(time.Hour)))
	assert.Equal(t, int64(2), got.Version)

	stale.SetStatus(models.StatusInProgress, t0.Add(2*time.Hour))
	err = tasks.UpdateStatus(ctx, &stale)
	assert.ErrorIs(t, err, repositories.ErrStaleVersion)

	missing := newTask(f)
	missing.ID = 4242
	missing.Version = 1
	assert.ErrorIs(t, tasks.UpdateStatus(ctx, missing), repositories.ErrNotFound)
}

func TestTaskUpdateStatusWithActivityRollsBack(t *testing.T) {
	db := storetest.Open(t)
	f := storetest.Seed(t, db)
	ctx := context.Background()
	tasks := repositories.NewTaskRepository(db)
	activities := repositories.NewActivityRepository(db)

	task := newTask(f)
	require.NoError(t, tasks.Store(ctx, task))

	// author 9999 violates the users foreign key, so the status write must not stick
	task.SetStatus(models.StatusInProgress, t0.Add(time.Minute))
	bad := &models.Activity{TaskID: task.ID, AuthorID: 9999, Description: "x", CreatedAt: t0}
	require.Error(t, tasks.UpdateStatusWithActivity(ctx, task, bad))

	got, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusToDo, got.Status)
	assert.Equal(t, int64(1), got.Version)

	task.Version = got.Version
	good := &models.Activity{TaskID: task.ID, AuthorID: f.Lead.ID, Description: "reopened", CreatedAt: t0}
	require.NoError(t, tasks.UpdateStatusWithActivity(ctx, task, good))
	assert.NotZero(t, good.ID)

	feed, err := activities.ListByTeam(ctx, f.Team.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Lena Lead", feed[0].AuthorName)
	assert.Equal(t, "Write release notes", feed[0].TaskTitle)
}

func TestTaskListByAssignee(t *testing.T) {
	db := storetest.Open(t)
	f := storetest.Seed(t, db)
	ctx := context.Background()
	tasks := repositories.NewTaskRepository(db)

	late, early := t0.Add(72*time.Hour), t0.Add(24*time.Hour)
	a := newTask(f)
	a.Title, a.DueDate = "late", &late
	b := newTask(f)
	b.Title = "undated"
	c := newTask(f)
	c.Title, c.DueDate = "early", &early
	for _, task := range []*models.Task{a, b, c} {
		require.NoError(t, tasks.Store(ctx, task))
	}

	list, err := tasks.ListByAssignee(ctx, f.Alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"early", "late", "undated"}, []string{list[0].Title, list[1].Title, list[2].Title})

	list, err = tasks.ListByAssignee(ctx, f.Bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotificationRepository(t *testing.T) {
	db := storetest.Open(t)
	f := storetest.Seed(t, db)
	ctx := context.Background()
	repo := repositories.NewNotificationRepository(db)

	batch := []*models.Notification{
		{TargetUserID: f.Alice.ID, Message: "first", Link: "/tasks/1", CreatedAt: t0},
		{TargetUserID: f.Alice.ID, Message: "second", Link: "/tasks/2", CreatedAt: t0.Add(time.Minute)},
		{TargetUserID: f.Bob.ID, Message: "bob's", Link: "/tasks/3", CreatedAt: t0},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	for _, n := range batch {
		assert.NotZero(t, n.ID)
	}

	list, err := repo.ListForUser(ctx, f.Alice.ID, 15)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)

	list, err = repo.ListForUser(ctx, f.Alice.ID, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// bob's row is invisible to alice
	_, err = repo.FindForUser(ctx, batch[2].ID, f.Alice.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, repo.MarkRead(ctx, batch[0].ID, f.Alice.ID))
	n, err := repo.FindForUser(ctx, batch[0].ID, f.Alice.ID)
	require.NoError(t, err)
	assert.True(t, n.IsRead)

	changed, err := repo.MarkAllRead(ctx, f.Alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)
	changed, err = repo.MarkAllRead(ctx, f.Alice.ID)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestNotificationCreateBatchIsAllOrNothing(t *testing.T) {
	db := storetest.Open(t)
	f := storetest.Seed(t, db)
	ctx := context.Background()
	repo := repositories.NewNotificationRepository(db)

	batch := []*models.Notification{
		{TargetUserID: f.Alice.ID, Message: "ok", CreatedAt: t0},
		{TargetUserID: 9999, Message: "no such user", CreatedAt: t0},
	}
	require.Error(t, repo.CreateBatch(ctx, batch))
	assert.Zero(t, batch[0].ID)

	list, err := repo.ListForUser(ctx, f.Alice.ID, 15)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCommentRepository(t *testing.T) {
	db := storetest.Open(t)
	f := storetest.Seed(t, db)
	ctx := context.Background()
	tasks := repositories.NewTaskRepository(db)
	activities := repositories.NewActivityRepository(db)
	comments := repositories.NewCommentRepository(db)

	task := newTask(f)
	require.NoError(t, tasks.Store(ctx, task))
	activity := &models.Activity{TaskID: task.ID, AuthorID: f.Alice.ID, Description: "drafted", CreatedAt: t0}
	require.NoError(t, activities.Store(ctx, activity))

	root := &models.Comment{Parent: models.RootOf(activity.ID), AuthorID: f.Bob.ID, Content: "why?", CreatedAt: t0}
	require.NoError(t, comments.Store(ctx, root))
	assert.Equal(t, activity.ID, root.ActivityID)

	reply := &models.Comment{ActivityID: activity.ID, Parent: models.ReplyTo(root.ID), AuthorID: f.Alice.ID, Content: "because", CreatedAt: t0.Add(time.Second)}
	require.NoError(t, comments.Store(ctx, reply))

	got, err := comments.FindByID(ctx, reply.ID)
	require.NoError(t, err)
	parentID, ok := got.Parent.CommentID()
	assert.True(t, ok)
	assert.Equal(t, root.ID, parentID)
	assert.Equal(t, activity.ID, got.ActivityID)

	nodes, err := comments.ListByActivities(ctx, []int64{activity.ID})
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.True(t, nodes[0].Parent.IsRoot())
	assert.Equal(t, "Bob", nodes[0].AuthorName)

	_, err = comments.FindByID(ctx, 777)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.Error(t, comments.Store(ctx, &models.Comment{AuthorID: f.Bob.ID, Content: "orphan", CreatedAt: t0}))
}

func TestUserTelegramSettings(t *testing.T) {
	db := storetest.Open(t)
	f := storetest.Seed(t, db)
	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	require.NoError(t, users.UpdateTelegramLink(ctx, f.Bob.ID, 555, true))
	chatID, notify, err := users.GetTelegramSettings(ctx, f.Bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(555), chatID)
	assert.True(t, notify)

	assert.ErrorIs(t, users.UpdateTelegramLink(ctx, 9999, 1, true), repositories.ErrNotFound)

	list, err := users.GetByIDs(ctx, []int64{f.Bob.ID, f.Alice.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alice", list[0].FullName)
}
