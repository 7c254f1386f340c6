package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskly/internal/models"
)

func TestLogActivity(t *testing.T) {
	e := newEnv(t)
	task := e.newTask(t, models.StatusInProgress)
	img := "https://cdn.example.com/a.png"

	a, err := e.activity.LogActivity(e.ctx, task.ID, e.f.Alice.ID, "  Wrote intro  ", &img)
	require.NoError(t, err)
	assert.Equal(t, "Wrote intro", a.Description)
	require.NotNil(t, a.ImageURL)
	assert.Equal(t, img, *a.ImageURL)

	_, err = e.activity.LogActivity(e.ctx, task.ID, e.f.Lead.ID, "lead note", nil)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = e.activity.LogActivity(e.ctx, task.ID, e.f.Alice.ID, "", nil)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = e.activity.LogActivity(e.ctx, task.ID, e.f.Alice.ID, strings.Repeat("x", 2001), nil)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = e.activity.LogActivity(e.ctx, 999, e.f.Alice.ID, "x", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFeedsCarryCommentForests(t *testing.T) {
	e := newEnv(t)
	task, first := e.activityByAlice(t)
	second, err := e.activity.LogActivity(e.ctx, task.ID, e.f.Alice.ID, "Second pass", nil)
	require.NoError(t, err)

	root, err := e.comments.AddRootComment(e.ctx, first.ID, e.f.Bob.ID, "Looks thin")
	require.NoError(t, err)
	_, err = e.comments.AddReply(e.ctx, root.ID, e.f.Alice.ID, "Expanded")
	require.NoError(t, err)

	mine, err := e.activity.TaskActivities(e.ctx, task.ID, e.f.Alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "newest first")
	assert.Empty(t, mine[0].Comments)
	require.Len(t, mine[1].Comments, 1)
	assert.Equal(t, "Looks thin", mine[1].Comments[0].Content)
	require.Len(t, mine[1].Comments[0].Replies, 1)
	assert.Equal(t, "Alice", mine[1].Comments[0].Replies[0].AuthorName)
	assert.Equal(t, "Write release notes", mine[1].TaskTitle)

	team, err := e.activity.TeamFeed(e.ctx, e.f.Team.ID, e.f.Bob.ID)
	require.NoError(t, err)
	assert.Len(t, team, 2)

	all, err := e.activity.MyActivities(e.ctx, e.f.Alice.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := e.activity.MyActivities(e.ctx, e.f.Bob.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFeedAccess(t *testing.T) {
	e := newEnv(t)
	task, _ := e.activityByAlice(t)

	_, err := e.activity.TaskActivities(e.ctx, task.ID, e.f.Bob.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, errMissing := e.activity.TaskActivities(e.ctx, 999, e.f.Bob.ID)
	assert.ErrorIs(t, errMissing, ErrForbidden)
	assert.Equal(t, err.Error(), errMissing.Error())

	_, err = e.activity.TeamFeed(e.ctx, e.f.Team.ID, e.f.Outsider.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = e.activity.TeamFeed(e.ctx, 999, e.f.Lead.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportActivity(t *testing.T) {
	e := newEnv(t)
	_, a := e.activityByAlice(t)
	_, err := e.comments.AddRootComment(e.ctx, a.ID, e.f.Lead.ID, "Nice")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.activity.ExportActivity(e.ctx, a.ID, e.f.Bob.ID, &buf))
	assert.Equal(t, "%PDF-fake", buf.String())
	require.NotNil(t, e.exporter.got)
	assert.Equal(t, a.ID, e.exporter.got.ID)
	assert.Len(t, e.exporter.got.Comments, 1)

	err = e.activity.ExportActivity(e.ctx, a.ID, e.f.Outsider.ID, &buf)
	assert.ErrorIs(t, err, ErrForbidden)
	err = e.activity.ExportActivity(e.ctx, 999, e.f.Bob.ID, &buf)
	assert.ErrorIs(t, err, ErrNotFound)
}
