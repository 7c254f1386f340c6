package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskly/internal/models"
)

func TestExportActivity(t *testing.T) {
	at := time.Date(2025, 9, 3, 14, 30, 0, 0, time.UTC)
	reply := &models.CommentNode{
		Comment:    models.Comment{ID: 2, Parent: models.ReplyTo(1), Content: "Fixed in the second draft.", CreatedAt: at.Add(time.Hour)},
		AuthorName: "Alice",
	}
	item := &models.ActivityFeedItem{
		Activity:   models.Activity{ID: 5, TaskID: 3, Description: "Drafted the release notes, café section pending.", CreatedAt: at},
		TaskTitle:  "Release notes",
		AuthorName: "Alice",
		Comments: []*models.CommentNode{{
			Comment:    models.Comment{ID: 1, Parent: models.RootOf(5), Content: "Missing the migration step?", CreatedAt: at.Add(time.Minute)},
			AuthorName: "Bob",
			Replies:    []*models.CommentNode{reply},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewThreadExporter("").ExportActivity(&buf, item))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestExportActivityWithoutComments(t *testing.T) {
	var buf bytes.Buffer
	item := &models.ActivityFeedItem{Activity: models.Activity{ID: 1, Description: "x"}, TaskTitle: "t"}
	require.NoError(t, NewThreadExporter("").ExportActivity(&buf, item))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestCountNodes(t *testing.T) {
	tree := []*models.CommentNode{
		{Replies: []*models.CommentNode{{Replies: []*models.CommentNode{{}}}}},
		{},
	}
	assert.Equal(t, 4, countNodes(tree))
}
