package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarion/backend/internal/app/models"
)

func comment(id int64, parentID *int64, content string) *models.BlogComment {
	return &models.BlogComment{
		ID:         id,
		BlogID:     1,
		UserID:     10,
		AuthorName: "Amara Perera",
		ParentID:   parentID,
		Content:    content,
		CreatedAt:  time.Date(2026, 3, 2, 12, 0, int(id), 0, time.UTC),
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestBuildCommentTreeNestsReplies(t *testing.T) {
	comments := []*models.BlogComment{
		comment(1, nil, "root one"),
		comment(2, nil, "root two"),
		comment(3, int64Ptr(1), "reply to one"),
		comment(4, int64Ptr(1), "second reply to one"),
	}

	tree := BuildCommentTree(comments)

	require.Len(t, tree, 2)
	assert.Equal(t, int64(1), tree[0].ID)
	assert.Equal(t, int64(2), tree[1].ID)
	require.Len(t, tree[0].Replies, 2)
	assert.Equal(t, "reply to one", tree[0].Replies[0].Content)
	assert.Equal(t, "second reply to one", tree[0].Replies[1].Content)
	assert.Empty(t, tree[1].Replies)
}

func TestBuildCommentTreeOrphanBecomesRoot(t *testing.T) {
	comments := []*models.BlogComment{
		comment(1, nil, "root"),
		comment(5, int64Ptr(99), "parent was deleted"),
	}

	tree := BuildCommentTree(comments)

	require.Len(t, tree, 2)
	assert.Equal(t, int64(5), tree[1].ID)
}

func TestBuildCommentTreeEmpty(t *testing.T) {
	tree := BuildCommentTree(nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}
