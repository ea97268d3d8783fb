package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBlogListQueryDefaults(t *testing.T) {
	sql, args, err := BuildBlogListQuery(BlogListFilter{Limit: 10, Offset: 0})
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM blogs b")
	assert.Contains(t, sql, "JOIN users u ON u.id = b.author_id")
	assert.Contains(t, sql, "ORDER BY b.created_at DESC")
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestBuildBlogListQueryFilters(t *testing.T) {
	sql, args, err := BuildBlogListQuery(BlogListFilter{
		Status:   "published",
		AuthorID: 7,
		Search:   "nebula",
		Tags:     []string{"astrophotography"},
		SortBy:   "like_count",
		SortDir:  "asc",
		Limit:    20,
		Offset:   40,
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "b.status = $1")
	assert.Contains(t, sql, "b.author_id = $2")
	assert.Contains(t, sql, "b.title ILIKE $3")
	assert.Contains(t, sql, "b.tags && $6")
	assert.Contains(t, sql, "ORDER BY b.like_count ASC")
	assert.Contains(t, sql, "LIMIT 20")
	assert.Contains(t, sql, "OFFSET 40")

	require.Len(t, args, 6)
	assert.Equal(t, "published", args[0])
	assert.Equal(t, int64(7), args[1])
	assert.Equal(t, "%nebula%", args[2])
	assert.Equal(t, []string{"astrophotography"}, args[5])
}

func TestBuildBlogListQueryUnknownSortFallsBack(t *testing.T) {
	sql, _, err := BuildBlogListQuery(BlogListFilter{
		SortBy: "id; DROP TABLE blogs",
		Limit:  10,
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "ORDER BY b.created_at DESC")
	assert.NotContains(t, sql, "DROP TABLE")
}

func TestBuildBlogCountQueryMirrorsFilters(t *testing.T) {
	sql, args, err := BuildBlogCountQuery(BlogListFilter{Status: "draft", AuthorID: 3})
	require.NoError(t, err)

	assert.Contains(t, sql, "SELECT COUNT(*) FROM blogs b")
	assert.Contains(t, sql, "b.status = $1")
	assert.Contains(t, sql, "b.author_id = $2")
	assert.Len(t, args, 2)
}
