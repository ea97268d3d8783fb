package models

import "time"

// BlogStatus is the lifecycle state of a blog post.
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

// IsValid reports whether s is a known blog status.
func (s BlogStatus) IsValid() bool {
	return s == BlogDraft || s == BlogPublished
}

// Blog is a content item owned by one account. The denormalized counters
// are maintained in the same transaction as their child-table writes, so
// LikeCount always equals count(blog_likes) and CommentCount equals
// count(blog_comments) after any designated action.
type Blog struct {
	ID            int64
	AuthorID      int64
	AuthorName    string
	Title         string
	Content       string
	Excerpt       *string
	CoverImageURL *string
	Status        BlogStatus
	Tags          []string
	LikeCount     int
	CommentCount  int
	ViewCount     int
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BlogComment belongs to a blog and optionally to a parent comment.
type BlogComment struct {
	ID         int64
	BlogID     int64
	UserID     int64
	AuthorName string
	ParentID   *int64
	Content    string
	CreatedAt  time.Time
}
