package dto

import (
	"time"

	"github.com/stellarion/backend/internal/app/models"
)

// CreateBlogRequest creates a draft or published post.
type CreateBlogRequest struct {
	Title         string   `json:"title" binding:"required,min=3,max=200"`
	Content       string   `json:"content" binding:"required"`
	Excerpt       string   `json:"excerpt"`
	CoverImageURL string   `json:"coverImageUrl"`
	Status        string   `json:"status" binding:"omitempty,oneof=draft published"`
	Tags          []string `json:"tags"`
}

// UpdateBlogRequest mutates an existing post. Pointer fields distinguish
// "absent" from empty.
type UpdateBlogRequest struct {
	Title         *string   `json:"title" binding:"omitempty,min=3,max=200"`
	Content       *string   `json:"content"`
	Excerpt       *string   `json:"excerpt"`
	CoverImageURL *string   `json:"coverImageUrl"`
	Status        *string   `json:"status" binding:"omitempty,oneof=draft published"`
	Tags          *[]string `json:"tags"`
}

// BlogFilter is the allow-listed listing filter set.
type BlogFilter struct {
	Status   string   `form:"status" binding:"omitempty,oneof=draft published"`
	AuthorID int64    `form:"authorId"`
	Search   string   `form:"search"`
	Tags     []string `form:"tags"`
	SortBy   string   `form:"sortBy"`
	SortDir  string   `form:"sortDir" binding:"omitempty,oneof=asc desc"`
	Page     int      `form:"page"`
	Limit    int      `form:"limit"`
}

// BlogResponse is the listing/detail view of a post.
type BlogResponse struct {
	ID            int64    `json:"id"`
	AuthorID      int64    `json:"authorId"`
	AuthorName    string   `json:"authorName"`
	Title         string   `json:"title"`
	Content       string   `json:"content,omitempty"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	CoverImageURL *string  `json:"coverImageUrl,omitempty"`
	Status        string   `json:"status"`
	Tags          []string `json:"tags"`
	LikeCount     int      `json:"likeCount"`
	CommentCount  int      `json:"commentCount"`
	ViewCount     int      `json:"viewCount"`
	Liked         bool     `json:"liked"`
	PublishedAt   *string  `json:"publishedAt,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

// NewBlogResponse maps a blog model to its view.
func NewBlogResponse(b *models.Blog) BlogResponse {
	resp := BlogResponse{
		ID:            b.ID,
		AuthorID:      b.AuthorID,
		AuthorName:    b.AuthorName,
		Title:         b.Title,
		Content:       b.Content,
		Excerpt:       b.Excerpt,
		CoverImageURL: b.CoverImageURL,
		Status:        string(b.Status),
		Tags:          b.Tags,
		LikeCount:     b.LikeCount,
		CommentCount:  b.CommentCount,
		ViewCount:     b.ViewCount,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
	if b.PublishedAt != nil {
		s := b.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &s
	}
	return resp
}

// AddCommentRequest appends a comment, optionally under a parent.
type AddCommentRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=2000"`
	ParentID *int64 `json:"parentId"`
}

// CommentResponse is one node of the comment tree.
type CommentResponse struct {
	ID         int64              `json:"id"`
	UserID     int64              `json:"userId"`
	AuthorName string             `json:"authorName"`
	Content    string             `json:"content"`
	CreatedAt  string             `json:"createdAt"`
	Replies    []*CommentResponse `json:"replies"`
}

// LikeResponse reports the post-toggle like state.
type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}
