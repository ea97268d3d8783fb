package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/app/models/dto"
	"github.com/stellarion/backend/internal/app/repositories"
	"github.com/stellarion/backend/internal/db"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	"github.com/stellarion/backend/internal/pkg/helpers"
)

// BlogService defines the interface for blog operations.
type BlogService interface {
	List(ctx context.Context, filter *dto.BlogFilter) (*dto.PagedResponse, error)
	Get(ctx context.Context, blogID int64, viewerID *int64) (*dto.BlogResponse, error)
	Create(ctx context.Context, author *models.User, req *dto.CreateBlogRequest) (*dto.BlogResponse, error)
	Update(ctx context.Context, actor *models.User, blogID int64, req *dto.UpdateBlogRequest) (*dto.BlogResponse, error)
	Delete(ctx context.Context, actor *models.User, blogID int64) error
	ToggleLike(ctx context.Context, userID, blogID int64) (*dto.LikeResponse, error)
	AddComment(ctx context.Context, user *models.User, blogID int64, req *dto.AddCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, actor *models.User, blogID, commentID int64) error
	ListComments(ctx context.Context, blogID int64) ([]*dto.CommentResponse, error)
}

type blogServiceImpl struct {
	database *db.PostgresDB
	blogRepo *repositories.BlogRepository
	logger   zerolog.Logger
}

// NewBlogService creates a new BlogService.
func NewBlogService(database *db.PostgresDB, blogRepo *repositories.BlogRepository, logger zerolog.Logger) BlogService {
	return &blogServiceImpl{database: database, blogRepo: blogRepo, logger: logger}
}

// List returns one page of blogs through the filter composer.
func (s *blogServiceImpl) List(ctx context.Context, filter *dto.BlogFilter) (*dto.PagedResponse, error) {
	page, limit, offset := helpers.NormalizePagination(filter.Page, filter.Limit)

	status := filter.Status
	if status == "" {
		// Unfiltered listings only surface published posts.
		status = string(models.BlogPublished)
	}

	blogs, total, err := s.blogRepo.List(ctx, repositories.BlogListFilter{
		Status:   status,
		AuthorID: filter.AuthorID,
		Search:   filter.Search,
		Tags:     filter.Tags,
		SortBy:   filter.SortBy,
		SortDir:  filter.SortDir,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		resp := dto.NewBlogResponse(b)
		resp.Content = ""
		items = append(items, resp)
	}
	return &dto.PagedResponse{
		Items:      items,
		Pagination: dto.Pagination{Page: page, Limit: limit, Total: total, Pages: helpers.TotalPages(total, limit)},
	}, nil
}

// Get returns one blog and records the view.
func (s *blogServiceImpl) Get(ctx context.Context, blogID int64, viewerID *int64) (*dto.BlogResponse, error) {
	b, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.blogRepo.RecordViewTx(ctx, tx, blogID, viewerID)
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("blogId", blogID).Msg("Failed to record blog view")
	} else {
		b.ViewCount++
	}

	resp := dto.NewBlogResponse(b)
	if viewerID != nil {
		liked, err := s.blogRepo.HasLiked(ctx, blogID, *viewerID)
		if err == nil {
			resp.Liked = liked
		}
	}
	return &resp, nil
}

// Create inserts a new post for the author.
func (s *blogServiceImpl) Create(ctx context.Context, author *models.User, req *dto.CreateBlogRequest) (*dto.BlogResponse, error) {
	status := models.BlogStatus(req.Status)
	if req.Status == "" {
		status = models.BlogDraft
	}
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("status must be draft or published")
	}

	b := &models.Blog{
		AuthorID: author.ID,
		Title:    req.Title,
		Content:  req.Content,
		Status:   status,
		Tags:     req.Tags,
	}
	if req.Excerpt != "" {
		b.Excerpt = &req.Excerpt
	}
	if req.CoverImageURL != "" {
		b.CoverImageURL = &req.CoverImageURL
	}
	if status == models.BlogPublished {
		now := time.Now()
		b.PublishedAt = &now
	}

	id, err := s.blogRepo.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	return s.viewOf(ctx, id)
}

func (s *blogServiceImpl) viewOf(ctx context.Context, blogID int64) (*dto.BlogResponse, error) {
	b, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewBlogResponse(b)
	return &resp, nil
}

func canActOn(actor *models.User, ownerID int64) error {
	if actor.ID == ownerID || actor.Role.IsElevated() {
		return nil
	}
	return apperrors.ErrForbidden
}

// Update mutates a post owned by the actor, or any post for elevated roles.
func (s *blogServiceImpl) Update(ctx context.Context, actor *models.User, blogID int64, req *dto.UpdateBlogRequest) (*dto.BlogResponse, error) {
	b, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if err := canActOn(actor, b.AuthorID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	if req.Excerpt != nil {
		b.Excerpt = req.Excerpt
	}
	if req.CoverImageURL != nil {
		b.CoverImageURL = req.CoverImageURL
	}
	if req.Tags != nil {
		b.Tags = *req.Tags
	}
	if req.Status != nil {
		next := models.BlogStatus(*req.Status)
		if !next.IsValid() {
			return nil, apperrors.NewValidationError("status must be draft or published")
		}
		if next == models.BlogPublished && b.Status == models.BlogDraft {
			now := time.Now()
			b.PublishedAt = &now
		}
		b.Status = next
	}

	if err := s.blogRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return s.viewOf(ctx, blogID)
}

// Delete removes a post owned by the actor, or any post for elevated roles.
func (s *blogServiceImpl) Delete(ctx context.Context, actor *models.User, blogID int64) error {
	b, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return err
	}
	if err := canActOn(actor, b.AuthorID); err != nil {
		return err
	}
	return s.blogRepo.Delete(ctx, blogID)
}

// ToggleLike flips the caller's like on the blog. The like row and the
// counter move in one transaction.
func (s *blogServiceImpl) ToggleLike(ctx context.Context, userID, blogID int64) (*dto.LikeResponse, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	liked, err := s.blogRepo.HasLiked(ctx, blogID, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.LikeResponse{}
	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var count int
		var txErr error
		if liked {
			count, txErr = s.blogRepo.DeleteLikeTx(ctx, tx, blogID, userID)
		} else {
			count, txErr = s.blogRepo.InsertLikeTx(ctx, tx, blogID, userID)
		}
		if txErr != nil {
			return txErr
		}
		resp.Liked = !liked
		resp.LikeCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AddComment appends a comment. A reply to a reply attaches to the thread's
// root comment so every reply stays one level deep and reachable.
func (s *blogServiceImpl) AddComment(ctx context.Context, user *models.User, blogID int64, req *dto.AddCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	parentID := req.ParentID
	if parentID != nil {
		parent, err := s.blogRepo.GetComment(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.BlogID != blogID {
			return nil, apperrors.NewBadRequestError("parent comment belongs to a different blog")
		}
		if parent.ParentID != nil {
			parentID = parent.ParentID
		}
	}

	c := &models.BlogComment{
		BlogID:   blogID,
		UserID:   user.ID,
		ParentID: parentID,
		Content:  req.Content,
	}
	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		id, txErr := s.blogRepo.InsertCommentTx(ctx, tx, c)
		if txErr != nil {
			return txErr
		}
		c.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CommentResponse{
		ID:         c.ID,
		UserID:     user.ID,
		AuthorName: user.FullName(),
		Content:    c.Content,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Replies:    []*dto.CommentResponse{},
	}, nil
}

// DeleteComment removes a comment owned by the actor, or any comment for
// elevated roles.
func (s *blogServiceImpl) DeleteComment(ctx context.Context, actor *models.User, blogID, commentID int64) error {
	c, err := s.blogRepo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if c.BlogID != blogID {
		return apperrors.ErrNotFound
	}
	if err := canActOn(actor, c.UserID); err != nil {
		return err
	}
	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.blogRepo.DeleteCommentTx(ctx, tx, blogID, commentID)
	})
}

// ListComments returns the blog's comment tree.
func (s *blogServiceImpl) ListComments(ctx context.Context, blogID int64) ([]*dto.CommentResponse, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return nil, err
	}
	comments, err := s.blogRepo.ListComments(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(comments), nil
}

// BuildCommentTree arranges flat comment rows into root comments with one
// level of replies. A reply whose parent is missing becomes a root so it
// never silently disappears.
func BuildCommentTree(comments []*models.BlogComment) []*dto.CommentResponse {
	nodes := make(map[int64]*dto.CommentResponse, len(comments))
	roots := []*dto.CommentResponse{}

	for _, c := range comments {
		nodes[c.ID] = &dto.CommentResponse{
			ID:         c.ID,
			UserID:     c.UserID,
			AuthorName: c.AuthorName,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339),
			Replies:    []*dto.CommentResponse{},
		}
	}
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots
}
