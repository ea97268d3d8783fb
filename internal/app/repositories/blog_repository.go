package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

const blogColumns = `b.id, b.author_id, u.first_name || CASE WHEN u.last_name = '' THEN '' ELSE ' ' || u.last_name END,
	b.title, b.content, b.excerpt, b.cover_image_url, b.status, b.tags,
	b.like_count, b.comment_count, b.view_count, b.published_at, b.created_at, b.updated_at`

// BlogListFilter is the allow-listed filter set for blog listings.
type BlogListFilter struct {
	Status   string
	AuthorID int64
	Search   string
	Tags     []string
	SortBy   string
	SortDir  string
	Limit    int
	Offset   int
}

// blogSortColumns is the allow-list of sortable columns. Anything else
// falls back to created_at.
var blogSortColumns = map[string]string{
	"created_at":   "b.created_at",
	"published_at": "b.published_at",
	"like_count":   "b.like_count",
	"view_count":   "b.view_count",
	"title":        "b.title",
}

func blogFilterConditions(f BlogListFilter) []squirrel.Sqlizer {
	var conds []squirrel.Sqlizer
	if f.Status != "" {
		conds = append(conds, squirrel.Eq{"b.status": f.Status})
	}
	if f.AuthorID > 0 {
		conds = append(conds, squirrel.Eq{"b.author_id": f.AuthorID})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"b.title": pattern},
			squirrel.ILike{"b.content": pattern},
			squirrel.ILike{"b.excerpt": pattern},
		})
	}
	if len(f.Tags) > 0 {
		conds = append(conds, squirrel.Expr("b.tags && ?", f.Tags))
	}
	return conds
}

// BuildBlogListQuery composes the listing SQL for a filter. Every value is
// bound; the only caller-influenced identifiers pass the sort allow-list.
func BuildBlogListQuery(f BlogListFilter) (string, []interface{}, error) {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sortCol, ok := blogSortColumns[f.SortBy]
	if !ok {
		sortCol = "b.created_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.SortDir, "asc") {
		dir = "ASC"
	}

	q := sb.Select(blogColumns).
		From("blogs b").
		Join("users u ON u.id = b.author_id")
	for _, c := range blogFilterConditions(f) {
		q = q.Where(c)
	}
	return q.OrderBy(sortCol + " " + dir).
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
}

// BuildBlogCountQuery composes the mirror count query for the same filter.
func BuildBlogCountQuery(f BlogListFilter) (string, []interface{}, error) {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	q := sb.Select("COUNT(*)").From("blogs b")
	for _, c := range blogFilterConditions(f) {
		q = q.Where(c)
	}
	return q.ToSql()
}

// BlogRepository handles blog rows and their child tables.
type BlogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBlogRepository creates a new BlogRepository.
func NewBlogRepository(db *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanBlog(row pgx.Row) (*models.Blog, error) {
	b := &models.Blog{}
	err := row.Scan(
		&b.ID, &b.AuthorID, &b.AuthorName, &b.Title, &b.Content, &b.Excerpt, &b.CoverImageURL,
		&b.Status, &b.Tags, &b.LikeCount, &b.CommentCount, &b.ViewCount,
		&b.PublishedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// List returns one page of blogs plus the unfiltered-by-page total.
func (r *BlogRepository) List(ctx context.Context, f BlogListFilter) ([]*models.Blog, int64, error) {
	countSQL, countArgs, err := BuildBlogCountQuery(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build blog count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting blogs: %w", err)
	}

	listSQL, listArgs, err := BuildBlogListQuery(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build blog list query: %w", err)
	}
	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := []*models.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning blog row: %w", err)
		}
		blogs = append(blogs, b)
	}
	return blogs, total, rows.Err()
}

// GetByID loads one blog with its author name.
func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	query := fmt.Sprintf("SELECT %s FROM blogs b JOIN users u ON u.id = b.author_id WHERE b.id = $1", blogColumns)
	b, err := scanBlog(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting blog: %w", err)
	}
	return b, nil
}

// Create inserts a blog and returns its id.
func (r *BlogRepository) Create(ctx context.Context, b *models.Blog) (int64, error) {
	query := `INSERT INTO blogs (author_id, title, content, excerpt, cover_image_url, status, tags, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		b.AuthorID, b.Title, b.Content, b.Excerpt, b.CoverImageURL, b.Status, b.Tags, b.PublishedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating blog: %w", err)
	}
	return id, nil
}

// Update rewrites a blog's mutable columns.
func (r *BlogRepository) Update(ctx context.Context, b *models.Blog) error {
	query := `UPDATE blogs SET title = $1, content = $2, excerpt = $3, cover_image_url = $4,
		status = $5, tags = $6, published_at = $7, updated_at = NOW() WHERE id = $8`
	tag, err := r.db.Exec(ctx, query,
		b.Title, b.Content, b.Excerpt, b.CoverImageURL, b.Status, b.Tags, b.PublishedAt, b.ID)
	if err != nil {
		return fmt.Errorf("error updating blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a blog and its child rows via cascade.
func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM blogs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasLiked reports whether the user currently likes the blog.
func (r *BlogRepository) HasLiked(ctx context.Context, blogID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM blog_likes WHERE blog_id = $1 AND user_id = $2)",
		blogID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking like: %w", err)
	}
	return exists, nil
}

// InsertLikeTx adds a like row and bumps the counter in one transaction.
func (r *BlogRepository) InsertLikeTx(ctx context.Context, tx pgx.Tx, blogID, userID int64) (int, error) {
	tag, err := tx.Exec(ctx,
		"INSERT INTO blog_likes (blog_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		blogID, userID)
	if err != nil {
		return 0, fmt.Errorf("error inserting like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Row already present: a concurrent toggle won; leave the counter alone.
		var count int
		if err := tx.QueryRow(ctx, "SELECT like_count FROM blogs WHERE id = $1", blogID).Scan(&count); err != nil {
			return 0, fmt.Errorf("error reading like count: %w", err)
		}
		return count, nil
	}

	var count int
	err = tx.QueryRow(ctx,
		"UPDATE blogs SET like_count = like_count + 1 WHERE id = $1 RETURNING like_count",
		blogID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error incrementing like count: %w", err)
	}
	return count, nil
}

// DeleteLikeTx removes a like row and drops the counter in one transaction.
func (r *BlogRepository) DeleteLikeTx(ctx context.Context, tx pgx.Tx, blogID, userID int64) (int, error) {
	tag, err := tx.Exec(ctx,
		"DELETE FROM blog_likes WHERE blog_id = $1 AND user_id = $2", blogID, userID)
	if err != nil {
		return 0, fmt.Errorf("error deleting like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var count int
		if err := tx.QueryRow(ctx, "SELECT like_count FROM blogs WHERE id = $1", blogID).Scan(&count); err != nil {
			return 0, fmt.Errorf("error reading like count: %w", err)
		}
		return count, nil
	}

	var count int
	err = tx.QueryRow(ctx,
		"UPDATE blogs SET like_count = GREATEST(like_count - 1, 0) WHERE id = $1 RETURNING like_count",
		blogID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error decrementing like count: %w", err)
	}
	return count, nil
}

// InsertCommentTx adds a comment and bumps the counter in one transaction.
func (r *BlogRepository) InsertCommentTx(ctx context.Context, tx pgx.Tx, c *models.BlogComment) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		"INSERT INTO blog_comments (blog_id, user_id, parent_id, content) VALUES ($1, $2, $3, $4) RETURNING id",
		c.BlogID, c.UserID, c.ParentID, c.Content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting comment: %w", err)
	}
	if _, err := tx.Exec(ctx,
		"UPDATE blogs SET comment_count = comment_count + 1 WHERE id = $1", c.BlogID); err != nil {
		return 0, fmt.Errorf("error incrementing comment count: %w", err)
	}
	return id, nil
}

// DeleteCommentTx removes a comment subtree and corrects the counter in one
// transaction. Replies go with their parent so the counter stays equal to
// the row count.
func (r *BlogRepository) DeleteCommentTx(ctx context.Context, tx pgx.Tx, blogID, commentID int64) error {
	tag, err := tx.Exec(ctx,
		"DELETE FROM blog_comments WHERE blog_id = $1 AND (id = $2 OR parent_id = $2)", blogID, commentID)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	if _, err := tx.Exec(ctx,
		"UPDATE blogs SET comment_count = GREATEST(comment_count - $1, 0) WHERE id = $2",
		tag.RowsAffected(), blogID); err != nil {
		return fmt.Errorf("error decrementing comment count: %w", err)
	}
	return nil
}

// GetComment loads one comment.
func (r *BlogRepository) GetComment(ctx context.Context, commentID int64) (*models.BlogComment, error) {
	c := &models.BlogComment{}
	err := r.db.QueryRow(ctx,
		`SELECT c.id, c.blog_id, c.user_id,
			u.first_name || CASE WHEN u.last_name = '' THEN '' ELSE ' ' || u.last_name END,
			c.parent_id, c.content, c.created_at
		FROM blog_comments c JOIN users u ON u.id = c.user_id WHERE c.id = $1`, commentID).
		Scan(&c.ID, &c.BlogID, &c.UserID, &c.AuthorName, &c.ParentID, &c.Content, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting comment: %w", err)
	}
	return c, nil
}

// ListComments returns all comments of a blog oldest first.
func (r *BlogRepository) ListComments(ctx context.Context, blogID int64) ([]*models.BlogComment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.blog_id, c.user_id,
			u.first_name || CASE WHEN u.last_name = '' THEN '' ELSE ' ' || u.last_name END,
			c.parent_id, c.content, c.created_at
		FROM blog_comments c JOIN users u ON u.id = c.user_id
		WHERE c.blog_id = $1 ORDER BY c.created_at ASC`, blogID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.BlogComment{}
	for rows.Next() {
		c := &models.BlogComment{}
		if err := rows.Scan(&c.ID, &c.BlogID, &c.UserID, &c.AuthorName, &c.ParentID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// RecordViewTx inserts a view row and bumps the counter in one transaction.
func (r *BlogRepository) RecordViewTx(ctx context.Context, tx pgx.Tx, blogID int64, userID *int64) error {
	if _, err := tx.Exec(ctx,
		"INSERT INTO blog_views (blog_id, user_id) VALUES ($1, $2)", blogID, userID); err != nil {
		return fmt.Errorf("error recording view: %w", err)
	}
	if _, err := tx.Exec(ctx,
		"UPDATE blogs SET view_count = view_count + 1 WHERE id = $1", blogID); err != nil {
		return fmt.Errorf("error incrementing view count: %w", err)
	}
	return nil
}
