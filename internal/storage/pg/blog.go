package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
)

const blogPostColumns = "id, title, slug, excerpt, body, cover_image, category, tags, is_published, published_at, created, updated"

func scanBlogPost(row interface{ Scan(dest ...any) error }) (domain.BlogPost, error) {
	var p domain.BlogPost
	err := row.Scan(&p.Id, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.CoverImage,
		&p.Category, &p.Tags, &p.IsPublished, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Storage) CreateBlogPost(p domain.BlogPost) error {
	_, err := s.db.Exec(
		"INSERT INTO blog_posts("+blogPostColumns+") VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)",
		p.Id, p.Title, p.Slug, p.Excerpt, p.Body, p.CoverImage,
		p.Category, p.Tags, p.IsPublished, p.PublishedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "blog_posts_slug_key") {
			return internal_errors.Conflict("Slug already in use")
		}
		return fmt.Errorf("failed to insert blog post: %w", err)
	}
	return nil
}

func (s *Storage) BlogPostById(id uuid.UUID) (domain.BlogPost, error) {
	p, err := scanBlogPost(s.db.QueryRow("SELECT "+blogPostColumns+" FROM blog_posts WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BlogPost{}, internal_errors.NotFound("Blog post not found")
		}
		return domain.BlogPost{}, fmt.Errorf("failed to query blog post: %w", err)
	}
	return p, nil
}

func (s *Storage) BlogPostBySlug(slug string) (domain.BlogPost, error) {
	p, err := scanBlogPost(s.db.QueryRow("SELECT "+blogPostColumns+" FROM blog_posts WHERE slug = $1", slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BlogPost{}, internal_errors.NotFound("Blog post not found")
		}
		return domain.BlogPost{}, fmt.Errorf("failed to query blog post: %w", err)
	}
	return p, nil
}

// BlogSlugTaken is the repository-side pre-check; the unique constraint on
// slug remains the real safeguard against concurrent writers.
func (s *Storage) BlogSlugTaken(slug string, exclude uuid.UUID) (bool, error) {
	var taken bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1 AND id != $2)",
		slug, exclude,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check blog slug: %w", err)
	}
	return taken, nil
}

func (s *Storage) UpdateBlogPost(p domain.BlogPost) error {
	result, err := s.db.Exec(
		`UPDATE blog_posts SET title = $2, slug = $3, excerpt = $4, body = $5, cover_image = $6,
		 category = $7, tags = $8, is_published = $9, published_at = $10, updated = $11 WHERE id = $1`,
		p.Id, p.Title, p.Slug, p.Excerpt, p.Body, p.CoverImage,
		p.Category, p.Tags, p.IsPublished, p.PublishedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "blog_posts_slug_key") {
			return internal_errors.Conflict("Slug already in use")
		}
		return fmt.Errorf("failed to update blog post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for blog post update: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NotFound("Blog post not found")
	}
	return nil
}

func (s *Storage) DeleteBlogPost(id uuid.UUID) error {
	result, err := s.db.Exec("DELETE FROM blog_posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for blog post deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return internal_errors.NotFound("Blog post not found")
	}
	return nil
}

// contentWhere builds the WHERE clause for the shared filter predicates.
func contentWhere(f domain.ContentFilter, includeFeatured bool) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if f.Category != "" {
		add("category = ?", f.Category)
	}
	if f.Tag != "" {
		add("? = ANY(tags)", f.Tag)
	}
	if f.Published != nil {
		add("is_published = ?", *f.Published)
	}
	if includeFeatured && f.Featured != nil {
		add("is_featured = ?", *f.Featured)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListBlogPosts returns one page sorted by publish recency (drafts sort by
// creation time) plus the total matching count.
func (s *Storage) ListBlogPosts(f domain.ContentFilter, limit, offset int) ([]domain.BlogPost, int, error) {
	where, args := contentWhere(f, false)

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM blog_posts"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blog posts: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT "+blogPostColumns+" FROM blog_posts"+where+
			" ORDER BY COALESCE(published_at, created) DESC LIMIT $%d OFFSET $%d",
		len(args)+1, len(args)+2,
	)
	rows, err := s.db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.BlogPost{}
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
