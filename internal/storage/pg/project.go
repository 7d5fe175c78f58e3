package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
)

const projectColumns = "id, title, slug, description, body, cover_image, category, tags, live_url, repo_url, is_featured, display_order, is_published, published_at, created, updated"

func scanProject(row interface{ Scan(dest ...any) error }) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.Id, &p.Title, &p.Slug, &p.Description, &p.Body, &p.CoverImage,
		&p.Category, &p.Tags, &p.LiveURL, &p.RepoURL, &p.IsFeatured, &p.DisplayOrder,
		&p.IsPublished, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreateProject inserts a project. A nil order means append-to-end: the
// display order resolves to max+1 inside the insert itself.
func (s *Storage) CreateProject(p domain.Project, order *int) (domain.Project, error) {
	var orderArg sql.NullInt64
	if order != nil {
		orderArg = sql.NullInt64{Int64: int64(*order), Valid: true}
	}

	err := s.db.QueryRow(
		`INSERT INTO projects(`+projectColumns+`)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        COALESCE($12, (SELECT COALESCE(MAX(display_order), 0) + 1 FROM projects)),
		        $13, $14, $15, $16)
		 RETURNING display_order`,
		p.Id, p.Title, p.Slug, p.Description, p.Body, p.CoverImage,
		p.Category, p.Tags, p.LiveURL, p.RepoURL, p.IsFeatured, orderArg,
		p.IsPublished, p.PublishedAt, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.DisplayOrder)
	if err != nil {
		if isUniqueViolation(err, "projects_slug_key") {
			return domain.Project{}, internal_errors.Conflict("Slug already in use")
		}
		return domain.Project{}, fmt.Errorf("failed to insert project: %w", err)
	}
	return p, nil
}

func (s *Storage) ProjectById(id uuid.UUID) (domain.Project, error) {
	p, err := scanProject(s.db.QueryRow("SELECT "+projectColumns+" FROM projects WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Project{}, internal_errors.NotFound("Project not found")
		}
		return domain.Project{}, fmt.Errorf("failed to query project: %w", err)
	}
	return p, nil
}

func (s *Storage) ProjectBySlug(slug string) (domain.Project, error) {
	p, err := scanProject(s.db.QueryRow("SELECT "+projectColumns+" FROM projects WHERE slug = $1", slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Project{}, internal_errors.NotFound("Project not found")
		}
		return domain.Project{}, fmt.Errorf("failed to query project: %w", err)
	}
	return p, nil
}

func (s *Storage) ProjectSlugTaken(slug string, exclude uuid.UUID) (bool, error) {
	var taken bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM projects WHERE slug = $1 AND id != $2)",
		slug, exclude,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check project slug: %w", err)
	}
	return taken, nil
}

func (s *Storage) UpdateProject(p domain.Project) error {
	result, err := s.db.Exec(
		`UPDATE projects SET title = $2, slug = $3, description = $4, body = $5, cover_image = $6,
		 category = $7, tags = $8, live_url = $9, repo_url = $10, is_featured = $11,
		 display_order = $12, is_published = $13, published_at = $14, updated = $15 WHERE id = $1`,
		p.Id, p.Title, p.Slug, p.Description, p.Body, p.CoverImage,
		p.Category, p.Tags, p.LiveURL, p.RepoURL, p.IsFeatured,
		p.DisplayOrder, p.IsPublished, p.PublishedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "projects_slug_key") {
			return internal_errors.Conflict("Slug already in use")
		}
		return fmt.Errorf("failed to update project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for project update: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NotFound("Project not found")
	}
	return nil
}

func (s *Storage) DeleteProject(id uuid.UUID) error {
	result, err := s.db.Exec("DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for project deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return internal_errors.NotFound("Project not found")
	}
	return nil
}

// ListProjects returns one page sorted by display order, creation-recency
// breaking ties, plus the total matching count.
func (s *Storage) ListProjects(f domain.ContentFilter, limit, offset int) ([]domain.Project, int, error) {
	where, args := contentWhere(f, true)

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM projects"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT "+projectColumns+" FROM projects"+where+
			" ORDER BY display_order ASC, created DESC LIMIT $%d OFFSET $%d",
		len(args)+1, len(args)+2,
	)
	rows, err := s.db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}
