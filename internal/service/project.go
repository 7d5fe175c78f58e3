package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
)

// to mock service in tests
type ProjectService interface {
	Create(draft domain.ProjectDraft) (domain.Project, error)
	Get(idOrSlug string, includeUnpublished bool) (domain.Project, error)
	List(filter domain.ContentFilter, page, limit int) (domain.ProjectPage, error)
	Update(id uuid.UUID, patch domain.ProjectPatch) (domain.Project, error)
	Delete(id uuid.UUID) error
}

type Project struct {
	storage ProjectStorage
}

type ProjectStorage interface {
	CreateProject(p domain.Project, order *int) (domain.Project, error)
	ProjectById(id uuid.UUID) (domain.Project, error)
	ProjectBySlug(slug string) (domain.Project, error)
	ProjectSlugTaken(slug string, exclude uuid.UUID) (bool, error)
	UpdateProject(p domain.Project) error
	DeleteProject(id uuid.UUID) error
	ListProjects(f domain.ContentFilter, limit, offset int) ([]domain.Project, int, error)
}

func NewProject(storage ProjectStorage) *Project {
	return &Project{storage: storage}
}

func (s *Project) Create(draft domain.ProjectDraft) (domain.Project, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return domain.Project{}, internal_errors.Validation("Title is required")
	}
	if strings.TrimSpace(draft.Description) == "" {
		return domain.Project{}, internal_errors.Validation("Description is required")
	}

	slug, err := resolveSlug(draft.Title, draft.Slug)
	if err != nil {
		return domain.Project{}, err
	}
	taken, err := s.storage.ProjectSlugTaken(slug, uuid.Nil)
	if err != nil {
		return domain.Project{}, err
	}
	if taken {
		return domain.Project{}, internal_errors.Conflict("Slug already in use")
	}

	now := time.Now().UTC()
	project := domain.Project{
		Id:          uuid.New(),
		Title:       draft.Title,
		Slug:        slug,
		Description: draft.Description,
		Body:        draft.Body,
		CoverImage:  draft.CoverImage,
		Category:    draft.Category,
		Tags:        normalizeTags(draft.Tags),
		LiveURL:     draft.LiveURL,
		RepoURL:     draft.RepoURL,
		IsFeatured:  draft.IsFeatured,
		IsPublished: draft.IsPublished,
		PublishedAt: domain.NextPublishedAt(false, nil, draft.IsPublished, now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// nil order means append-to-end; the storage layer resolves max+1
	return s.storage.CreateProject(project, draft.DisplayOrder)
}

func (s *Project) Get(idOrSlug string, includeUnpublished bool) (domain.Project, error) {
	var project domain.Project
	var err error
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		project, err = s.storage.ProjectById(id)
	} else {
		project, err = s.storage.ProjectBySlug(idOrSlug)
	}
	if err != nil {
		return domain.Project{}, err
	}
	if !includeUnpublished && !project.IsPublished {
		return domain.Project{}, internal_errors.NotFound("Project not found")
	}
	return project, nil
}

func (s *Project) List(filter domain.ContentFilter, page, limit int) (domain.ProjectPage, error) {
	page = domain.ClampPage(page)
	limit = domain.ClampLimit(limit)

	projects, total, err := s.storage.ListProjects(filter, limit, (page-1)*limit)
	if err != nil {
		return domain.ProjectPage{}, err
	}
	return domain.ProjectPage{Projects: projects, Pagination: domain.NewPagination(total, page, limit)}, nil
}

func (s *Project) Update(id uuid.UUID, patch domain.ProjectPatch) (domain.Project, error) {
	project, err := s.storage.ProjectById(id)
	if err != nil {
		return domain.Project{}, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return domain.Project{}, internal_errors.Validation("Title can't be empty")
		}
		project.Title = *patch.Title
	}
	if patch.Slug != nil && *patch.Slug != project.Slug {
		slug, err := resolveSlug(project.Title, *patch.Slug)
		if err != nil {
			return domain.Project{}, err
		}
		taken, err := s.storage.ProjectSlugTaken(slug, id)
		if err != nil {
			return domain.Project{}, err
		}
		if taken {
			return domain.Project{}, internal_errors.Conflict("Slug already in use")
		}
		project.Slug = slug
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return domain.Project{}, internal_errors.Validation("Description can't be empty")
		}
		project.Description = *patch.Description
	}
	if patch.Body != nil {
		project.Body = *patch.Body
	}
	if patch.CoverImage != nil {
		project.CoverImage = *patch.CoverImage
	}
	if patch.Category != nil {
		project.Category = *patch.Category
	}
	if patch.Tags != nil {
		project.Tags = normalizeTags(*patch.Tags)
	}
	if patch.LiveURL != nil {
		project.LiveURL = *patch.LiveURL
	}
	if patch.RepoURL != nil {
		project.RepoURL = *patch.RepoURL
	}
	if patch.IsFeatured != nil {
		project.IsFeatured = *patch.IsFeatured
	}
	if patch.DisplayOrder != nil {
		project.DisplayOrder = *patch.DisplayOrder
	}

	now := time.Now().UTC()
	wasPublished := project.IsPublished
	if patch.IsPublished != nil {
		project.IsPublished = *patch.IsPublished
	}
	project.PublishedAt = domain.NextPublishedAt(wasPublished, project.PublishedAt, project.IsPublished, now)
	project.UpdatedAt = now

	if err := s.storage.UpdateProject(project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (s *Project) Delete(id uuid.UUID) error {
	return s.storage.DeleteProject(id)
}
