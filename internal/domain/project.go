package domain

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	Body         string     `json:"body"` // markdown source
	CoverImage   string     `json:"coverImage"`
	Category     string     `json:"category"`
	Tags         Tags       `json:"tags"`
	LiveURL      string     `json:"liveUrl"`
	RepoURL      string     `json:"repoUrl"`
	IsFeatured   bool       `json:"isFeatured"`
	DisplayOrder int        `json:"order"`
	IsPublished  bool       `json:"isPublished"`
	PublishedAt  *time.Time `json:"publishedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type ProjectDraft struct {
	Title        string
	Slug         string // empty means "derive from title"
	Description  string
	Body         string
	CoverImage   string
	Category     string
	Tags         []string
	LiveURL      string
	RepoURL      string
	IsFeatured   bool
	DisplayOrder *int // nil means "append after current max"
	IsPublished  bool
}

type ProjectPatch struct {
	Title        *string
	Slug         *string
	Description  *string
	Body         *string
	CoverImage   *string
	Category     *string
	Tags         *[]string
	LiveURL      *string
	RepoURL      *string
	IsFeatured   *bool
	DisplayOrder *int
	IsPublished  *bool
}

type ProjectPage struct {
	Projects   []Project
	Pagination Pagination
}
