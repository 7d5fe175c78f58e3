package domain

import (
	"time"

	"github.com/google/uuid"
)

type BlogPost struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body"` // markdown source
	CoverImage  string     `json:"coverImage"`
	Category    string     `json:"category"`
	Tags        Tags       `json:"tags"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BlogPostDraft carries validated creation input from handler to service.
type BlogPostDraft struct {
	Title       string
	Slug        string // empty means "derive from title"
	Excerpt     string
	Body        string
	CoverImage  string
	Category    string
	Tags        []string
	IsPublished bool
}

// BlogPostPatch carries a partial update. Nil fields are left untouched.
type BlogPostPatch struct {
	Title       *string
	Slug        *string
	Excerpt     *string
	Body        *string
	CoverImage  *string
	Category    *string
	Tags        *[]string
	IsPublished *bool
}

type BlogPage struct {
	Posts      []BlogPost
	Pagination Pagination
}
