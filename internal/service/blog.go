package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
)

// to mock service in tests
type BlogService interface {
	Create(draft domain.BlogPostDraft) (domain.BlogPost, error)
	Get(idOrSlug string, includeUnpublished bool) (domain.BlogPost, error)
	List(filter domain.ContentFilter, page, limit int) (domain.BlogPage, error)
	Update(id uuid.UUID, patch domain.BlogPostPatch) (domain.BlogPost, error)
	Delete(id uuid.UUID) error
}

type Blog struct {
	storage BlogStorage
}

type BlogStorage interface {
	CreateBlogPost(p domain.BlogPost) error
	BlogPostById(id uuid.UUID) (domain.BlogPost, error)
	BlogPostBySlug(slug string) (domain.BlogPost, error)
	BlogSlugTaken(slug string, exclude uuid.UUID) (bool, error)
	UpdateBlogPost(p domain.BlogPost) error
	DeleteBlogPost(id uuid.UUID) error
	ListBlogPosts(f domain.ContentFilter, limit, offset int) ([]domain.BlogPost, int, error)
}

func NewBlog(storage BlogStorage) *Blog {
	return &Blog{storage: storage}
}

func (b *Blog) Create(draft domain.BlogPostDraft) (domain.BlogPost, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return domain.BlogPost{}, internal_errors.Validation("Title is required")
	}
	if strings.TrimSpace(draft.Body) == "" {
		return domain.BlogPost{}, internal_errors.Validation("Body is required")
	}

	slug, err := resolveSlug(draft.Title, draft.Slug)
	if err != nil {
		return domain.BlogPost{}, err
	}
	taken, err := b.storage.BlogSlugTaken(slug, uuid.Nil)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if taken {
		return domain.BlogPost{}, internal_errors.Conflict("Slug already in use")
	}

	now := time.Now().UTC()
	post := domain.BlogPost{
		Id:          uuid.New(),
		Title:       draft.Title,
		Slug:        slug,
		Excerpt:     draft.Excerpt,
		Body:        draft.Body,
		CoverImage:  draft.CoverImage,
		Category:    draft.Category,
		Tags:        normalizeTags(draft.Tags),
		IsPublished: draft.IsPublished,
		PublishedAt: domain.NextPublishedAt(false, nil, draft.IsPublished, now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// the slug unique constraint settles concurrent creates; the pre-check
	// above only gives a friendlier fast path
	if err := b.storage.CreateBlogPost(post); err != nil {
		return domain.BlogPost{}, err
	}
	return post, nil
}

// Get resolves by id when the identifier parses as a uuid, by slug
// otherwise. Public reads treat drafts as missing.
func (b *Blog) Get(idOrSlug string, includeUnpublished bool) (domain.BlogPost, error) {
	var post domain.BlogPost
	var err error
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		post, err = b.storage.BlogPostById(id)
	} else {
		post, err = b.storage.BlogPostBySlug(idOrSlug)
	}
	if err != nil {
		return domain.BlogPost{}, err
	}
	if !includeUnpublished && !post.IsPublished {
		return domain.BlogPost{}, internal_errors.NotFound("Blog post not found")
	}
	return post, nil
}

func (b *Blog) List(filter domain.ContentFilter, page, limit int) (domain.BlogPage, error) {
	page = domain.ClampPage(page)
	limit = domain.ClampLimit(limit)

	posts, total, err := b.storage.ListBlogPosts(filter, limit, (page-1)*limit)
	if err != nil {
		return domain.BlogPage{}, err
	}
	return domain.BlogPage{Posts: posts, Pagination: domain.NewPagination(total, page, limit)}, nil
}

func (b *Blog) Update(id uuid.UUID, patch domain.BlogPostPatch) (domain.BlogPost, error) {
	post, err := b.storage.BlogPostById(id)
	if err != nil {
		return domain.BlogPost{}, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return domain.BlogPost{}, internal_errors.Validation("Title can't be empty")
		}
		post.Title = *patch.Title
	}
	if patch.Slug != nil && *patch.Slug != post.Slug {
		slug, err := resolveSlug(post.Title, *patch.Slug)
		if err != nil {
			return domain.BlogPost{}, err
		}
		taken, err := b.storage.BlogSlugTaken(slug, id)
		if err != nil {
			return domain.BlogPost{}, err
		}
		if taken {
			return domain.BlogPost{}, internal_errors.Conflict("Slug already in use")
		}
		post.Slug = slug
	}
	if patch.Excerpt != nil {
		post.Excerpt = *patch.Excerpt
	}
	if patch.Body != nil {
		if strings.TrimSpace(*patch.Body) == "" {
			return domain.BlogPost{}, internal_errors.Validation("Body can't be empty")
		}
		post.Body = *patch.Body
	}
	if patch.CoverImage != nil {
		post.CoverImage = *patch.CoverImage
	}
	if patch.Category != nil {
		post.Category = *patch.Category
	}
	if patch.Tags != nil {
		post.Tags = normalizeTags(*patch.Tags)
	}

	now := time.Now().UTC()
	wasPublished := post.IsPublished
	if patch.IsPublished != nil {
		post.IsPublished = *patch.IsPublished
	}
	post.PublishedAt = domain.NextPublishedAt(wasPublished, post.PublishedAt, post.IsPublished, now)
	post.UpdatedAt = now

	if err := b.storage.UpdateBlogPost(post); err != nil {
		return domain.BlogPost{}, err
	}
	return post, nil
}

func (b *Blog) Delete(id uuid.UUID) error {
	return b.storage.DeleteBlogPost(id)
}
