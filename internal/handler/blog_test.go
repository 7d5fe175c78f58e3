package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-dev/atelier/internal/api"
	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
	"github.com/atelier-dev/atelier/internal/markdown"
	"github.com/atelier-dev/atelier/internal/middleware"
)

// blogRouter mirrors the real route layout: public reads behind optional
// auth, mutations behind required auth.
func blogRouter(h *Handler, mw *middleware.Auth) *chi.Mux {
	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(mw.MaybeAuth())
		r.Get("/blog", h.ListBlogPosts)
		r.Get("/blog/{idOrSlug}", h.GetBlogPost)
	})
	router.Group(func(r chi.Router) {
		r.Use(mw.AdminOnly())
		r.Post("/blog", h.CreateBlogPost)
		r.Put("/blog/{id}", h.UpdateBlogPost)
		r.Delete("/blog/{id}", h.DeleteBlogPost)
	})
	return router
}

func TestListBlogPostsHandler(t *testing.T) {
	h := &Handler{renderer: markdown.New()}
	jwtService, cookie := testSession(t, domain.RoleAdmin)
	router := blogRouter(h, middleware.NewAuth(jwtService))

	t.Run("anonymous listing is pinned to published", func(t *testing.T) {
		var gotFilter domain.ContentFilter
		h.blog = &MockBlogService{ListFunc: func(filter domain.ContentFilter, page, limit int) (domain.BlogPage, error) {
			gotFilter = filter
			return domain.BlogPage{Pagination: domain.NewPagination(0, 1, 10)}, nil
		}}

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/blog?published=false", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotFilter.Published)
		assert.True(t, *gotFilter.Published)
	})

	t.Run("admin listing keeps the requested filter", func(t *testing.T) {
		var gotFilter domain.ContentFilter
		var gotPage, gotLimit int
		h.blog = &MockBlogService{ListFunc: func(filter domain.ContentFilter, page, limit int) (domain.BlogPage, error) {
			gotFilter, gotPage, gotLimit = filter, page, limit
			return domain.BlogPage{Pagination: domain.NewPagination(0, page, limit)}, nil
		}}

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/blog?published=false&category=go&tag=web&page=2&limit=5", nil, cookie))

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotFilter.Published)
		assert.False(t, *gotFilter.Published)
		assert.Equal(t, "go", gotFilter.Category)
		assert.Equal(t, "web", gotFilter.Tag)
		assert.Equal(t, 2, gotPage)
		assert.Equal(t, 5, gotLimit)
	})

	t.Run("pagination metadata in the envelope", func(t *testing.T) {
		h.blog = &MockBlogService{ListFunc: func(filter domain.ContentFilter, page, limit int) (domain.BlogPage, error) {
			return domain.BlogPage{
				Posts:      []domain.BlogPost{{Title: "One"}},
				Pagination: domain.NewPagination(11, 1, 10),
			}, nil
		}}

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/blog", nil))

		resp := decodeEnvelope(t, rr)
		require.NotNil(t, resp.Pagination)
		assert.Equal(t, 11, resp.Pagination.Total)
		assert.Equal(t, 2, resp.Pagination.TotalPages)
	})

	t.Run("malformed page parameter", func(t *testing.T) {
		h.blog = &MockBlogService{}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/blog?page=abc", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetBlogPostHandler(t *testing.T) {
	h := &Handler{renderer: markdown.New()}
	jwtService, cookie := testSession(t, domain.RoleAdmin)
	router := blogRouter(h, middleware.NewAuth(jwtService))

	t.Run("render markdown for public read", func(t *testing.T) {
		h.blog = &MockBlogService{GetFunc: func(idOrSlug string, includeUnpublished bool) (domain.BlogPost, error) {
			assert.False(t, includeUnpublished)
			return domain.BlogPost{Slug: idOrSlug, Body: "**bold**", IsPublished: true}, nil
		}}

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/blog/hello-world", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeEnvelope(t, rr)
		raw, _ := json.Marshal(resp.Data)
		var post api.BlogPostResponse
		require.NoError(t, json.Unmarshal(raw, &post))
		assert.Contains(t, post.Html, "<strong>bold</strong>")
	})

	t.Run("admin session includes drafts", func(t *testing.T) {
		h.blog = &MockBlogService{GetFunc: func(idOrSlug string, includeUnpublished bool) (domain.BlogPost, error) {
			assert.True(t, includeUnpublished)
			return domain.BlogPost{Slug: idOrSlug}, nil
		}}

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/blog/draft", nil, cookie))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing post", func(t *testing.T) {
		h.blog = &MockBlogService{}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/blog/nope", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCreateBlogPostHandler(t *testing.T) {
	h := &Handler{renderer: markdown.New()}
	jwtService, cookie := testSession(t, domain.RoleAdmin)
	router := blogRouter(h, middleware.NewAuth(jwtService))
	requestBody := []byte(`{"title": "Hello", "body": "text", "tags": ["go"], "isPublished": true}`)

	t.Run("201 with the stored entity", func(t *testing.T) {
		h.blog = &MockBlogService{CreateFunc: func(draft domain.BlogPostDraft) (domain.BlogPost, error) {
			assert.Equal(t, "Hello", draft.Title)
			assert.True(t, draft.IsPublished)
			return domain.BlogPost{Id: uuid.New(), Title: draft.Title, Slug: "hello"}, nil
		}}

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/blog", requestBody, cookie))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.True(t, decodeEnvelope(t, rr).Success)
	})

	t.Run("401 without a session", func(t *testing.T) {
		h.blog = &MockBlogService{}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/blog", requestBody))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("slug conflict answers 409", func(t *testing.T) {
		h.blog = &MockBlogService{CreateFunc: func(draft domain.BlogPostDraft) (domain.BlogPost, error) {
			return domain.BlogPost{}, internal_errors.Conflict("Slug already in use")
		}}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/blog", requestBody, cookie))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestUpdateBlogPostHandler(t *testing.T) {
	h := &Handler{renderer: markdown.New()}
	jwtService, cookie := testSession(t, domain.RoleAdmin)
	router := blogRouter(h, middleware.NewAuth(jwtService))
	id := uuid.New()

	t.Run("partial patch reaches the service", func(t *testing.T) {
		var gotPatch domain.BlogPostPatch
		h.blog = &MockBlogService{UpdateFunc: func(gotId uuid.UUID, patch domain.BlogPostPatch) (domain.BlogPost, error) {
			assert.Equal(t, id, gotId)
			gotPatch = patch
			return domain.BlogPost{Id: gotId}, nil
		}}

		body := []byte(`{"title": "Renamed"}`)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPut, "/blog/"+id.String(), body, cookie))

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotPatch.Title)
		assert.Equal(t, "Renamed", *gotPatch.Title)
		assert.Nil(t, gotPatch.Body)
		assert.Nil(t, gotPatch.IsPublished)
	})

	t.Run("malformed id", func(t *testing.T) {
		h.blog = &MockBlogService{}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPut, "/blog/not-a-uuid", []byte(`{}`), cookie))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing post", func(t *testing.T) {
		h.blog = &MockBlogService{UpdateFunc: func(gotId uuid.UUID, patch domain.BlogPostPatch) (domain.BlogPost, error) {
			return domain.BlogPost{}, internal_errors.NotFound("Blog post not found")
		}}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPut, "/blog/"+id.String(), []byte(`{}`), cookie))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteBlogPostHandler(t *testing.T) {
	h := &Handler{renderer: markdown.New()}
	jwtService, cookie := testSession(t, domain.RoleAdmin)
	router := blogRouter(h, middleware.NewAuth(jwtService))
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		var deleted uuid.UUID
		h.blog = &MockBlogService{DeleteFunc: func(gotId uuid.UUID) error {
			deleted = gotId
			return nil
		}}

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodDelete, "/blog/"+id.String(), nil, cookie))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, id, deleted)
	})

	t.Run("401 without a session", func(t *testing.T) {
		h.blog = &MockBlogService{}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodDelete, "/blog/"+id.String(), nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
