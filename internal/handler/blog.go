package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelier-dev/atelier/internal/api"
	"github.com/atelier-dev/atelier/internal/domain"
	"github.com/atelier-dev/atelier/internal/middleware"
	"github.com/atelier-dev/atelier/internal/utils"
)

func (h *Handler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	filter, page, limit, err := listParams(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	result, err := h.blog.List(filter, page, limit)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WritePage(w, result.Posts, result.Pagination)
}

func (h *Handler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	includeUnpublished := middleware.ClaimsFromContext(r) != nil

	post, err := h.blog.Get(chi.URLParam(r, "idOrSlug"), includeUnpublished)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteData(w, http.StatusOK, api.BlogPostResponse{BlogPost: post, Html: h.render(post.Body)})
}

func (h *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req api.CreateBlogPostRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	post, err := h.blog.Create(domain.BlogPostDraft{
		Title:       req.Title,
		Slug:        req.Slug,
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		CoverImage:  req.CoverImage,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, post)
}

func (h *Handler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var req api.UpdateBlogPostRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	post, err := h.blog.Update(id, domain.BlogPostPatch{
		Title:       req.Title,
		Slug:        req.Slug,
		Excerpt:     req.Excerpt,
		Body:        req.Body,
		CoverImage:  req.CoverImage,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteData(w, http.StatusOK, post)
}

func (h *Handler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.blog.Delete(id); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Blog post deleted")
}
