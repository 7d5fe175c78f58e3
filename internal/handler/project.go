package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelier-dev/atelier/internal/api"
	"github.com/atelier-dev/atelier/internal/domain"
	"github.com/atelier-dev/atelier/internal/middleware"
	"github.com/atelier-dev/atelier/internal/utils"
)

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	filter, page, limit, err := listParams(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	result, err := h.project.List(filter, page, limit)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WritePage(w, result.Projects, result.Pagination)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	includeUnpublished := middleware.ClaimsFromContext(r) != nil

	project, err := h.project.Get(chi.URLParam(r, "idOrSlug"), includeUnpublished)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteData(w, http.StatusOK, api.ProjectResponse{Project: project, Html: h.render(project.Body)})
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req api.CreateProjectRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	project, err := h.project.Create(domain.ProjectDraft{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Body:         req.Body,
		CoverImage:   req.CoverImage,
		Category:     req.Category,
		Tags:         req.Tags,
		LiveURL:      req.LiveURL,
		RepoURL:      req.RepoURL,
		IsFeatured:   req.IsFeatured,
		DisplayOrder: req.DisplayOrder,
		IsPublished:  req.IsPublished,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, project)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var req api.UpdateProjectRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	project, err := h.project.Update(id, domain.ProjectPatch{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Body:         req.Body,
		CoverImage:   req.CoverImage,
		Category:     req.Category,
		Tags:         req.Tags,
		LiveURL:      req.LiveURL,
		RepoURL:      req.RepoURL,
		IsFeatured:   req.IsFeatured,
		DisplayOrder: req.DisplayOrder,
		IsPublished:  req.IsPublished,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteData(w, http.StatusOK, project)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.project.Delete(id); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Project deleted")
}
