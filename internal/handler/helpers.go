package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/atelier-dev/atelier/internal/domain"
	internal_errors "github.com/atelier-dev/atelier/internal/errors"
	"github.com/atelier-dev/atelier/internal/logger"
	"github.com/atelier-dev/atelier/internal/middleware"
	"github.com/atelier-dev/atelier/internal/utils"
)

// listParams extracts filter and paging query parameters. Anonymous callers
// are always pinned to published content; a logged-in admin may filter on
// the published flag freely or omit it to see everything.
func listParams(r *http.Request) (domain.ContentFilter, int, int, error) {
	var filter domain.ContentFilter
	var page, limit int
	var err error

	q := r.URL.Query()
	if raw := q.Get("page"); raw != "" {
		if page, err = utils.ParseIntParam(raw, "page"); err != nil {
			return filter, 0, 0, err
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err = utils.ParseIntParam(raw, "limit"); err != nil {
			return filter, 0, 0, err
		}
	}

	filter.Category = q.Get("category")
	filter.Tag = q.Get("tag")
	if filter.Published, err = utils.ParseBoolParam(q.Get("published"), "published"); err != nil {
		return filter, 0, 0, err
	}
	if filter.Featured, err = utils.ParseBoolParam(q.Get("featured"), "featured"); err != nil {
		return filter, 0, 0, err
	}

	if middleware.ClaimsFromContext(r) == nil {
		published := true
		filter.Published = &published
	}
	return filter, page, limit, nil
}

func parseId(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, internal_errors.Validation("Malformed id")
	}
	return id, nil
}

// render produces the sanitized HTML for a single content read. A render
// failure degrades to markdown-only output rather than failing the request.
func (h *Handler) render(body string) string {
	if body == "" {
		return ""
	}
	html, err := h.renderer.Render(body)
	if err != nil {
		logger.Log.Error("markdown render failed", "error", err)
		return ""
	}
	return html
}
