package service

import (
	"strings"

	internal_errors "github.com/atelier-dev/atelier/internal/errors"
	"github.com/atelier-dev/atelier/internal/utils"
)

// resolveSlug picks the explicit slug when one was supplied, otherwise
// derives one from the title. No auto-disambiguation on collision: the
// repository answers with a conflict and the caller picks a new slug.
func resolveSlug(title, explicit string) (string, error) {
	if explicit != "" {
		if !utils.IsValidSlug(explicit) {
			return "", internal_errors.Validation("Slug may only contain lowercase letters, digits and single hyphens")
		}
		return explicit, nil
	}
	slug := utils.Slugify(title)
	if slug == "" {
		return "", internal_errors.Validation("Title must contain at least one alphanumeric character")
	}
	return slug, nil
}

// normalizeTags trims, drops empties and deduplicates while keeping the
// caller's order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
