package domain

import "time"

// NextPublishedAt implements the draft/published transition for the
// publishedAt timestamp. A published item always has a timestamp and a
// draft never does: publishing a draft stamps now, unpublishing clears the
// stamp, and re-saving an already published item keeps the original instant.
func NextPublishedAt(wasPublished bool, prev *time.Time, published bool, now time.Time) *time.Time {
	if !published {
		return nil
	}
	if wasPublished && prev != nil {
		return prev
	}
	return &now
}
