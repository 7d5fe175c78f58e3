package middleware

import (
	"net/http"

	internal_errors "github.com/atelier-dev/atelier/internal/errors"
	"github.com/atelier-dev/atelier/internal/middleware/ratelimiter"
	"github.com/atelier-dev/atelier/internal/utils"
)

// KeyFunc extracts the rate-limiting key from a request.
type KeyFunc func(r *http.Request) (string, error)

func GetIP(r *http.Request) (string, error) {
	return utils.GetIP(r)
}

// RateLimit rejects requests with 429 once the key's bucket is empty.
// A request whose key cannot be determined is limited under one shared key
// rather than waved through.
func RateLimit(limiter *ratelimiter.KeyedLimiter, keyFn KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := keyFn(r)
			if err != nil {
				key = "unknown"
			}
			if !limiter.Allow(key) {
				utils.WriteError(w, internal_errors.New("Too many requests, slow down", http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
