package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/civicmatch/eventfinder/internal/api/respond"
)

// Recover converts handler panics into 500 responses instead of tearing down
// the server.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
				respond.WriteInternalError(w, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
