package middleware

import (
	"io"
	"net/http"
)

// DrainAndCloseRequest discards whatever is left of the request body once the
// handler returns and closes it, so keep-alive connections stay reusable.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil {
				return
			}
			_, _ = io.Copy(io.Discard, r.Body)
			_ = r.Body.Close()
		})
	}
}
