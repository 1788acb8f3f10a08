package middleware

import "net/http"

// RequestObserver receives one observation per served request.
type RequestObserver interface {
	ObserveRequest(method, path string, status int)
}

// Metrics returns middleware that reports each request to obs. The path label
// is the matched ServeMux pattern so unknown URLs do not grow label cardinality.
func Metrics(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
			next.ServeHTTP(rw, r)

			path := r.Pattern
			if path == "" {
				path = "unmatched"
			}
			obs.ObserveRequest(r.Method, path, rw.Status)
		})
	}
}
