package clientip

import "net/http"

// Middleware stores the resolved client address in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithIP(r.Context(), res.Resolve(r))))
	})
}

// KeyFunc adapts FromContext for per-client limiters.
func KeyFunc(r *http.Request) string {
	return FromContext(r.Context())
}
