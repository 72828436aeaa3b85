package binder

import "net/http"

// Query binds `query:"name"` fields from the URL query string. Untagged fields
// are left alone. Slices accept repeated keys as well as comma-separated
// values.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), true, ErrInvalidQuery)
	}
}
