package binder

import (
	"fmt"
	"net/http"
)

// Path binds `path:"name"` fields using extractor, normally chi.URLParam.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}

		fields, err := tagged(v, "path", ErrInvalidPath)
		if err != nil {
			return err
		}
		for _, f := range fields {
			value := extractor(r, f.name)
			if value == "" {
				continue
			}
			if err := assign(f.value, []string{value}, false); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrInvalidPath, f.field.Name, err)
			}
		}
		return nil
	}
}
