package binder

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"reflect"
	"strings"
)

// CatchAll is the tag value that binds every form value (or every file) at
// once. The field must be url.Values / map[string][]string for `form:"*"` and
// map[string][]*multipart.FileHeader for `file:"*"`.
const CatchAll = "*"

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20 // 10 MB

// Form binds application/x-www-form-urlencoded and multipart/form-data
// bodies. Other media types yield ErrBinderNotApplicable so JSON() can follow
// it in the same binder chain.
//
// Supported struct tags:
//   - `form:"name"` binds form field "name"
//   - `file:"name"` binds uploaded file "name"
//   - `form:"*"` / `file:"*"` bind everything, see CatchAll
//   - `form:"-"` / `file:"-"` skip the field
//
// Example:
//
//	type submitRequest struct {
//		Form   string                             `path:"form"`
//		Values url.Values                         `form:"*"`
//		Files  map[string][]*multipart.FileHeader `file:"*"`
//	}
//
//	r.Post("/forms/{form}", handler.Wrap(submit,
//		handler.WithBinders(
//			binder.Path(chi.URLParam),
//			binder.Form(),
//		),
//	))
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: missing content-type header, expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
		}

		mediaType := mediaTypeOf(contentType)

		var values map[string][]string
		var files map[string][]*multipart.FileHeader

		switch {
		case mediaType == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidForm, err)
			}
			values = r.PostForm

		case strings.HasPrefix(mediaType, "multipart/form-data"):
			_, params, err := mime.ParseMediaType(contentType)
			if err != nil {
				return fmt.Errorf("%w: malformed content type with boundary", ErrInvalidForm)
			}

			boundary, ok := params["boundary"]
			if !ok || boundary == "" {
				return fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
			}

			if !validateBoundary(boundary) {
				return fmt.Errorf("%w: invalid boundary parameter", ErrInvalidForm)
			}

			// Body size is capped by the server middleware.
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidForm, err)
			}

			if r.MultipartForm != nil {
				values = r.MultipartForm.Value
				files = r.MultipartForm.File
			} else {
				values = make(map[string][]string)
			}

		default:
			return ErrBinderNotApplicable
		}

		return bindFormAndFiles(v, values, files, ErrInvalidForm)
	}
}

func bindFormAndFiles(v any, values map[string][]string, files map[string][]*multipart.FileHeader, bindErr error) error {
	fields, err := tagged(v, "form", bindErr)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if f.name == CatchAll {
			err = setAllValues(f.value, values)
		} else if raw := values[f.name]; len(raw) > 0 {
			err = assign(f.value, raw, false)
		}
		if err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, f.field.Name, err)
		}
	}

	if files == nil {
		return nil
	}
	fileFields, err := tagged(v, "file", bindErr)
	if err != nil {
		return err
	}
	for _, f := range fileFields {
		if f.name == CatchAll {
			err = setAllFiles(f.value, files)
		} else if fhs := files[f.name]; len(fhs) > 0 {
			err = setFileField(f.value, fhs)
		}
		if err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, f.field.Name, err)
		}
	}
	return nil
}

var (
	valuesType = reflect.TypeOf(url.Values{})
	rawMapType = reflect.TypeOf(map[string][]string{})
	filesType  = reflect.TypeOf(map[string][]*multipart.FileHeader{})
)

func setAllValues(field reflect.Value, values map[string][]string) error {
	if field.Type() != valuesType && field.Type() != rawMapType {
		return fmt.Errorf("unsupported type for catch-all form field: %v", field.Type())
	}
	all := make(url.Values, len(values))
	for k, v := range values {
		all[k] = append([]string(nil), v...)
	}
	field.Set(reflect.ValueOf(all).Convert(field.Type()))
	return nil
}

func setAllFiles(field reflect.Value, files map[string][]*multipart.FileHeader) error {
	if field.Type() != filesType {
		return fmt.Errorf("unsupported type for catch-all file field: %v", field.Type())
	}
	all := make(map[string][]*multipart.FileHeader, len(files))
	for k, fhs := range files {
		for _, fh := range fhs {
			fh.Filename = sanitizeFilename(fh.Filename)
		}
		all[k] = fhs
	}
	field.Set(reflect.ValueOf(all))
	return nil
}

var fileHeaderType = reflect.TypeFor[*multipart.FileHeader]()

// setFileField accepts *multipart.FileHeader or []*multipart.FileHeader.
func setFileField(field reflect.Value, fhs []*multipart.FileHeader) error {
	for _, fh := range fhs {
		fh.Filename = sanitizeFilename(fh.Filename)
	}

	switch t := field.Type(); {
	case t == fileHeaderType:
		field.Set(reflect.ValueOf(fhs[0]))
	case t.Kind() == reflect.Slice && t.Elem() == fileHeaderType:
		field.Set(reflect.ValueOf(append([]*multipart.FileHeader(nil), fhs...)).Convert(t))
	default:
		return fmt.Errorf("unsupported type for file field: %v", t)
	}
	return nil
}

// sanitizeFilename keeps only the base name of an uploaded file, whatever
// path separator the client used.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	switch name {
	case ".", "..", "/", "":
		return "unnamed"
	}
	return name
}

// validateBoundary checks the RFC 2046 boundary grammar: 1 to 70 characters
// from a restricted set, not ending with a space.
func validateBoundary(boundary string) bool {
	if len(boundary) == 0 || len(boundary) > 70 || strings.HasSuffix(boundary, " ") {
		return false
	}
	for _, c := range boundary {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}
