package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
)

// DefaultMaxJSONSize caps JSON bodies independently of the server limit.
const DefaultMaxJSONSize = 1 << 20

// JSON binds application/json bodies in strict mode: unknown fields and
// trailing data are rejected. Other media types yield ErrBinderNotApplicable.
// Decoded strings lose NUL bytes and invalid UTF-8.
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if err := r.Context().Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: missing content-type header, expected application/json", ErrMissingContentType)
		}
		if mediaTypeOf(contentType) != "application/json" {
			return ErrBinderNotApplicable
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}
		if len(body) > DefaultMaxJSONSize {
			return fmt.Errorf("%w: request body too large (max %d bytes)", ErrFailedToParseJSON, DefaultMaxJSONSize)
		}

		dec := json.NewDecoder(strings.NewReader(string(body)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}

		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && !rv.IsNil() {
			cleanStrings(rv.Elem())
		}
		return nil
	}
}

func cleanString(s string) string {
	return strings.ToValidUTF8(strings.ReplaceAll(s, "\x00", ""), "")
}

// cleanStrings walks rv in place. Map entries are rewritten since map values
// are not addressable.
func cleanStrings(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(cleanString(rv.String()))
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return
		}
		if rv.Kind() == reflect.Interface && rv.Elem().Kind() == reflect.String && rv.CanSet() {
			rv.Set(reflect.ValueOf(cleanString(rv.Elem().String())))
			return
		}
		cleanStrings(rv.Elem())
	case reflect.Struct:
		for i := range rv.NumField() {
			if f := rv.Field(i); f.CanSet() {
				cleanStrings(f)
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			cleanStrings(rv.Index(i))
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			val := reflect.New(iter.Value().Type()).Elem()
			val.Set(iter.Value())
			cleanStrings(val)
			rv.SetMapIndex(iter.Key(), val)
		}
	}
}
