package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/familyspace/pkg/binder"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	type validateRequest struct {
		Values map[string][]string `json:"values"`
		Field  string              `json:"field"`
	}

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     error
		want        validateRequest
	}{
		{
			name:        "valid",
			contentType: "application/json; charset=utf-8",
			body:        `{"values":{"email":["a@b.co"]},"field":"email"}`,
			want:        validateRequest{Values: map[string][]string{"email": {"a@b.co"}}, Field: "email"},
		},
		{
			name:        "form body is left to the next binder",
			contentType: "application/x-www-form-urlencoded",
			body:        "email=a",
			wantErr:     binder.ErrBinderNotApplicable,
		},
		{name: "missing content type", body: `{}`, wantErr: binder.ErrMissingContentType},
		{name: "unknown field", contentType: "application/json", body: `{"nope":1}`, wantErr: binder.ErrFailedToParseJSON},
		{name: "trailing data", contentType: "application/json", body: `{} {}`, wantErr: binder.ErrFailedToParseJSON},
		{name: "empty body", contentType: "application/json", body: ``, wantErr: binder.ErrFailedToParseJSON},
		{
			name:        "strings are cleaned",
			contentType: "application/json",
			body:        `{"field":"em\u0000ail"}`,
			want:        validateRequest{Field: "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/api/forms/login/validate", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			var got validateRequest
			err := binder.JSON()(req, &got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPath(t *testing.T) {
	t.Parallel()

	params := map[string]string{"form": "booking", "field": "participants"}
	extract := func(_ *http.Request, name string) string { return params[name] }

	type fieldRequest struct {
		Form  string `path:"form"`
		Field string `path:"field"`
		Event string `form:"event"`
	}

	req := httptest.NewRequest(http.MethodPost, "/forms/booking/fields/participants", nil)

	var got fieldRequest
	require.NoError(t, binder.Path(extract)(req, &got))
	assert.Equal(t, fieldRequest{Form: "booking", Field: "participants"}, got)

	assert.ErrorIs(t, binder.Path(nil)(req, &got), binder.ErrInvalidPath)

	var bad struct {
		Count int `path:"form"`
	}
	assert.ErrorIs(t, binder.Path(extract)(req, &bad), binder.ErrInvalidPath)
}

func TestQuery(t *testing.T) {
	t.Parallel()

	type pageRequest struct {
		Lang  string   `query:"lang"`
		Tags  []string `query:"tags"`
		Debug *bool    `query:"debug"`
		Skip  string   `query:"-"`
	}

	req := httptest.NewRequest(http.MethodGet, "/forms/search?lang=en&tags=a,b&tags=c&debug=yes&Skip=1", nil)

	var got pageRequest
	require.NoError(t, binder.Query()(req, &got))
	assert.Equal(t, "en", got.Lang)
	assert.Equal(t, []string{"a", "b", "c"}, got.Tags)
	require.NotNil(t, got.Debug)
	assert.True(t, *got.Debug)
	assert.Empty(t, got.Skip)

	var bad struct {
		N int `query:"lang"`
	}
	assert.ErrorIs(t, binder.Query()(req, &bad), binder.ErrInvalidQuery)
}

func TestQueryTextUnmarshaler(t *testing.T) {
	t.Parallel()

	var got struct {
		Since time.Time  `query:"since"`
		Until *time.Time `query:"until"`
		Name  string
	}
	req := httptest.NewRequest(http.MethodGet, "/?since=2024-06-15T00:00:00Z&Name=x&name=y", nil)
	require.NoError(t, binder.Query()(req, &got))
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), got.Since)
	assert.Nil(t, got.Until)
	assert.Empty(t, got.Name, "untagged fields are not bound")

	req = httptest.NewRequest(http.MethodGet, "/?since=yesterday", nil)
	assert.ErrorIs(t, binder.Query()(req, &got), binder.ErrInvalidQuery)
}

func TestJSONCleansNestedStrings(t *testing.T) {
	t.Parallel()

	var got struct {
		Fields map[string]any `json:"fields"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fields":{"name":"An\u0000na","members":["I\u0000van"],"agree":true}}`))
	req.Header.Set("Content-Type", "application/json")

	require.NoError(t, binder.JSON()(req, &got))
	assert.Equal(t, "Anna", got.Fields["name"])
	assert.Equal(t, []any{"Ivan"}, got.Fields["members"])
	assert.Equal(t, true, got.Fields["agree"])
}

func TestJSONKeepsBodyLimitError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"field":"`+strings.Repeat("x", 64)+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Body = http.MaxBytesReader(rec, req.Body, 16)

	var got struct {
		Field string `json:"field"`
	}
	err := binder.JSON()(req, &got)
	assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)

	var maxBytes *http.MaxBytesError
	assert.ErrorAs(t, err, &maxBytes)
}
