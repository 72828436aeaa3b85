package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/familyspace/pkg/binder"
)

type registrationRequest struct {
	Email   string                             `form:"email"`
	Members []string                           `form:"familyMember"`
	Agreed  bool                               `form:"agreement"`
	Photo   *multipart.FileHeader              `file:"photo"`
	Values  url.Values                         `form:"*"`
	Files   map[string][]*multipart.FileHeader `file:"*"`
	Ignored string                             `form:"-"`
}

func multipartRequest(t *testing.T, fields map[string][]string, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(name, v))
		}
	}
	for name, filename := range files {
		fw, err := mw.CreateFormFile(name, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("\x89PNG\r\n\x1a\n"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/forms/registration", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		form := url.Values{
			"email":        {"anna@example.com"},
			"familyMember": {"Иван", "Мария"},
			"agreement":    {"on"},
			"Ignored":      {"x"},
		}
		req := httptest.NewRequest(http.MethodPost, "/forms/registration", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got registrationRequest
		require.NoError(t, binder.Form()(req, &got))

		assert.Equal(t, "anna@example.com", got.Email)
		assert.Equal(t, []string{"Иван", "Мария"}, got.Members)
		assert.True(t, got.Agreed)
		assert.Empty(t, got.Ignored)
		assert.Equal(t, form, got.Values)
		assert.Nil(t, got.Photo)
	})

	t.Run("multipart with files", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t,
			map[string][]string{"email": {"anna@example.com"}},
			map[string]string{"photo": "../../etc/avatar.png"},
		)

		var got registrationRequest
		require.NoError(t, binder.Form()(req, &got))

		assert.Equal(t, "anna@example.com", got.Values.Get("email"))
		require.NotNil(t, got.Photo)
		assert.Equal(t, "avatar.png", got.Photo.Filename)
		require.Len(t, got.Files["photo"], 1)
		assert.Equal(t, "avatar.png", got.Files["photo"][0].Filename)
	})

	t.Run("json is left to the next binder", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		var got registrationRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrBinderNotApplicable)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("email=x"))

		var got registrationRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrMissingContentType)
	})

	t.Run("multipart without boundary", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("--x--"))
		req.Header.Set("Content-Type", "multipart/form-data")

		var got registrationRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrInvalidForm)
	})

	t.Run("wrong catch-all type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got struct {
			All map[string]string `form:"*"`
		}
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrInvalidForm)
	})

	t.Run("non-pointer target", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		assert.ErrorIs(t, binder.Form()(req, registrationRequest{}), binder.ErrInvalidForm)
	})
}

func TestFormKeepsCommas(t *testing.T) {
	t.Parallel()

	form := url.Values{"familyMember": {"Иванов, Иван"}, "agreement": {"maybe"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var members struct {
		Members []string `form:"familyMember"`
	}
	require.NoError(t, binder.Form()(req, &members))
	assert.Equal(t, []string{"Иванов, Иван"}, members.Members)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var agreed struct {
		Agreed bool `form:"agreement"`
	}
	assert.ErrorIs(t, binder.Form()(req, &agreed), binder.ErrInvalidForm)
}
