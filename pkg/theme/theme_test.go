package theme_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/familyspace/pkg/cookie"
	"github.com/dmitrymomot/familyspace/pkg/theme"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want theme.Theme
	}{
		{"dark", theme.Dark},
		{"light", theme.Light},
		{" Light ", theme.Light},
		{"", theme.Dark},
		{"sepia", theme.Dark},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, theme.Parse(tt.in))
		})
	}
}

func TestTheme(t *testing.T) {
	t.Parallel()

	assert.Equal(t, theme.Light, theme.Dark.Toggle())
	assert.Equal(t, theme.Dark, theme.Light.Toggle())

	assert.Equal(t, "fa-sun", theme.Dark.Icon())
	assert.Equal(t, "fa-moon", theme.Light.Icon())
	assert.Equal(t, "Переключить на светлую тему", theme.Dark.IconTitle())
	assert.Equal(t, "Переключить на темную тему", theme.Light.IconTitle())
	assert.Equal(t, "theme.switch_to.light", theme.Dark.IconTitleKey())
}

func newStore(t *testing.T) *theme.Store {
	t.Helper()
	m, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	return theme.NewStore(m)
}

func TestStore(t *testing.T) {
	t.Parallel()
	store := newStore(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, theme.Default, store.Get(req))
	assert.False(t, store.IsForged(req))

	rec := httptest.NewRecorder()
	assert.Equal(t, theme.Light, store.Toggle(rec, req))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, theme.CookieName, cookies[0].Name)
	assert.False(t, cookies[0].HttpOnly)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	assert.Equal(t, theme.Light, store.Get(next))

	rec = httptest.NewRecorder()
	assert.Equal(t, theme.Dark, store.Toggle(rec, next))
}

func TestStoreRejectsForgedCookie(t *testing.T) {
	t.Parallel()
	store := newStore(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: theme.CookieName, Value: "light"})
	assert.Equal(t, theme.Default, store.Get(req))
	assert.True(t, store.IsForged(req))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	store := newStore(t)

	rec := httptest.NewRecorder()
	store.Set(rec, theme.Light)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	var got theme.Theme
	store.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = theme.FromContext(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, theme.Light, got)
	assert.Equal(t, theme.Default, theme.FromContext(req.Context()))
}
