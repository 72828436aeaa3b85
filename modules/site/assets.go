package site

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrymomot/familyspace/pkg/toast"
)

// AssetsPath is where the stylesheet is served.
const AssetsPath = "/assets/forms.css"

// Assets holds the site stylesheet. Init builds it once; later calls are
// no-ops.
type Assets struct {
	once sync.Once
	css  []byte
	etag string
}

func NewAssets() *Assets {
	return &Assets{}
}

func (a *Assets) Init() {
	a.once.Do(func() {
		a.css = []byte(buildStylesheet())
		sum := sha256.Sum256(a.css)
		a.etag = `"` + hex.EncodeToString(sum[:8]) + `"`
	})
}

func (a *Assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Init()
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("ETag", a.etag)
	if r.Header.Get("If-None-Match") == a.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	_, _ = w.Write(a.css)
}

const baseStylesheet = `:root, [data-theme="dark"] {
  --color-bg: #121212; --color-surface: #1e1e1e; --color-text: #eaeaea;
  --color-muted: #9e9e9e; --color-border: #333; --color-primary: #64b5f6;
  --color-error: #ef5350; --color-success: #66bb6a;
  --border-radius: 8px; --shadow-lg: 0 10px 25px rgba(0, 0, 0, 0.35);
}
[data-theme="light"] {
  --color-bg: #f5f5f5; --color-surface: #fff; --color-text: #212121;
  --color-muted: #616161; --color-border: #ddd; --color-primary: #1976d2;
  --color-error: #d32f2f; --color-success: #388e3c;
  --shadow-lg: 0 10px 25px rgba(0, 0, 0, 0.12);
}
body { margin: 0; font-family: system-ui, sans-serif; background: var(--color-bg); color: var(--color-text); }
.site-header { display: flex; justify-content: space-between; align-items: center; padding: 1rem 1.5rem; }
.site-header__brand { color: inherit; font-weight: 600; text-decoration: none; }
.site-main { max-width: 640px; margin: 0 auto; padding: 1rem; }
.theme-toggle__button { background: none; border: none; color: inherit; cursor: pointer; font-size: 1.25rem; }
.form-card { background: var(--color-surface); border-radius: var(--border-radius); padding: 1.5rem; }
.form-list { padding-left: 1.25rem; }
.form-list a { color: var(--color-primary); }
.form-group { display: flex; flex-direction: column; gap: 0.25rem; margin-bottom: 1rem; }
.form-group input { padding: 0.5rem; border: 1px solid var(--color-border); border-radius: var(--border-radius); background: var(--color-bg); color: inherit; }
.form-group.valid input { border-color: var(--color-success); }
.form-group.invalid input { border-color: var(--color-error); }
.error-message { color: var(--color-error); font-size: 0.8rem; margin-top: 0.25rem; }
.field-hint { color: var(--color-muted); font-size: 0.8rem; }
.password-strength { height: 4px; background: var(--color-border); border-radius: 2px; }
.password-strength__bar { height: 100%; background: var(--color-primary); border-radius: 2px; }
.radio-group { border: none; padding: 0; }
.btn { display: inline-block; padding: 0.6rem 1.2rem; border: none; border-radius: var(--border-radius); cursor: pointer; }
.btn--primary { background: var(--color-primary); color: #fff; }
.toast-container { position: fixed; top: 20px; right: 20px; z-index: 9999; display: flex; flex-direction: column; gap: 0.5rem; }
.form-message { color: #fff; padding: 1rem 1.5rem; border-radius: var(--border-radius); box-shadow: var(--shadow-lg);
  display: flex; align-items: flex-start; gap: 1rem; max-width: 400px; animation: slideIn 0.3s ease; }
.form-message--timed { animation: slideIn 0.3s ease, fadeOut 0.3s ease forwards; }
.form-message__icon { font-size: 1.5rem; margin-top: 0.125rem; }
.form-message__body { flex: 1; }
.form-message__title { display: block; margin: 0 0 0.25rem 0; font-size: 1rem; }
.form-message__text { margin: 0; font-size: 0.9rem; opacity: 0.9; }
.form-message__close { background: none; border: none; color: inherit; cursor: pointer; padding: 0; font-size: 1rem; }
@keyframes slideIn { from { transform: translateX(100%); opacity: 0; } to { transform: translateX(0); opacity: 1; } }
@keyframes fadeOut { from { opacity: 1; } to { opacity: 0; visibility: hidden; } }
`

func buildStylesheet() string {
	var b strings.Builder
	b.WriteString(baseStylesheet)
	for _, k := range []toast.Kind{toast.Success, toast.Error, toast.Warning, toast.Info} {
		fmt.Fprintf(&b, ".form-message--%s { background-color: %s; }\n", k, k.Style().Color)
	}
	return b.String()
}
