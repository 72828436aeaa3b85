package i18n

import "net/http"

// Middleware stores the request language in the context for Tc and
// GetLocale. A nil extractor means DefaultLangExtractor().
func Middleware(extr LangExtractor, defaultLang string) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extr(r)
			if lang == "" {
				lang = defaultLang
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
