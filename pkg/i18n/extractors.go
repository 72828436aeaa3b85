package i18n

import (
	"net/http"
	"slices"
	"strings"
)

// LangExtractor reads the preferred language from a request. An empty
// result means "no preference".
type LangExtractor func(r *http.Request) string

// RFC 5646 recommends at most 35 characters.
const maxLangCodeLength = 35

type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
	SupportedLangs []string
}

type ExtractorOption func(*ExtractorConfig)

func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithSupportedLanguages restricts results to langs.
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) > 0 {
			c.SupportedLangs = langs
		}
	}
}

// DefaultLangExtractor checks, in order: the "lang" cookie, the "lang" query
// parameter, and the Accept-Language header.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	cfg := &ExtractorConfig{CookieName: "lang", QueryParamName: "lang"}
	for _, opt := range opts {
		opt(cfg)
	}

	supported := make([]string, len(cfg.SupportedLangs))
	for i, lang := range cfg.SupportedLangs {
		supported[i] = strings.ToLower(lang)
	}

	accept := func(lang string) string {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" || len(lang) > maxLangCodeLength {
			return ""
		}
		if len(supported) == 0 || slices.Contains(supported, lang) {
			return lang
		}
		if base, _, ok := strings.Cut(lang, "-"); ok && slices.Contains(supported, base) {
			return base
		}
		return ""
	}

	return func(r *http.Request) string {
		if c, err := r.Cookie(cfg.CookieName); err == nil {
			if lang := accept(c.Value); lang != "" {
				return lang
			}
		}
		if lang := accept(r.URL.Query().Get(cfg.QueryParamName)); lang != "" {
			return lang
		}

		header := r.Header.Get("Accept-Language")
		if header == "" {
			return ""
		}
		if len(supported) > 0 {
			return ParseAcceptLanguage(header, supported, "")
		}
		if langs := parseAcceptLanguageHeader(header); len(langs) > 0 {
			return accept(langs[0].lang)
		}
		return ""
	}
}
