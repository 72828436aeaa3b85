package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/familyspace/pkg/logger"
)

// Translator resolves dotted keys against nested catalogs, one per language.
// A key missing in the requested language is looked up in the default
// language before any fallback applies.
type Translator struct {
	mu            sync.RWMutex
	catalogs      map[string]map[string]any
	adapter       TranslationAdapter
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used when the requested one has no
// translation for a key.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = strings.ToLower(lang)
		}
	}
}

// WithFallbackToKey makes T return the key itself for missing translations.
// On by default.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs every lookup that found nothing.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) {
		t.logMissing = enabled
	}
}

func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		adapter:       adapter,
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload fetches the catalogs from the adapter again and swaps them in.
func (t *Translator) Reload(ctx context.Context) error {
	catalogs, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	for lang, keys := range catalogs {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if keys == nil {
			return fmt.Errorf("nil catalog for language %s", lang)
		}
	}

	t.mu.Lock()
	t.catalogs = catalogs
	t.mu.Unlock()

	t.logger.InfoContext(ctx, "translations loaded",
		logger.Component("i18n"),
		slog.Any("languages", t.SupportedLanguages()),
	)
	return nil
}

// SupportedLanguages lists the loaded languages, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.catalogs))
	for lang := range t.catalogs {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// HasTranslation reports whether lang itself has key, ignoring fallbacks.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.find(lang, key)
	return ok
}

// T translates key. args are name/value pairs for %{name} placeholders:
//
//	t.T("ru", "validation.min_length", "min", "2")
func (t *Translator) T(lang, key string, args ...string) string {
	if s, ok := t.lookup(lang, key); ok {
		return format(s, args)
	}
	if t.fallbackToKey {
		return format(key, args)
	}
	return ""
}

// Td is T with an explicit fallback text. Placeholders in defaultValue are
// substituted too.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	if s, ok := t.lookup(lang, key); ok {
		return format(s, args)
	}
	return format(defaultValue, args)
}

// Tc translates using the locale stored in ctx by Middleware.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Tdc is Td using the locale stored in ctx.
func (t *Translator) Tdc(ctx context.Context, key, defaultValue string, args ...string) string {
	return t.Td(GetLocale(ctx), key, defaultValue, args...)
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	lang = strings.ToLower(lang)
	if s, ok := t.find(lang, key); ok {
		return s, true
	}
	if lang != t.defaultLang {
		if s, ok := t.find(t.defaultLang, key); ok {
			return s, true
		}
	}

	if t.logMissing {
		t.logger.Warn("translation not found",
			logger.Component("i18n"),
			slog.String("lang", lang),
			slog.String("key", key),
		)
	}
	return "", false
}

// find walks the dotted key through nested maps. Only string leaves count.
func (t *Translator) find(lang, key string) (string, bool) {
	node, ok := t.catalogs[lang]
	if !ok || key == "" {
		return "", false
	}

	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := node[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			switch v := val.(type) {
			case string:
				return v, true
			case fmt.Stringer:
				return v.String(), true
			default:
				return "", false
			}
		}
		next, ok := asMap(val)
		if !ok {
			return "", false
		}
		node = next
	}
	return "", false
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			if ks, ok := k.(string); ok {
				out[ks] = v
			}
		}
		return out, true
	default:
		return nil, false
	}
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// format replaces %{name} with the matching value from the name/value pairs.
// Unknown placeholders are left as they are; an odd trailing arg is ignored.
func format(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
