package site

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dmitrymomot/familyspace/pkg/form"
	"github.com/dmitrymomot/familyspace/pkg/i18n"
)

//go:embed translations/*.yaml
var translationsFS embed.FS

// SupportedLanguages are the catalogs shipped with the site.
var SupportedLanguages = []string{"ru", "en"}

// NewTranslator loads the embedded catalogs.
func NewTranslator(ctx context.Context, defaultLang string, log *slog.Logger) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx,
		i18n.NewFSAdapter(i18n.NewYAMLParser(), translationsFS, "translations"),
		i18n.WithDefaultLanguage(defaultLang),
		i18n.WithLogger(log),
	)
}

// text resolves user-facing strings for one request language.
type text struct {
	tr   *i18n.Translator
	lang string
}

func (t text) get(key, fallback string, args ...string) string {
	if key == "" {
		return fallback
	}
	return t.tr.Td(t.lang, key, fallback, args...)
}

func (t text) msg(m form.Message) string {
	return t.get(m.Key, m.Text, argPairs(m.Args)...)
}

// MessageText translates m for lang.
func MessageText(tr *i18n.Translator, lang string, m form.Message) string {
	return text{tr: tr, lang: lang}.msg(m)
}

// argPairs flattens placeholder values into sorted name/value pairs.
func argPairs(args map[string]any) []string {
	if len(args) == 0 {
		return nil
	}
	names := make([]string, 0, len(args))
	for k := range args {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make([]string, 0, len(args)*2)
	for _, k := range names {
		out = append(out, k, fmt.Sprint(args[k]))
	}
	return out
}
