package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// DefaultLanguage is used when nothing better is known about the visitor.
const DefaultLanguage = "ru"

// Headers longer than this are truncated before parsing.
const maxAcceptLanguageLength = 4096

type weightedLang struct {
	lang string
	q    float64
}

// parseAcceptLanguageHeader returns the header's tags, lower-cased and
// ordered by quality. Malformed q values count as 1.
func parseAcceptLanguageHeader(header string) []weightedLang {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var langs []weightedLang
	for part := range strings.SplitSeq(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}

		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
				q = parsed
			}
		}
		langs = append(langs, weightedLang{lang: tag, q: q})
	}

	slices.SortStableFunc(langs, func(a, b weightedLang) int {
		return cmp.Compare(b.q, a.q)
	})
	return langs
}

// ParseAcceptLanguage picks the best supported language from an
// Accept-Language header. Exact tags win over base languages (en-US → en).
func ParseAcceptLanguage(header string, supported []string, defaultLang string) string {
	if header == "" || len(supported) == 0 {
		return defaultLang
	}

	normalized := make([]string, len(supported))
	for i, lang := range supported {
		normalized[i] = strings.ToLower(lang)
	}

	langs := parseAcceptLanguageHeader(header)
	for _, l := range langs {
		if slices.Contains(normalized, l.lang) {
			return l.lang
		}
	}
	for _, l := range langs {
		if base, _, ok := strings.Cut(l.lang, "-"); ok && slices.Contains(normalized, base) {
			return base
		}
	}
	return defaultLang
}
