// Package i18n translates UI strings from YAML catalogs.
//
// Catalogs are keyed by language at the top level and nested below it.
// Keys are dotted paths; %{name} placeholders are filled from name/value
// argument pairs:
//
//	//go:embed translations
//	var catalogs embed.FS
//
//	t, err := i18n.NewTranslator(ctx,
//		i18n.NewFSAdapter(i18n.NewYAMLParser(), catalogs, "translations"),
//		i18n.WithDefaultLanguage("ru"),
//	)
//	msg := t.Td("en", "validation.min_length", "Минимум %{min} символа", "min", "2")
//
// A key missing in the requested language is looked up in the default
// language. After that T falls back to the key and Td to its default text.
//
// Middleware picks the request language (cookie, query, Accept-Language)
// and stores it in the context for Tc and Tdc.
package i18n
