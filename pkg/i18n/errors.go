package i18n

import "errors"

var (
	ErrNilAdapter           = errors.New("translation adapter is nil")
	ErrEmptyLanguage        = errors.New("empty language code")
	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")
	ErrLoadingCancelled     = errors.New("loading translations cancelled")
	ErrFailedToReadDir      = errors.New("failed to read translations directory")
	ErrFailedToReadFile     = errors.New("failed to read translation file")
	ErrNoTranslationFiles   = errors.New("no translation files found")
)
