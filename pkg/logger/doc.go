// Package logger builds slog loggers with environment presets and
// context-aware attributes.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "familyspace"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "form submitted", logger.Form("login"), logger.Component("site"))
//
// Attribute helpers return an empty slog.Attr for nil or empty input, which
// slog omits from the output.
package logger
