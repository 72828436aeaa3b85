package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/familyspace/pkg/environment"
	"github.com/dmitrymomot/familyspace/pkg/logger"
)

type ctxKey struct{}

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithEnvironment(environment.Production, "familyspace"),
		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
			if v, ok := ctx.Value(ctxKey{}).(string); ok {
				return logger.RequestID(v), true
			}
			return slog.Attr{}, false
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.DebugContext(ctx, "hidden")
	log.InfoContext(ctx, "form submitted", logger.Form("login"), logger.InvalidFields("email"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "form submitted", rec["msg"])
	assert.Equal(t, "familyspace", rec["service"])
	assert.Equal(t, "production", rec["env"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "login", rec["form"])
	assert.Equal(t, []any{"email"}, rec["invalid_fields"])
}

func TestDevelopmentPreset(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithEnvironment(environment.Development, ""))
	log.Debug("visible", logger.Field("email"))

	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "field=email")
	assert.NotContains(t, buf.String(), "service=")
}

func TestWithFormatPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	assert.NotPanics(t, func() { logger.New(logger.WithFormat(logger.FormatText)) })
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)
	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
	assert.Len(t, logger.Errors(nil, errors.New("a")).Value.Group(), 1)
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "ru", logger.Lang("ru").Value.String())
}

func TestContextExtractorsSurviveDerivedLoggers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
			v, ok := ctx.Value(ctxKey{}).(string)
			return slog.String("trace", v), ok
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "t-1")
	log.With(logger.Form("search")).InfoContext(ctx, "derived")
	log.InfoContext(context.Background(), "bare")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var derived, bare map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &derived))
	require.NoError(t, json.Unmarshal(lines[1], &bare))
	assert.Equal(t, "t-1", derived["trace"])
	assert.Equal(t, "search", derived["form"])
	assert.NotContains(t, bare, "trace")
}
