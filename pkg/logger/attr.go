package logger

import (
	"log/slog"
	"strconv"
)

// Error records err under "error". A nil error yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr { return slog.String("component", name) }
func Event(name string) slog.Attr     { return slog.String("event", name) }
func Handler(name string) slog.Attr   { return slog.String("handler", name) }
func Form(name string) slog.Attr      { return slog.String("form", name) }
func Field(name string) slog.Attr     { return slog.String("field", name) }
func Email(masked string) slog.Attr   { return slog.String("email", masked) }
func Lang(code string) slog.Attr      { return slog.String("lang", code) }
func Duration(d any) slog.Attr        { return slog.Any("duration", d) }

// InvalidFields lists failed field names under "invalid_fields".
func InvalidFields(names ...string) slog.Attr {
	return slog.Any("invalid_fields", names)
}
