package toast_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/familyspace/pkg/toast"
)

func TestStyles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind  toast.Kind
		icon  string
		title string
		color string
	}{
		{toast.Success, "fa-check-circle", "Успешно!", "rgba(76, 175, 80, 0.95)"},
		{toast.Error, "fa-exclamation-circle", "Ошибка!", "rgba(244, 67, 54, 0.95)"},
		{toast.Warning, "fa-exclamation-triangle", "Внимание!", "rgba(255, 152, 0, 0.95)"},
		{toast.Info, "fa-info-circle", "Информация", "rgba(33, 150, 243, 0.95)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			style := tt.kind.Style()
			assert.Equal(t, tt.icon, style.Icon)
			assert.Equal(t, tt.title, style.Title)
			assert.Equal(t, tt.color, style.Color)
		})
	}
}

func TestUnknownKindFallsBackToInfo(t *testing.T) {
	t.Parallel()
	assert.Equal(t, toast.Info, toast.Kind("bogus").Normalize())
	assert.Equal(t, toast.Info.Style(), toast.Kind("").Style())
	assert.Equal(t, "toast.title.info", toast.Kind("bogus").TitleKey())
}

func TestNew(t *testing.T) {
	t.Parallel()

	a := toast.New(toast.Success, "ok")
	b := toast.New(toast.Success, "ok")

	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, strings.HasPrefix(a.ID, "toast-"))
	assert.Equal(t, toast.DefaultDismiss, a.Dismiss)
	assert.Equal(t, 5*time.Second, a.Dismiss)
	assert.Equal(t, time.Duration(0), a.WithDismiss(0).Dismiss)
	assert.Equal(t, toast.DefaultDismiss, a.Dismiss)
	assert.Equal(t, toast.Info, toast.New("x", "m").Kind)
}
