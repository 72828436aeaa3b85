package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/familyspace/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "семейный пикник", "семейный пикник"},
		{"tags removed", "<b>пикник</b>", "пикник"},
		{"script removed with body", `<script>alert(1)</script>поиск`, "поиск"},
		{"attributes gone", `<img src=x onerror="alert(1)">`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"пикник" & чай`, sanitizer.PlainText(`<i>"пикник"</i> & чай`))
	assert.Equal(t, "", sanitizer.PlainText(`<script>alert(1)</script>`))
}

func TestEcho(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "летний лагерь", sanitizer.Echo("  летний \n\t лагерь\x07 "))
	assert.Equal(t, 200, len([]rune(sanitizer.Echo(strings.Repeat("я", 300)))))
}

func TestChain(t *testing.T) {
	t.Parallel()

	upper := func(s string) string { return strings.ToUpper(s) }
	pipeline := sanitizer.Chain(sanitizer.NormalizeWhitespace, upper)
	assert.Equal(t, "A B C", pipeline("  a \n b   c "))
	assert.Equal(t, "x", sanitizer.Chain()("x"))
}

func TestMask(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a***@example.com", sanitizer.MaskEmail(" anna@example.com "))
	assert.Equal(t, "а***@почта.рф", sanitizer.MaskEmail("анна@почта.рф"))
	assert.Equal(t, "n*****l", sanitizer.MaskEmail("notmail"))
	assert.Equal(t, "***", sanitizer.MaskString("abc", 2))
	assert.Equal(t, "ab**ef", sanitizer.MaskString("abcdef", 2))
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "при", sanitizer.MaxLength("привет", 3))
	assert.Equal(t, "hi", sanitizer.MaxLength("hi", 10))
	assert.Empty(t, sanitizer.MaxLength("hi", 0))
}
