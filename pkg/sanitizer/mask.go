package sanitizer

import "strings"

// MaskString keeps visible characters at both ends and stars the middle.
// Strings too short to keep anything are fully masked.
func MaskString(s string, visible int) string {
	if visible < 0 {
		visible = 1
	}
	runes := []rune(s)
	if len(runes) <= visible*2 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:visible]) + strings.Repeat("*", len(runes)-visible*2) + string(runes[len(runes)-visible:])
}

// MaskEmail hides the local part of an address for logs.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return MaskString(email, 1)
	}
	runes := []rune(local)
	return string(runes[0]) + strings.Repeat("*", len(runes)-1) + "@" + domain
}
