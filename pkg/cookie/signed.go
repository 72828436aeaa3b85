package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"
)

// SetSigned stores value with an HMAC-SHA256 signature.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) {
	m.Set(w, name, m.sign(value), opts...)
}

// GetSigned returns the value of a signed cookie, or ErrInvalidSignature if
// it was tampered with.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(signed)
}

func (m *Manager) sign(value string) string {
	return base64.URLEncoding.EncodeToString([]byte(value)) + "|" + mac(m.secrets[0], []byte(value))
}

func (m *Manager) verify(signed string) (string, error) {
	encoded, signature, ok := strings.Cut(signed, "|")
	if !ok {
		return "", ErrInvalidFormat
	}

	value, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		if subtle.ConstantTimeCompare([]byte(signature), []byte(mac(secret, value))) == 1 {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

func mac(secret string, value []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(value)
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}
