package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
)

const flashPrefix = "__flash_"

// SetFlash stores value, JSON-encoded and encrypted, until the next GetFlash.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}

	sealed, err := m.encrypt(data)
	if err != nil {
		return fmt.Errorf("encrypt flash: %w", err)
	}

	m.Set(w, flashPrefix+key, sealed)
	return nil
}

// GetFlash decodes a flash value into dest and deletes the cookie.
func (m *Manager) GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashPrefix + key

	sealed, err := m.Get(r, name)
	if err != nil {
		return err
	}
	m.Delete(w, name)

	data, err := m.decrypt(sealed)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal flash: %w", err)
	}
	return nil
}

func newGCM(secret string) (cipher.AEAD, error) {
	block, err := aes.NewCipher([]byte(secret[:32]))
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (m *Manager) encrypt(plain []byte) (string, error) {
	gcm, err := newGCM(m.secrets[0])
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(gcm.Seal(nonce, nonce, plain, nil)), nil
}

func (m *Manager) decrypt(sealed string) ([]byte, error) {
	data, err := base64.URLEncoding.DecodeString(sealed)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		gcm, err := newGCM(secret)
		if err != nil || len(data) < gcm.NonceSize() {
			continue
		}
		nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
		if plain, err := gcm.Open(nil, nonce, ciphertext, nil); err == nil {
			return plain, nil
		}
	}
	return nil, ErrDecryptionFailed
}
