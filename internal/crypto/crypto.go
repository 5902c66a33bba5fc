package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

// CookieSealer handles AES-256-GCM sealing of session cookie values so the
// token carried by the browser is tamper-evident and opaque.
type CookieSealer struct {
	gcm cipher.AEAD
}

// NewCookieSealer derives a 32-byte AES-256 key from the session secret and
// returns a sealer for cookie values.
func NewCookieSealer(secret string) (*CookieSealer, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher block: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM mode: %w", err)
	}

	return &CookieSealer{gcm: gcm}, nil
}

// Seal encrypts a session token for transport in a cookie.
// Format: base64url(nonce || ciphertext)
func (s *CookieSealer) Seal(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token is required")
	}

	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := s.gcm.Seal(nonce, nonce, []byte(token), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a cookie value back into the session token. Any tampering
// with the value fails GCM authentication and returns an error.
func (s *CookieSealer) Open(value string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("failed to decode cookie value: %w", err)
	}

	nonceSize := s.gcm.NonceSize()
	if len(raw) < nonceSize {
		return "", fmt.Errorf("cookie value too short")
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	token, err := s.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to open cookie value: %w", err)
	}

	return string(token), nil
}
