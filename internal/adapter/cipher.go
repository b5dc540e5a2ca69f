package adapter

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrDecrypt is returned when a sealed value cannot be opened
var ErrDecrypt = errors.New("failed to decrypt value")

// Cipher seals and opens secrets stored at rest
//
//go:generate mockgen -source=cipher.go -destination=../mocks/cipher.go -package=mocks -mock_names=Cipher=MockCipher
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// XChaCha20Cipher implements Cipher with XChaCha20-Poly1305.
// Sealed values are base64(nonce || ciphertext).
type XChaCha20Cipher struct {
	key []byte
}

// NewCipher derives a 256-bit key from the configured secret
func NewCipher(secret string) (Cipher, error) {
	if secret == "" {
		return nil, errors.New("credential key is required")
	}
	sum := sha256.Sum256([]byte(secret))
	return &XChaCha20Cipher{key: sum[:]}, nil
}

func (c *XChaCha20Cipher) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *XChaCha20Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return "", fmt.Errorf("%w: value too short", ErrDecrypt)
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return string(plain), nil
}
