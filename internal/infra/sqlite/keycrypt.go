package sqlite

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

// KeyCipher encrypts provider API keys before they touch disk. The secret
// from config is stretched to a 32-byte secretbox key; each ciphertext
// carries its own random nonce.
type KeyCipher struct {
	key [32]byte
}

func NewKeyCipher(secret string) *KeyCipher {
	return &KeyCipher{key: sha256.Sum256([]byte(secret))}
}

// Encrypt seals the plaintext and returns a base64 string safe for a TEXT column.
func (c *KeyCipher) Encrypt(plaintext string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &c.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Tampered or foreign ciphertexts fail.
func (c *KeyCipher) Decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(sealed) < 24 {
		return "", errors.New("ciphertext too short")
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plaintext, ok := secretbox.Open(nil, sealed[24:], &nonce, &c.key)
	if !ok {
		return "", errors.New("ciphertext authentication failed")
	}
	return string(plaintext), nil
}
