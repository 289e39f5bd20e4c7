package creds

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for the vault key.
const (
	saltLen      = 16
	keyLen       = 32
	argonTime    = 1
	argonMem     = 64 * 1024
	argonThreads = 4
)

// sealer encrypts vault payloads with AES-256-GCM under a password-derived key.
type sealer struct {
	salt []byte
	aead cipher.AEAD
}

// newSealer derives the vault key from password and salt. A nil salt
// generates a fresh one.
func newSealer(password, salt []byte) (*sealer, error) {
	if salt == nil {
		salt = make([]byte, saltLen)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, err
		}
	}
	key := argon2.IDKey(password, salt, argonTime, argonMem, argonThreads, keyLen)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &sealer{salt: salt, aead: aead}, nil
}

// seal returns nonce || ciphertext.
func (s *sealer) seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *sealer) open(data []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(data) < n {
		return nil, errors.New("ciphertext too short")
	}
	return s.aead.Open(nil, data[:n], data[n:], nil)
}
