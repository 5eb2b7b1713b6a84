// Package cryptox seals values persisted by the client (bearer token,
// cached profile) so that a copied state directory is useless without the
// device secret.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"

	"github.com/dailyhustle/hustle/internal/common"
	"github.com/dailyhustle/hustle/internal/filex"
)

const secretSize = 32

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// DeriveKey stretches secret into a 32-byte AES key with argon2id.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// Sealer encrypts and decrypts small values with AES-GCM. The nonce is
// prepended to the ciphertext.
type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := common.GenerateRandByteArray(s.aead.NonceSize())
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(sealed) < n {
		return nil, ErrCiphertextTooShort
	}
	return s.aead.Open(nil, sealed[:n], sealed[n:], nil)
}

// LoadOrCreateSecret reads the device secret at path, creating it with
// owner-only permissions on first use.
func LoadOrCreateSecret(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		if len(b) != secretSize {
			return nil, fmt.Errorf("device secret %s: unexpected size %d", path, len(b))
		}
		return b, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read device secret: %w", err)
	}

	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	secret := common.GenerateRandByteArray(secretSize)
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("write device secret: %w", err)
	}
	return secret, nil
}

// NewDeviceSealer loads (or creates) the secret at path and derives the
// sealing key from it.
func NewDeviceSealer(path string) (*Sealer, error) {
	secret, err := LoadOrCreateSecret(path)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(secret)

	key := DeriveKey(secret, []byte("dailyhustle/state/v1"))
	defer common.WipeByteArray(key)
	return NewSealer(key)
}
