// Package crypto seals persisted session records with AES-256-GCM so a copied session
// file or redis value cannot be read or silently edited without the configured key.
// The key is either 64 hex characters (32 raw bytes) or a passphrase stretched with
// PBKDF2-SHA256.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// sessionSalt is the fixed PBKDF2 salt for passphrase-derived session keys
var sessionSalt = []byte("ngoconnect/session-record/v1")

// DefaultIterations is the PBKDF2 work factor used when none is given
const DefaultIterations = 100000

var (
	// ErrKeyLengthInvalid is returned when a raw key is not exactly 32 bytes
	ErrKeyLengthInvalid = errors.New("crypto: key must be exactly 32 bytes for AES-256")
	// ErrEmptyKey is returned when no key material is configured
	ErrEmptyKey = errors.New("crypto: key material is empty")
	// ErrCiphertextCorrupted is returned when a sealed record cannot be decoded or is truncated
	ErrCiphertextCorrupted = errors.New("crypto: ciphertext is corrupted or tampered")
	// ErrDecryptionFailed is returned when authentication fails, usually a wrong key
	ErrDecryptionFailed = errors.New("crypto: decryption operation failed")
	// ErrSaltTooShort is returned when a PBKDF2 salt is shorter than 16 bytes
	ErrSaltTooShort = errors.New("crypto: salt must be at least 16 bytes")
)

// Sealer encrypts and authenticates persisted records
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer creates a sealer from a 32-byte key
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != 32 {
		return nil, ErrKeyLengthInvalid
	}
	keyCopy := make([]byte, 32)
	copy(keyCopy, key)

	block, err := aes.NewCipher(keyCopy)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// DeriveSealer stretches passphrase into a key with PBKDF2-SHA256
func DeriveSealer(passphrase string, salt []byte, iterations int) (*Sealer, error) {
	if passphrase == "" {
		return nil, ErrEmptyKey
	}
	if len(salt) < 16 {
		return nil, ErrSaltTooShort
	}
	if iterations < 10000 {
		iterations = DefaultIterations
	}
	return NewSealer(pbkdf2.Key([]byte(passphrase), salt, iterations, 32, sha256.New))
}

// ParseSealer builds a sealer from configured key material: 64 hex characters are used
// as the raw key, anything else is treated as a passphrase.
func ParseSealer(material string) (*Sealer, error) {
	if material == "" {
		return nil, ErrEmptyKey
	}
	if len(material) == 64 {
		if raw, err := hex.DecodeString(material); err == nil {
			return NewSealer(raw)
		}
	}
	return DeriveSealer(material, sessionSalt, DefaultIterations)
}

// Seal encrypts plaintext and returns base64url(nonce || ciphertext)
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := s.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal
func (s *Sealer) Open(encoded string) ([]byte, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrCiphertextCorrupted
	}

	nonceLen := s.aead.NonceSize()
	if len(ciphertext) < nonceLen+s.aead.Overhead() {
		return nil, ErrCiphertextCorrupted
	}

	plaintext, err := s.aead.Open(nil, ciphertext[:nonceLen], ciphertext[nonceLen:], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// GenerateKey returns a random 32-byte key, hex encoded
func GenerateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}
