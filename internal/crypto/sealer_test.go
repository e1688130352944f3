package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

// testKey returns a valid 32-byte key for use in tests.
func testKey() []byte {
	return bytes.Repeat([]byte("k"), 32)
}

func TestNewSealer(t *testing.T) {
	if _, err := NewSealer(testKey()); err != nil {
		t.Fatalf("NewSealer() unexpected error: %v", err)
	}

	for _, n := range []int{0, 16, 31, 33, 64} {
		if _, err := NewSealer(make([]byte, n)); !errors.Is(err, ErrKeyLengthInvalid) {
			t.Errorf("NewSealer(len=%d) error = %v, want %v", n, err, ErrKeyLengthInvalid)
		}
	}
}

func TestNewSealerIsolatesKey(t *testing.T) {
	key := testKey()
	s, err := NewSealer(key)
	if err != nil {
		t.Fatalf("NewSealer() error: %v", err)
	}
	sealed, err := s.Seal([]byte(`{"email":"a@b.org"}`))
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	for i := range key {
		key[i] = 0
	}

	got, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open() after key mutation error: %v", err)
	}
	if string(got) != `{"email":"a@b.org"}` {
		t.Errorf("Open() = %q", got)
	}
}

func TestSealOpen(t *testing.T) {
	s, _ := NewSealer(testKey())
	plaintext := []byte(`{"actor":{"email":"admin@ngoconnect.org","role":"admin"},"marker":"x.y.z"}`)

	a, err := s.Seal(plaintext)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	b, _ := s.Seal(plaintext)
	if a == b {
		t.Error("two seals of the same plaintext must differ (random nonce)")
	}
	if strings.Contains(a, "admin@ngoconnect.org") {
		t.Error("sealed output leaks plaintext")
	}

	got, err := s.Open(a)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Open() = %q, want %q", got, plaintext)
	}
}

func TestOpenErrors(t *testing.T) {
	s, _ := NewSealer(testKey())
	other, _ := NewSealer(bytes.Repeat([]byte("z"), 32))
	sealed, _ := s.Seal([]byte("payload"))

	raw, _ := base64.URLEncoding.DecodeString(sealed)
	raw[len(raw)-1] ^= 0xff
	tampered := base64.URLEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		sealer  *Sealer
		input   string
		wantErr error
	}{
		{"not base64", s, "%%%", ErrCiphertextCorrupted},
		{"too short", s, base64.URLEncoding.EncodeToString([]byte("abc")), ErrCiphertextCorrupted},
		{"wrong key", other, sealed, ErrDecryptionFailed},
		{"tampered", s, tampered, ErrDecryptionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.sealer.Open(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeriveSealer(t *testing.T) {
	salt := []byte("0123456789abcdef")

	if _, err := DeriveSealer("pass", []byte("short"), 0); !errors.Is(err, ErrSaltTooShort) {
		t.Errorf("DeriveSealer(short salt) error = %v, want %v", err, ErrSaltTooShort)
	}
	if _, err := DeriveSealer("", salt, 0); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("DeriveSealer(empty) error = %v, want %v", err, ErrEmptyKey)
	}

	a, err := DeriveSealer("correct horse", salt, 10000)
	if err != nil {
		t.Fatalf("DeriveSealer() error: %v", err)
	}
	b, _ := DeriveSealer("correct horse", salt, 10000)
	sealed, _ := a.Seal([]byte("x"))
	if _, err := b.Open(sealed); err != nil {
		t.Errorf("same passphrase and salt must derive the same key: %v", err)
	}
}

func TestParseSealer(t *testing.T) {
	if _, err := ParseSealer(""); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("ParseSealer(\"\") error = %v, want %v", err, ErrEmptyKey)
	}

	hexKey := hex.EncodeToString(testKey())
	fromHex, err := ParseSealer(hexKey)
	if err != nil {
		t.Fatalf("ParseSealer(hex) error: %v", err)
	}
	raw, _ := NewSealer(testKey())
	sealed, _ := raw.Seal([]byte("x"))
	if _, err := fromHex.Open(sealed); err != nil {
		t.Errorf("hex key must be used as the raw key: %v", err)
	}

	p1, err := ParseSealer("a passphrase")
	if err != nil {
		t.Fatalf("ParseSealer(passphrase) error: %v", err)
	}
	p2, _ := ParseSealer("a passphrase")
	sealed, _ = p1.Seal([]byte("y"))
	if _, err := p2.Open(sealed); err != nil {
		t.Errorf("passphrase derivation must be stable: %v", err)
	}
}

func TestGenerateKey(t *testing.T) {
	a, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("GenerateKey() length = %d, want 64", len(a))
	}
	b, _ := GenerateKey()
	if a == b {
		t.Error("GenerateKey() returned the same key twice")
	}
	if _, err := ParseSealer(a); err != nil {
		t.Errorf("generated key must parse: %v", err)
	}
}
