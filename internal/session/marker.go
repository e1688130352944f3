// Package session - marker.go signs and verifies the session marker: an HS256 JWT
// naming the actor it was issued for. A restored session is trusted only when its
// marker verifies and agrees with the persisted actor.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

const markerIssuer = "ngoconnect"

// ErrInvalidMarker is returned when a marker does not verify or names another actor
var ErrInvalidMarker = errors.New("invalid session marker")

// markerClaims represents the JWT claims structure
type markerClaims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Signer issues and verifies session markers
type Signer struct {
	secret    []byte
	ephemeral bool
}

// generateRandomSecret creates a cryptographically secure random secret
func generateRandomSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("ephemeral-fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}

// NewSigner creates a signer. Without a secret a random one is generated for this
// process only, so markers issued now will not verify after a restart.
func NewSigner(secret string) *Signer {
	if secret == "" {
		slog.Warn("session.signing_secret not set, using an auto-generated secret",
			"consequence", "persisted sessions will not survive a restart")
		return &Signer{secret: []byte(generateRandomSecret()), ephemeral: true}
	}
	if len(secret) < 32 {
		slog.Warn("session.signing_secret is shorter than the recommended 32 characters")
	}
	return &Signer{secret: []byte(secret)}
}

// Ephemeral reports whether the signer uses a per-process secret
func (s *Signer) Ephemeral() bool {
	return s.ephemeral
}

// Sign issues a marker for actor
func (s *Signer) Sign(actor models.Actor) (string, error) {
	now := time.Now()
	claims := &markerClaims{
		Email: actor.Email,
		Role:  actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   markerIssuer,
			Subject:  actor.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session marker: %w", err)
	}
	return signed, nil
}

// Verify parses marker and checks that it was issued for actor
func (s *Signer) Verify(marker string, actor models.Actor) error {
	token, err := jwt.ParseWithClaims(marker, &markerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(markerIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMarker, err)
	}

	claims, ok := token.Claims.(*markerClaims)
	if !ok || !token.Valid {
		return ErrInvalidMarker
	}
	if claims.Email != actor.Email || claims.Role != actor.Role {
		return fmt.Errorf("%w: issued for %s (%s)", ErrInvalidMarker, claims.Email, claims.Role)
	}
	return nil
}
