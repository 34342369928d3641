package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DownloadClaims is the claim set carried by a document download token.
type DownloadClaims struct {
	RequestID    string `json:"requestId"`
	DocumentType string `json:"documentType"`
	jwt.RegisteredClaims
}

// Signer issues and verifies short-lived download tokens for generated
// documents. Documents are rendered on demand, so the token is the only
// artefact that ever leaves the server.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner constructs a Signer.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// Sign issues a token for the given document request.
func (s *Signer) Sign(requestID, documentType string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)
	claims := DownloadClaims{
		RequestID:    requestID,
		DocumentType: documentType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   requestID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign download token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses the token and returns its claims.
func (s *Signer) Verify(raw string) (*DownloadClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &DownloadClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("parse download token: %w", err)
	}
	claims, ok := token.Claims.(*DownloadClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid download token")
	}
	return claims, nil
}
