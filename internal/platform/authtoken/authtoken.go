// Package authtoken mints and verifies the short-lived HS256 service tokens
// exchanged between this service and its collaborators. The signing key is
// shared, so the same type covers both directions.
package authtoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 5 * time.Minute

// Minter signs HS256 service tokens for a fixed issuer.
type Minter struct {
	key    []byte
	issuer string
}

// New builds a minter. The key is shared with the collaborator gateways.
func New(key, issuer string) *Minter {
	return &Minter{key: []byte(key), issuer: issuer}
}

// Token returns a freshly signed bearer token.
func (m *Minter) Token() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
}

// Verify checks the signature and expiry of an inbound service token and
// returns its issuer.
func (m *Minter) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid service token")
	}
	return claims.Issuer, nil
}
