// Package jwtmw はoracleセッションへのアクセストークンの発行と検証を提供します。
package jwtmw

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret はトークン署名鍵を読む環境変数名です。
const EnvKeyJWTSecret = "JWT_SECRET"

const claimSessionID = "sid"

// ErrInvalidToken はトークンの署名・期限・クレームが不正な場合に返されます。
var ErrInvalidToken = errors.New("invalid session token")

// Generator defines the interface for session token generation.
type Generator interface {
	// GenerateToken creates a signed token granting access to the given session.
	GenerateToken(sessionID string) (string, error)
	// ParseToken verifies the token and returns the session ID it grants.
	ParseToken(token string) (string, error)
}

// HMACGenerator implements the Generator interface with HMAC-SHA256.
type HMACGenerator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

var _ Generator = (*HMACGenerator)(nil)

// NewGenerator creates a new session token generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *HMACGenerator {
	return &HMACGenerator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed JWT token carrying the session ID.
func (g *HMACGenerator) GenerateToken(sessionID string) (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		claimSessionID: sessionID,
		"iat":          now.Unix(),
		"exp":          now.Add(g.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry. Only HMAC signing methods are accepted.
func (g *HMACGenerator) ParseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	}, jwt.WithTimeFunc(g.now))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sid, ok := claims[claimSessionID].(string)
	if !ok || sid == "" {
		return "", ErrInvalidToken
	}
	return sid, nil
}

// RandomSecret は32バイトのランダムな署名鍵を16進文字列で返します。
func RandomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
