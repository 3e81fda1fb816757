// Package token issues and verifies the signed bearer tokens that
// establish user identity on authenticated requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretLen is the minimum acceptable HMAC secret length in bytes.
const minSecretLen = 32

// Claims binds a token to a user id and email on top of the
// standard registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
}

// JWTManager signs and parses HS256 tokens with a shared secret.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTManager constructs a JWTManager. The secret must be at least
// 32 bytes and the ttl must be positive.
func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minSecretLen)
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue returns a signed token bound to the given user id and email,
// expiring after the configured ttl.
func (m *JWTManager) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
		Email:  email,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies the signature and expiry of tokenString and returns
// its claims. Any verification failure is reported as an error; the
// caller should not distinguish the reasons.
func (m *JWTManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}
