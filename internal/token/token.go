// Package token issues and verifies the signed access and refresh tokens.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidToken  = errors.New("token is invalid")
	ErrMissingConfig = errors.New("token secret or expiry is not configured")
)

// Claims carried by both token kinds. Email and FullName are only set on
// access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"_id"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

func sign(claims Claims, secret string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// IssueAccessToken signs a short-lived token carrying the user's identity.
func IssueAccessToken(userID, email, fullName, secret string, expiry time.Duration) (string, error) {
	if secret == "" || expiry == 0 {
		return "", ErrMissingConfig
	}
	return sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:   userID,
		Email:    email,
		FullName: fullName,
	}, secret)
}

// IssueRefreshToken signs a longer-lived token carrying only the user id.
func IssueRefreshToken(userID, secret string, expiry time.Duration) (string, error) {
	if secret == "" || expiry == 0 {
		return "", ErrMissingConfig
	}
	return sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}, secret)
}

// Verify parses and validates a token against the given secret. Expired
// tokens are reported as ErrExpiredToken so callers can distinguish them from
// malformed or tampered ones.
func Verify(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
