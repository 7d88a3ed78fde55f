// Package auth implements the session token codec: issuing and decoding
// signed, time-bound claim sets (subject, issued-at, expiry) with an
// HS256 HMAC. The codec is pure: it never consults the revocation
// blacklist — that check belongs to the service layer.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/campkeeper/campkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// IssueToken builds a claim set for the given subject with
// iat = now (UTC) and exp = iat + validity, and signs it with secretKey.
// An empty secret key is an operator misconfiguration.
func IssueToken(subject string, secretKey []byte, validity time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", fmt.Errorf("%w: secret key is not set", common.ErrConfiguration)
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// DecodeToken verifies the signature and expiry of tokenString and returns
// the subject claim. Expired tokens yield common.ErrTokenExpired; any other
// verification or structural failure yields common.ErrInvalidToken.
func DecodeToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
