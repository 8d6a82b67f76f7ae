package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 24 * time.Hour

// GenerateJWT mints an HS256 access token whose subject is the decimal form
// of the user id.
func GenerateJWT(secret []byte, userID uint) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseJWT validates a token and returns its subject string.
func ParseJWT(secret []byte, tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	return claims.Subject, nil
}

// SubjectUserID parses a token subject as a numeric user id. A non-numeric
// subject is not a parse failure for callers: they receive ok=false and keep
// the raw subject as a degraded identity that simply matches no stored user.
func SubjectUserID(subject string) (uint, bool) {
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
