package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT claim names.
const (
	ClaimID       = "id"
	ClaimUsername = "username"
	ClaimRole     = "role"
)

// IssueToken signs an HS256 token for the given account.
func IssueToken(secret string, ttl time.Duration, id int64, username, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		ClaimID:       id,
		ClaimUsername: username,
		ClaimRole:     role,
		"iat":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseToken(secret, raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
