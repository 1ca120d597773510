package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	secretKey = []byte("supersecret")
	tokenTTL  = 7 * 24 * time.Hour
)

// ConfigureTokens overrides the signing secret and token lifetime. Call
// once during bootstrap, before the server starts handling requests.
func ConfigureTokens(secret string, ttl time.Duration) {
	if secret != "" {
		secretKey = []byte(secret)
	}
	if ttl != 0 {
		tokenTTL = ttl
	}
}

// GenerateToken signs an identity assertion carrying the user id and email.
func GenerateToken(email string, userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    userID,
		"email": email,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(secretKey)
}

// VerifyToken checks the signature and expiry and returns the asserted
// user id and email.
func VerifyToken(token string) (int64, string, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		return 0, "", errors.New("could not parse token")
	}
	if !parsedToken.Valid {
		return 0, "", errors.New("invalid token")
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid token claims")
	}
	rawID, ok := claims["id"].(float64)
	if !ok || rawID <= 0 {
		return 0, "", errors.New("invalid token claims")
	}
	email, _ := claims["email"].(string)

	return int64(rawID), email, nil
}
