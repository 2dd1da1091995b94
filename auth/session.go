package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the cookie that carries the signed customer identity.
const SessionCookie = "storefront_session"

// SessionTTL bounds how long a login cookie stays valid.
const SessionTTL = 7 * 24 * time.Hour

var errInvalidSession = errors.New("invalid session token")

// IssueSessionToken signs a JWT carrying the customer id.
func IssueSessionToken(secret string, customerID uint) (string, error) {
	claims := jwt.MapClaims{
		"customer_id": customerID,
		"jti":         uuid.NewString(),
		"exp":         time.Now().Add(SessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates a session token and returns the customer id.
func ParseSessionToken(secret, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errInvalidSession
	}
	id, ok := claims["customer_id"].(float64)
	if !ok || id <= 0 {
		return 0, errInvalidSession
	}
	return uint(id), nil
}
