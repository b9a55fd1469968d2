package common

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtSecret reads JWT_SECRET at call time, after any .env file has been
// loaded into the process environment.
func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func tokenExpiry() time.Duration {
	hours := 24
	if v := os.Getenv("TOKEN_EXPIRY_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			hours = n
		}
	}
	return time.Duration(hours) * time.Hour
}

// Claims represents the data stored in the JWT token
type Claims struct {
	UserID uint64 `json:"user_id"`
	Handle string `json:"handle"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uint64, handle string) (string, error) {
	claims := &Claims{
		UserID: userID,
		Handle: handle,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "gochat",
			Subject:   "user-auth",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(jwtSecret())
}

// Authenticate validates a token string and returns the user identity bound
// to it. This is the only auth entry point the session layer consumes.
func Authenticate(tokenstring string) (*Claims, error) {
	if tokenstring == "" {
		return nil, ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(tokenstring, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})

	if err != nil {
		return nil, ErrUnauthorized
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrUnauthorized
}
