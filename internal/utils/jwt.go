package utils

import (
	"os"
	"time"

	"github.com/gocql/gocql"
	"github.com/golang-jwt/jwt/v5"
)

// tokenLifetime matches the mobile client's session expectations.
const tokenLifetime = 30 * 24 * time.Hour

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// GenerateJWT signs a bearer token carrying the account id and role. The
// token is the only thing the authorization gate trusts (brands get an extra
// existence re-check).
func GenerateJWT(id gocql.UUID, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":   id.String(),
		"role": role,
		"exp":  time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// JWTSecret is exported for the auth middleware's parse callback.
func JWTSecret() []byte {
	return jwtSecret()
}
