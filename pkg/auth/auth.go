package auth

import (
	"context"
	"os"

	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// JWTKey signs and verifies access tokens. Override via JWT_KEY in any
// non-development environment.
var JWTKey = []byte(jwtKeyFromEnv())

func jwtKeyFromEnv() string {
	if key := os.Getenv("JWT_KEY"); key != "" {
		return key
	}
	return "library-dev-secret"
}

type Claims struct {
	Profile struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"profile"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the request-scoped caller resolved by the auth middleware.
// It is passed explicitly into services, never read from globals.
type Identity struct {
	Username string
	Role     string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type ctxKey int

const identityKey ctxKey = iota + 1

func SetAuthContext(ctx context.Context, username, role string) context.Context {
	return context.WithValue(ctx, identityKey, Identity{Username: username, Role: role})
}

func FromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok
}
