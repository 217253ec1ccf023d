package auth

import (
	"context"
	"time"
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token para el principal. Completa TokenID, IssuedAt y ExpiresAt.
type TokenIssuer interface {
	Issue(ctx context.Context, c Claims) (string, Claims, error)
}

// Revoker es la denylist de tokens (logout). Las entradas viven hasta until.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
