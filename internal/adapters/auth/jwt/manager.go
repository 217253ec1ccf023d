// Package jwt emite y verifica los tokens de sesión (HS256).
package jwt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pet-clinic/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenRevoked = errors.New("token has been revoked")
)

const DefaultTTL = time.Hour

type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// tokenClaims es el payload: sub, email, type, role (staff), jti, iat, exp.
type tokenClaims struct {
	Email string `json:"email"`
	Type  string `json:"type"`
	Role  string `json:"role,omitempty"`
	gojwt.RegisteredClaims
}

// Manager implementa auth.TokenIssuer y auth.AuthVerifier.
type Manager struct {
	cfg     Config
	revoker auth.Revoker
	now     func() time.Time
}

// NewManager: revoker puede ser nil (sin logout efectivo).
func NewManager(cfg Config, revoker auth.Revoker) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Manager{cfg: cfg, revoker: revoker, now: time.Now}
}

var (
	_ auth.TokenIssuer  = (*Manager)(nil)
	_ auth.AuthVerifier = (*Manager)(nil)
)

func (m *Manager) Issue(ctx context.Context, c auth.Claims) (string, auth.Claims, error) {
	now := m.now().Truncate(time.Second)
	c.TokenID = uuid.NewString()
	c.IssuedAt = now
	c.ExpiresAt = now.Add(m.cfg.TTL)

	tc := tokenClaims{
		Email: c.Email,
		Type:  string(c.Kind),
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   strconv.FormatInt(c.PrincipalID, 10),
			Issuer:    m.cfg.Issuer,
			ID:        c.TokenID,
			IssuedAt:  gojwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: gojwt.NewNumericDate(c.ExpiresAt),
		},
	}
	if c.Kind == auth.KindStaff {
		tc.Role = c.Role
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, tc).SignedString(m.cfg.Secret)
	if err != nil {
		return "", auth.Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, c, nil
}

func (m *Manager) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(m.now),
	}
	if m.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(m.cfg.Issuer))
	}

	var tc tokenClaims
	_, err := gojwt.ParseWithClaims(token, &tc, func(*gojwt.Token) (any, error) {
		return m.cfg.Secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	id, err := strconv.ParseInt(tc.Subject, 10, 64)
	if err != nil || id <= 0 {
		return auth.Claims{}, fmt.Errorf("%w: bad subject", ErrTokenInvalid)
	}
	kind, ok := auth.ParseKind(tc.Type)
	if !ok {
		return auth.Claims{}, fmt.Errorf("%w: unknown principal type %q", ErrTokenInvalid, tc.Type)
	}

	if m.revoker != nil && tc.ID != "" {
		revoked, err := m.revoker.IsRevoked(ctx, tc.ID)
		if err != nil {
			return auth.Claims{}, fmt.Errorf("check denylist: %w", err)
		}
		if revoked {
			return auth.Claims{}, ErrTokenRevoked
		}
	}

	c := auth.Claims{
		PrincipalID: id,
		Email:       tc.Email,
		Kind:        kind,
		Role:        tc.Role,
		TokenID:     tc.ID,
	}
	if tc.IssuedAt != nil {
		c.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}
