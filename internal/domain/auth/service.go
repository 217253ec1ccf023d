// Package auth es la puerta de entrada: login de staff y owners, logout y "me".
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-clinic/internal/domain/clinic"
	"pet-clinic/internal/platform/logger"
	ports "pet-clinic/internal/ports/auth"
)

// StaffFinder y OwnerFinder los cumplen staff.Service y owners.Service.
type StaffFinder interface {
	FindByEmail(ctx context.Context, email string) (clinic.Staff, bool, error)
	FindOne(ctx context.Context, id int64) (clinic.Staff, error)
}

type OwnerFinder interface {
	FindByEmail(ctx context.Context, email string) (clinic.PetOwner, bool, error)
	FindOne(ctx context.Context, id int64) (clinic.PetOwner, error)
}

type Service struct {
	staff   StaffFinder
	owners  OwnerFinder
	tokens  ports.TokenIssuer
	revoker ports.Revoker
	log     logger.Logger
}

func NewService(staff StaffFinder, owners OwnerFinder, tokens ports.TokenIssuer, revoker ports.Revoker, log logger.Logger) *Service {
	return &Service{
		staff:   staff,
		owners:  owners,
		tokens:  tokens,
		revoker: revoker,
		log:     logger.OrNop(log).With(map[string]any{"module": "auth"}),
	}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User es el resumen del principal que devuelven login y /auth/me.
type User struct {
	ID       int64               `json:"id"`
	Email    string              `json:"email"`
	FullName string              `json:"full_name"`
	Role     string              `json:"role,omitempty"`
	Type     ports.PrincipalKind `json:"type"`
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type principal struct {
	user User
	hash string
}

// Authenticate devuelve el mismo error si el email no existe, si el password
// no coincide o si las credenciales vienen mal formadas; en los dos primeros
// casos se paga el costo de bcrypt.
func (s *Service) Authenticate(ctx context.Context, kind ports.PrincipalKind, in LoginInput) (LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := clinic.Validate(in); err != nil {
		s.log.Info("login rejected", map[string]any{"type": kind, "reason": "malformed credentials"})
		return LoginResult{}, clinic.ErrInvalidCredentials
	}

	p, found, err := s.lookup(ctx, kind, in.Email)
	if err != nil {
		return LoginResult{}, err
	}
	if !found {
		clinic.CheckPassword(dummyHash(), in.Password)
		s.log.Info("login rejected", map[string]any{"type": kind, "reason": "unknown email"})
		return LoginResult{}, clinic.ErrInvalidCredentials
	}
	if !clinic.CheckPassword(p.hash, in.Password) {
		s.log.Info("login rejected", map[string]any{"type": kind, "reason": "bad password", "id": p.user.ID})
		return LoginResult{}, clinic.ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(ctx, ports.Claims{
		PrincipalID: p.user.ID,
		Email:       p.user.Email,
		Kind:        kind,
		Role:        p.user.Role,
	})
	if err != nil {
		return LoginResult{}, err
	}

	s.log.Info("login ok", map[string]any{"type": kind, "id": p.user.ID})
	return LoginResult{AccessToken: token, User: p.user}, nil
}

// Logout revoca el token actual hasta su expiración.
func (s *Service) Logout(ctx context.Context, c ports.Claims) error {
	if s.revoker == nil || c.TokenID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, c.TokenID, c.ExpiresAt); err != nil {
		return err
	}
	s.log.Info("logout", map[string]any{"type": c.Kind, "id": c.PrincipalID})
	return nil
}

// Me relee el principal: si fue borrado después del login, es 401.
func (s *Service) Me(ctx context.Context, c ports.Claims) (User, error) {
	var nf *clinic.NotFoundError

	switch c.Kind {
	case ports.KindStaff:
		m, err := s.staff.FindOne(ctx, c.PrincipalID)
		if err != nil {
			if errors.As(err, &nf) {
				return User{}, &clinic.UnauthorizedError{Message: "Principal no longer exists"}
			}
			return User{}, err
		}
		return staffUser(m), nil
	case ports.KindOwner:
		o, err := s.owners.FindOne(ctx, c.PrincipalID)
		if err != nil {
			if errors.As(err, &nf) {
				return User{}, &clinic.UnauthorizedError{Message: "Principal no longer exists"}
			}
			return User{}, err
		}
		return ownerUser(o), nil
	}
	return User{}, &clinic.UnauthorizedError{Message: "Unknown principal type"}
}

func (s *Service) lookup(ctx context.Context, kind ports.PrincipalKind, email string) (principal, bool, error) {
	switch kind {
	case ports.KindStaff:
		m, found, err := s.staff.FindByEmail(ctx, email)
		if err != nil || !found {
			return principal{}, false, err
		}
		return principal{user: staffUser(m), hash: m.PasswordHash}, true, nil
	case ports.KindOwner:
		o, found, err := s.owners.FindByEmail(ctx, email)
		if err != nil || !found {
			return principal{}, false, err
		}
		return principal{user: ownerUser(o), hash: o.PasswordHash}, true, nil
	}
	return principal{}, false, nil
}

func staffUser(m clinic.Staff) User {
	return User{ID: m.ID, Email: m.Email, FullName: m.FullName, Role: m.Role, Type: ports.KindStaff}
}

func ownerUser(o clinic.PetOwner) User {
	return User{ID: o.ID, Email: o.Email, FullName: o.FullName, Type: ports.KindOwner}
}

var (
	dummyOnce sync.Once
	dummy     string
)

// dummyHash iguala el tiempo de respuesta cuando el email no existe.
func dummyHash() string {
	dummyOnce.Do(func() {
		dummy, _ = clinic.HashPassword("not-a-real-password", clinic.DefaultBcryptCost)
	})
	return dummy
}
