package auth

import "time"

// PrincipalKind distingue las dos tablas que pueden iniciar sesión.
type PrincipalKind string

const (
	KindStaff PrincipalKind = "staff"
	KindOwner PrincipalKind = "owner"
)

func ParseKind(s string) (PrincipalKind, bool) {
	switch PrincipalKind(s) {
	case KindStaff, KindOwner:
		return PrincipalKind(s), true
	}
	return "", false
}

// Claims representa la información extraída del token.
type Claims struct {
	PrincipalID int64
	Email       string
	Kind        PrincipalKind
	// Role sólo para staff.
	Role string

	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
