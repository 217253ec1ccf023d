package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-clinic/internal/platform/httpx"
	"pet-clinic/internal/platform/logger"
	"pet-clinic/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext:
// - Si viene Bearer token válido => setea claims.
// - Token inválido, vencido o revocado => el request sigue sin claims.
// - Los handlers (o RequirePrincipal) deciden si exigen auth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.FromContext(r.Context(), nil).Debug("bearer token rejected", map[string]any{"error": err})
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// RequirePrincipal corta con 401 si no hay claims o si el tipo no está en kinds.
// Sin kinds acepta cualquier principal autenticado.
func RequirePrincipal(kinds ...auth.PrincipalKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok || claims.PrincipalID <= 0 {
				httpx.WriteStatus(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if len(kinds) > 0 && !containsKind(kinds, claims.Kind) {
				httpx.WriteStatus(w, http.StatusUnauthorized, "This endpoint requires a "+joinKinds(kinds)+" session")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func containsKind(kinds []auth.PrincipalKind, k auth.PrincipalKind) bool {
	for _, v := range kinds {
		if v == k {
			return true
		}
	}
	return false
}

func joinKinds(kinds []auth.PrincipalKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, " or ")
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
