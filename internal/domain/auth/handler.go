package auth

import (
	"net/http"

	"pet-clinic/internal/middleware"
	"pet-clinic/internal/platform/httpx"
	ports "pet-clinic/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login/staff", loginHandler(svc, ports.KindStaff))
		ar.Post("/login/owner", loginHandler(svc, ports.KindOwner))

		ar.With(middleware.RequirePrincipal()).Post("/logout", logoutHandler(svc))
		ar.With(middleware.RequirePrincipal()).Get("/me", meHandler(svc))
	})
}

// loginHandler godoc
// @Summary Login (staff u owner según la ruta)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginInput true "Credenciales"
// @Success 200 {object} LoginResult
// @Failure 400 {object} httpx.ErrorBody
// @Failure 401 {object} httpx.ErrorBody "Invalid credentials"
// @Router /auth/login/staff [post]
// @Router /auth/login/owner [post]
func loginHandler(svc *Service, kind ports.PrincipalKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in LoginInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		res, err := svc.Authenticate(r.Context(), kind, in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, res)
	}
}

// logoutHandler godoc
// @Summary Logout (revoca el token actual)
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} httpx.ErrorBody
// @Router /auth/logout [post]
func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if err := svc.Logout(r.Context(), claims); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// meHandler godoc
// @Summary Principal de la sesión actual
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} User
// @Failure 401 {object} httpx.ErrorBody
// @Router /auth/me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		u, err := svc.Me(r.Context(), claims)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, u)
	}
}
