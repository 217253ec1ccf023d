package dashboard

import (
	"net/http"

	"pet-clinic/internal/middleware"
	"pet-clinic/internal/platform/httpx"
	"pet-clinic/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.With(middleware.RequirePrincipal(auth.KindStaff)).Get("/dashboard/summary", summaryHandler(svc))
	r.With(middleware.RequirePrincipal(auth.KindOwner)).Get("/me/overview", overviewHandler(svc))
}

// summaryHandler godoc
// @Summary Resumen de la clínica (staff)
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Summary
// @Failure 401 {object} httpx.ErrorBody
// @Router /dashboard/summary [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.Summary(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// overviewHandler godoc
// @Summary Mis mascotas, citas, historias y facturas (owner)
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Overview
// @Failure 401 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody "el owner ya no existe"
// @Router /me/overview [get]
func overviewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		out, err := svc.Overview(r.Context(), claims.PrincipalID)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}
