package owners

import (
	"net/http"

	"pet-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pet-owners", func(or chi.Router) {
		or.Post("/", createOwnerHandler(svc))
		or.Get("/", listOwnersHandler(svc))
		or.Get("/{id}", getOwnerHandler(svc))
		or.Patch("/{id}", updateOwnerHandler(svc))
		or.Delete("/{id}", deleteOwnerHandler(svc))
	})
}

// createOwnerHandler godoc
// @Summary Registrar dueño de mascota
// @Tags pet-owners
// @Accept json
// @Produce json
// @Param body body CreateInput true "Datos del dueño"
// @Success 201 {object} clinic.PetOwner
// @Failure 400 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody "email ya registrado"
// @Router /pet-owners [post]
func createOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		o, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, o)
	}
}

// listOwnersHandler godoc
// @Summary Listar dueños (con mascotas, citas y facturas)
// @Tags pet-owners
// @Produce json
// @Success 200 {array} clinic.PetOwner
// @Router /pet-owners [get]
func listOwnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.FindAll(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

// getOwnerHandler godoc
// @Summary Obtener dueño
// @Tags pet-owners
// @Produce json
// @Param id path int true "Owner ID"
// @Success 200 {object} clinic.PetOwner
// @Failure 404 {object} httpx.ErrorBody
// @Router /pet-owners/{id} [get]
func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		o, err := svc.FindOne(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, o)
	}
}

// updateOwnerHandler godoc
// @Summary Actualizar dueño (PATCH parcial; password vacío no cambia el hash)
// @Tags pet-owners
// @Accept json
// @Produce json
// @Param id path int true "Owner ID"
// @Param body body UpdateInput true "Campos a modificar"
// @Success 200 {object} clinic.PetOwner
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody
// @Router /pet-owners/{id} [patch]
func updateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		var in UpdateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		o, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, o)
	}
}

// deleteOwnerHandler godoc
// @Summary Eliminar dueño
// @Tags pet-owners
// @Param id path int true "Owner ID"
// @Success 204
// @Failure 404 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody "tiene registros asociados"
// @Router /pet-owners/{id} [delete]
func deleteOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		if err := svc.Remove(r.Context(), id); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
