package appointments

import (
	"net/http"

	"pet-clinic/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Patch("/{appointmentID}", updateAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))
	})
}

// createAppointmentHandler godoc
// @Summary Agendar cita
// @Description status por defecto Pending. pet_id, service_id y staff_id deben existir.
// @Tags appointments
// @Accept json
// @Produce json
// @Param body body CreateInput true "Cita"
// @Success 201 {object} clinic.Appointment
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody "referencia inexistente"
// @Router /appointments [post]
func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		a, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, a)
	}
}

// listAppointmentsHandler godoc
// @Summary Listar citas
// @Tags appointments
// @Produce json
// @Success 200 {array} clinic.Appointment
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.FindAll(r.Context())
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	}
}

// getAppointmentHandler godoc
// @Summary Obtener cita
// @Tags appointments
// @Produce json
// @Param appointmentID path int true "Appointment ID"
// @Success 200 {object} clinic.Appointment
// @Failure 404 {object} httpx.ErrorBody
// @Router /appointments/{appointmentID} [get]
func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "appointmentID")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		a, err := svc.FindOne(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, a)
	}
}

// updateAppointmentHandler godoc
// @Summary Actualizar cita (incluye cambios de status)
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path int true "Appointment ID"
// @Param body body UpdateInput true "Campos a modificar"
// @Success 200 {object} clinic.Appointment
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Router /appointments/{appointmentID} [patch]
func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "appointmentID")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		var in UpdateInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		a, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, a)
	}
}

// deleteAppointmentHandler godoc
// @Summary Eliminar cita (la historia clínica asociada se elimina también)
// @Tags appointments
// @Param appointmentID path int true "Appointment ID"
// @Success 204
// @Failure 404 {object} httpx.ErrorBody
// @Failure 409 {object} httpx.ErrorBody "cita facturada"
// @Router /appointments/{appointmentID} [delete]
func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "appointmentID")
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
