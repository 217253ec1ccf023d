// Package httpx concentra el JSON de entrada/salida de los handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"pet-clinic/internal/domain/clinic"
	"pet-clinic/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// ErrorBody es el formato único de error de la API.
type ErrorBody struct {
	StatusCode int               `json:"statusCode"`
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteStatus(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    msg,
	})
}

// WriteError traduce los errores de dominio a status HTTP.
// Lo que no se reconoce es 500 y sólo se loguea el detalle.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *clinic.ValidationError
		nf     *clinic.NotFoundError
		cf     *clinic.ConflictError
		unauth *clinic.UnauthorizedError
	)

	body := ErrorBody{Message: err.Error()}
	switch {
	case errors.As(err, &verr):
		body.StatusCode = http.StatusBadRequest
		body.Fields = verr.Fields
	case errors.As(err, &nf):
		body.StatusCode = http.StatusNotFound
	case errors.As(err, &cf):
		body.StatusCode = http.StatusConflict
	case errors.As(err, &unauth):
		body.StatusCode = http.StatusUnauthorized
	default:
		logger.FromContext(r.Context(), nil).Error("unhandled error", map[string]any{
			"error":  err,
			"method": r.Method,
			"path":   r.URL.Path,
		})
		body.StatusCode = http.StatusInternalServerError
		body.Message = "internal error"
	}
	body.Error = http.StatusText(body.StatusCode)
	WriteJSON(w, body.StatusCode, body)
}

// DecodeJSON lee el body en dst. Los campos desconocidos se ignoran.
// JSON roto o con tipos equivocados es *clinic.ValidationError.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return clinic.NewValidationError("body", "is required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))

	err := dec.Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return clinic.NewValidationError(field, "has an invalid type or format")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return clinic.NewValidationError("body", "is not valid JSON")
	case errors.Is(err, io.EOF):
		return clinic.NewValidationError("body", "is required")
	default:
		return clinic.NewValidationError("body", err.Error())
	}
}

// IDParam parsea un path param entero positivo.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, clinic.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}
