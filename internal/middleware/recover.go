package middleware

import (
	"net/http"
	"runtime/debug"

	"pet-clinic/internal/platform/httpx"
	"pet-clinic/internal/platform/logger"
)

// Recover reemplaza a chimw.Recoverer: loguea el panic con el logger del
// request y responde el mismo JSON de error que el resto de la API.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context(), nil).Error("panic recovered", map[string]any{
				"panic":  rec,
				"method": r.Method,
				"path":   r.URL.Path,
				"stack":  string(debug.Stack()),
			})
			httpx.WriteStatus(w, http.StatusInternalServerError, "internal error")
		}()

		next.ServeHTTP(w, r)
	})
}
