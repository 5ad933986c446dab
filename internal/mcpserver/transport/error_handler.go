package transport

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/nsqlite/nsqlite-mcp/internal/log"
	"github.com/nsqlite/nsqlite-mcp/internal/util/httputil"
)

func (s *Server) errorHandler(
	w http.ResponseWriter, r *http.Request, err error,
) {
	ip := httputil.ReadUserIP(r)
	errorURL := r.URL.String()
	errorID := uuid.NewString()

	switch err := err.(type) {
	case httputil.JSONError:
		safeMessage := err.Message()

		s.conf.Logger.ErrorNs(
			log.NsServer, "error while handling request", log.KV{
				"id":      errorID,
				"status":  err.HTTPStatus,
				"error":   err.Error(),
				"message": safeMessage,
				"url":     errorURL,
				"ip":      ip,
			},
		)

		_ = httputil.WriteJSON(w, err.HTTPStatus, map[string]any{
			"id":      errorID,
			"error":   http.StatusText(err.HTTPStatus),
			"message": safeMessage,
		})
	default:
		s.conf.Logger.ErrorNs(
			log.NsServer, "unknown error while handling request", log.KV{
				"id":    errorID,
				"error": err.Error(),
				"url":   errorURL,
				"ip":    ip,
			},
		)
		_ = httputil.WriteString(
			w, http.StatusInternalServerError, "Internal Server Error - "+errorID,
		)
	}
}
