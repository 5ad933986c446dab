package transport

import (
	"net/http"

	"github.com/nsqlite/nsqlite-mcp/internal/util/httputil"
	"github.com/nsqlite/nsqlite-mcp/internal/version"
)

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) error {
	if err := s.conf.Gateway.Ping(r.Context()); err != nil {
		return httputil.NewJSONError(
			http.StatusServiceUnavailable, err, "Failed to reach the database",
		)
	}

	return httputil.WriteString(w, http.StatusOK, "OK")
}

func (s *Server) versionHandler(w http.ResponseWriter, r *http.Request) error {
	return httputil.WriteString(w, http.StatusOK, version.Version)
}
