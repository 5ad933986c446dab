package transport

import (
	"errors"
	"net/http"
	"strings"

	"github.com/nsqlite/nsqlite-mcp/internal/util/cryptoutil"
	"github.com/nsqlite/nsqlite-mcp/internal/util/httputil"
)

// authMiddleware checks the bearer token of the incoming request against
// the configured AuthToken. If the AuthToken is empty, the middleware does
// nothing.
func (s *Server) authMiddleware(
	next httputil.HandlerFuncErr,
) httputil.HandlerFuncErr {
	return func(w http.ResponseWriter, r *http.Request) error {
		if s.conf.AuthToken == "" {
			return next(w, r)
		}

		clientAuthToken := r.Header.Get("Authorization")
		clientAuthToken = strings.TrimPrefix(clientAuthToken, "Bearer ")
		clientAuthToken = strings.TrimPrefix(clientAuthToken, "bearer ")
		if clientAuthToken != "" && s.checkAuth(clientAuthToken) {
			return next(w, r)
		}

		return httputil.NewJSONError(
			http.StatusUnauthorized, errors.New("invalid or missing auth token"), "Unauthorized",
		)
	}
}

func (s *Server) checkAuth(clientToken string) bool {
	return cryptoutil.CompareToken(s.conf.AuthTokenAlgorithm, clientToken, s.conf.AuthToken)
}
