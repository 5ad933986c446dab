package httputil

import "net/http"

// HandlerFuncErr behaves like http.HandlerFunc but returns an error.
type HandlerFuncErr func(w http.ResponseWriter, r *http.Request) error

// Middleware wraps a HandlerFuncErr and returns a new one.
type Middleware func(next HandlerFuncErr) HandlerFuncErr

// ErrorHandler handles errors returned by handlers or middlewares.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// HandlerFuncBuilder turns a handler and its middlewares into an
// http.HandlerFunc.
type HandlerFuncBuilder func(handler HandlerFuncErr, middlewares ...Middleware) http.HandlerFunc

// CreateHandlerFuncBuilder returns a HandlerFuncBuilder that reports every
// returned error to errorHandler. Middlewares run in the order given, the
// first one being the outermost.
func CreateHandlerFuncBuilder(errorHandler ErrorHandler) HandlerFuncBuilder {
	return func(handler HandlerFuncErr, middlewares ...Middleware) http.HandlerFunc {
		chained := handler
		for i := len(middlewares) - 1; i >= 0; i-- {
			chained = middlewares[i](chained)
		}

		return func(w http.ResponseWriter, r *http.Request) {
			if err := chained(w, r); err != nil {
				errorHandler(w, r, err)
			}
		}
	}
}
