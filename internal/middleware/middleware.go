package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/rs/zerolog"
)

// Authenticator resolves bearer tokens and admin rights.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
	Authorize(ctx context.Context, userID uuid.UUID) error
}

// CORS allows the storefront front end at origin to call the API with credentials.
func CORS(origin string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins([]string{origin}),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)
}

// Authenticate binds the principal of the bearer token to the request context.
func Authenticate(authenticator Authenticator, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)

			p, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				reject(w, r, err, logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAdmin lets the request through only when the authenticated user is
// currently an admin. It must run after Authenticate.
func RequireAdmin(authenticator Authenticator, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				reject(w, r, model.ErrUnauthenticated, logger)
				return
			}

			if err := authenticator.Authorize(r.Context(), p.UserID); err != nil {
				reject(w, r, err, logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken returns the Authorization header without its "Bearer " prefix.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func reject(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("authentication check failed")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Message: "Server error"})
		return
	}

	status := http.StatusUnauthorized
	if domainErr.Code == model.ErrCodeForbidden {
		status = http.StatusForbidden
	}

	logger.Warn().
		Str("code", domainErr.Code).
		Str("path", r.URL.Path).
		Str("remote_addr", r.RemoteAddr).
		Msg("request rejected")
	writeJSON(w, status, model.ErrorResponse{Message: domainErr.Message})
}

// Logging logs HTTP requests with timing information.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a response writer wrapper to capture status code
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			event := logger.Info()
			if rw.statusCode >= http.StatusInternalServerError {
				event = logger.Error()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		})
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("panic", err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Message: "Something went wrong!"})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code.
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
