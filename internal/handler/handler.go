package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	// maxbytes bounds a string's length in bytes rather than runes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= limit
	})
	return v
}

// responder is embedded by every handler and writes the shared response shapes.
type responder struct {
	logger zerolog.Logger
	// exposeErrors adds the underlying error text to 500 responses.
	exposeErrors bool
}

func newResponder(name string, exposeErrors bool, logger zerolog.Logger) responder {
	return responder{
		logger:       logger.With().Str("handler", name).Logger(),
		exposeErrors: exposeErrors,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent
		return
	}
}

// writeMessage writes a {message} body.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.MessageResponse{Message: message})
}

// statusFor maps a domain error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeConflict, model.ErrCodeOutOfStock,
		model.ErrCodeCartEmpty, model.ErrCodeAlreadyPaid, model.ErrCodeInvalidTransition:
		return http.StatusBadRequest
	case model.ErrCodeUnauthenticated, model.ErrCodeTokenInvalid,
		model.ErrCodeTokenRevoked, model.ErrCodeInvalidCredential:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err. Domain errors carry their own message; anything else
// becomes a 500 with fallback as the message.
func (h responder) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := statusFor(domainErr.Code)
		h.logger.Debug().
			Str("code", domainErr.Code).
			Int("status", status).
			Str("path", r.URL.Path).
			Msg(domainErr.Message)
		writeJSON(w, status, model.ErrorResponse{Message: domainErr.Message})
		return
	}

	h.logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg(fallback)

	resp := model.ErrorResponse{Message: fallback}
	if h.exposeErrors {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

// decode reads a JSON body into dst and validates it. On failure it writes the
// response and returns false. A non-empty missing replaces the message for
// absent required fields.
func (h responder) decode(w http.ResponseWriter, r *http.Request, dst interface{}, missing string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	// An empty body decodes as an empty object and is left to validation.
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("invalid request body")
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, validationMessage(err, missing))
		return false
	}
	return true
}

// validationMessage describes the first failed rule.
func validationMessage(err error, missing string) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return "Invalid request"
	}

	vErr := vErrs[0]
	switch vErr.Tag() {
	case "required":
		if missing != "" {
			return missing
		}
		return vErr.Field() + " is required"
	case "email":
		return vErr.Field() + " must be a valid email"
	case "url":
		return vErr.Field() + " must be a valid URL"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", vErr.Field(), vErr.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", vErr.Field(), vErr.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", vErr.Field(), vErr.Param())
	default:
		return vErr.Field() + " is invalid"
	}
}

// pathID parses the named path segment as a UUID, returning invalid otherwise.
func pathID(r *http.Request, name string, invalid error) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, invalid
	}
	return id, nil
}

// bodyID parses a UUID taken from a request body.
func bodyID(raw string, invalid error) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, invalid
	}
	return id, nil
}

// principal returns the caller set by the authentication middleware.
func principal(r *http.Request) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		return auth.Principal{}, model.ErrUnauthenticated
	}
	return p, nil
}
