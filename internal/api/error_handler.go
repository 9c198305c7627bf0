package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/api/metrics"
	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/navigation"
)

// errorResponse is the canonical error envelope for all API errors. Rule
// names the failed input rule; Next suggests the screen to offer.
type errorResponse struct {
	Error string `json:"error"`
	Rule  string `json:"rule,omitempty"`
	Next  string `json:"next,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to status codes and the messages shown in dialogs.
//   - Logs unexpected errors internally without leaking details to the view.
//   - Renders a consistent JSON envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: ve.Message, Rule: ve.Rule}
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "Please sign up before logging in.", Next: navigation.RouteSignup}
	case errors.Is(err, domain.ErrBadPassword):
		return http.StatusUnauthorized, errorResponse{Error: "Incorrect password. Please try again."}
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, errorResponse{Error: "No registered user found.", Next: navigation.RouteEmployeeSignup}
	case errors.Is(err, domain.ErrInvalidEmployeeCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "Invalid username or password."}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "Please login to access services.", Next: navigation.RouteLogin}
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, errorResponse{Error: "permission denied"}
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusNotFound, errorResponse{Error: "booking not found"}
	case errors.Is(err, domain.ErrBookingAlreadyCancelled):
		return http.StatusConflict, errorResponse{Error: "booking already cancelled"}
	case errors.Is(err, domain.ErrTrackingNotFound),
		errors.Is(err, domain.ErrConversationNotFound),
		errors.Is(err, domain.ErrServiceNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	case errors.Is(err, navigation.ErrEmptyRoute):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	}

	var se *domain.StorageError
	if errors.As(err, &se) {
		metrics.StorageErrorsTotal.WithLabelValues(se.Op).Inc()
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("storage failure")
		return http.StatusServiceUnavailable, errorResponse{Error: "Something went wrong. Please try again."}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
