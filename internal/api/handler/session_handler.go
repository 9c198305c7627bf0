package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeservices/booking-app/internal/api/metrics"
	"github.com/homeservices/booking-app/internal/core/navigation"
	"github.com/homeservices/booking-app/internal/core/ports"
)

type SessionHandler struct {
	session ports.SessionService
	nav     *Navigator
}

func NewSessionHandler(session ports.SessionService, nav *Navigator) *SessionHandler {
	return &SessionHandler{session: session, nav: nav}
}

// Current reports the stored session and the screen on top of the stack.
func (h *SessionHandler) Current(c echo.Context) error {
	sess := h.session.CheckSession(c.Request().Context())
	return h.nav.respond(c, http.StatusOK, h.nav.Current(), sessionResponse{
		Authenticated: sess.Authenticated,
		Username:      sess.Username,
	})
}

// Continue leaves the start screen for the login form.
func (h *SessionHandler) Continue(c echo.Context) error {
	entry, err := h.nav.Go(navigation.RouteLogin, nil)
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusOK, entry, nil)
}

// Login checks the credentials and replaces the login screen with Home.
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sess, err := h.session.Login(c.Request().Context(), req.Username, req.Password)
	metrics.AuthAttemptsTotal.WithLabelValues("customer", "login", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	entry, err := h.nav.Replace(navigation.RouteHome, navigation.Params{"username": sess.Username})
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusOK, entry, sessionResponse{Authenticated: true, Username: sess.Username})
}

func (h *SessionHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sess, err := h.session.Signup(c.Request().Context(), ports.SignupInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	metrics.AuthAttemptsTotal.WithLabelValues("customer", "signup", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	entry, err := h.nav.Replace(navigation.RouteHome, navigation.Params{"username": sess.Username})
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusCreated, entry, sessionResponse{Authenticated: true, Username: sess.Username})
}

// Logout clears the session token and starts over at the login screen.
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.session.Logout(c.Request().Context()); err != nil {
		return err
	}
	entry, err := h.nav.Reset(navigation.RouteLogin, nil)
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusOK, entry, sessionResponse{})
}
