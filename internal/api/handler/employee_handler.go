package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeservices/booking-app/internal/api/metrics"
	"github.com/homeservices/booking-app/internal/core/navigation"
	"github.com/homeservices/booking-app/internal/core/ports"
)

type EmployeeHandler struct {
	employees ports.EmployeeService
	nav       *Navigator
}

func NewEmployeeHandler(employees ports.EmployeeService, nav *Navigator) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, nav: nav}
}

// Open shows the employee login, or the dashboard directly when an
// employee is already logged in.
func (h *EmployeeHandler) Open(c echo.Context) error {
	route := navigation.RouteEmployeeLogin
	var params navigation.Params
	if sess := h.employees.CheckSession(c.Request().Context()); sess.Authenticated {
		route = navigation.RouteEmployeeDashboard
		params = navigation.Params{"username": sess.Username}
	}
	entry, err := h.nav.Go(route, params)
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusOK, entry, nil)
}

// Signup stores the employee and moves on to the employee login.
func (h *EmployeeHandler) Signup(c echo.Context) error {
	var req employeeSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	acct, err := h.employees.Signup(c.Request().Context(), ports.EmployeeSignupInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Profession:      req.Profession,
		Address:         req.Address,
	})
	metrics.AuthAttemptsTotal.WithLabelValues("employee", "signup", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	entry, err := h.nav.Go(navigation.RouteEmployeeLogin, nil)
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusCreated, entry, employeeResponse{
		Username:   acct.Username,
		Email:      acct.Email,
		Profession: acct.Profession,
		Address:    acct.Address,
	})
}

func (h *EmployeeHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sess, err := h.employees.Login(c.Request().Context(), req.Username, req.Password)
	metrics.AuthAttemptsTotal.WithLabelValues("employee", "login", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	entry, err := h.nav.Replace(navigation.RouteEmployeeDashboard, navigation.Params{"username": sess.Username})
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusOK, entry, employeeResponse{Username: sess.Username})
}

func (h *EmployeeHandler) Dashboard(c echo.Context) error {
	tok, err := h.employees.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employeeResponse{Username: tok.Username})
}

func (h *EmployeeHandler) Logout(c echo.Context) error {
	if err := h.employees.Logout(c.Request().Context()); err != nil {
		return err
	}
	entry, err := h.nav.Replace(navigation.RouteEmployeeLogin, nil)
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusOK, entry, nil)
}
