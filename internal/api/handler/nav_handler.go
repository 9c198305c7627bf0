package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// NavHandler exposes the back button and the side menu.
type NavHandler struct {
	nav *Navigator
}

func NewNavHandler(nav *Navigator) *NavHandler {
	return &NavHandler{nav: nav}
}

// Back pops the top screen. On the root screen it reports the current entry
// unchanged with 409.
func (h *NavHandler) Back(c echo.Context) error {
	entry, ok := h.nav.Back()
	if !ok {
		return h.nav.respond(c, http.StatusConflict, entry, nil)
	}
	return h.nav.respond(c, http.StatusOK, entry, nil)
}

func (h *NavHandler) Navigate(c echo.Context) error {
	var req navigateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	entry, err := h.nav.Go(req.Route, nil)
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusOK, entry, nil)
}
