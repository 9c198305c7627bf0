package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/ports"
	"github.com/homeservices/booking-app/internal/infrastructure/device"
)

type ProfileHandler struct {
	profile ports.ProfileService
}

func NewProfileHandler(profile ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

func (h *ProfileHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, profileView(h.profile.Load(c.Request().Context())))
}

// Update merges the submitted fields and persists the result right away.
func (h *ProfileHandler) Update(c echo.Context) error {
	var patch domain.ProfilePatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	p, err := h.profile.Update(c.Request().Context(), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileView(p))
}

func (h *ProfileHandler) Picture(c echo.Context) error {
	var req pictureRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if req.URI != "" {
		ctx = device.WithMediaAsset(ctx, ports.MediaAsset{URI: req.URI, Kind: ports.MediaImage})
	}
	p, err := h.profile.PickPicture(ctx, req.FromCamera)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileView(p))
}

func profileView(p domain.Profile) profileResponse {
	return profileResponse{Profile: p, Completion: p.Completion()}
}
