package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/homeservices/booking-app/internal/api/metrics"
	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/navigation"
	"github.com/homeservices/booking-app/internal/core/ports"
)

// BookingHandler serves the tracking and my bookings screens.
type BookingHandler struct {
	bookings ports.BookingService
	home     ports.HomeService
	nav      *Navigator
}

func NewBookingHandler(bookings ports.BookingService, home ports.HomeService, nav *Navigator) *BookingHandler {
	return &BookingHandler{bookings: bookings, home: home, nav: nav}
}

// StartTracking opens the tracking screen for a service and provider.
func (h *BookingHandler) StartTracking(c echo.Context) error {
	var req startTrackingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	svc, ok := h.home.Service(req.ServiceID)
	if !ok {
		return domain.ErrServiceNotFound
	}
	in := ports.StartTrackingInput{ServiceName: svc.Name}
	if req.ProviderID > 0 {
		providers, err := h.home.Providers(svc.ID)
		if err != nil {
			return err
		}
		for i := range providers {
			if providers[i].ID == req.ProviderID {
				in.Provider = &providers[i]
				break
			}
		}
	}

	sess, err := h.bookings.StartTracking(c.Request().Context(), in)
	if err != nil {
		return err
	}
	metrics.ActiveTrackings.Inc()

	entry, err := h.nav.Go(navigation.RouteTracking, navigation.Params{
		"trackingId":  sess.ID,
		"serviceName": sess.ServiceName,
	})
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusCreated, entry, sess)
}

func (h *BookingHandler) Tracking(c echo.Context) error {
	sess, err := h.bookings.Tracking(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

// Confirm stores the booking and shows the bookings list.
func (h *BookingHandler) Confirm(c echo.Context) error {
	rec, err := h.bookings.ConfirmBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.BookingsTotal.WithLabelValues("confirmed").Inc()

	entry, err := h.nav.Go(navigation.RouteMyBookings, nil)
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusCreated, entry, rec)
}

func (h *BookingHandler) List(c echo.Context) error {
	list, err := h.bookings.ListBookings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingViews(list))
}

// Cancel cancels the booking at the list position given in the path.
func (h *BookingHandler) Cancel(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking index")
	}
	list, err := h.bookings.CancelBooking(c.Request().Context(), index)
	if err != nil {
		return err
	}
	metrics.BookingsTotal.WithLabelValues("cancelled").Inc()
	return c.JSON(http.StatusOK, bookingViews(list))
}

func bookingViews(list []domain.BookingRecord) []bookingView {
	out := make([]bookingView, len(list))
	for i, rec := range list {
		out[i] = bookingView{Index: i, BookingRecord: rec}
	}
	return out
}
