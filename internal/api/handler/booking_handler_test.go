package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/navigation"
)

func startTracking(t *testing.T, f *fixture, h *BookingHandler, body string) domain.TrackingSession {
	t.Helper()
	rec, err := f.call(h.StartTracking, http.MethodPost, "/trackings", body)
	if err != nil {
		t.Fatalf("StartTracking: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeScreen(t, rec)
	var sess domain.TrackingSession
	if err := json.Unmarshal(resp.Data, &sess); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if resp.Screen.Route != navigation.RouteTracking || resp.Screen.Params["trackingId"] != sess.ID {
		t.Fatalf("unexpected screen: %+v", resp.Screen)
	}
	return sess
}

func TestBookingHandler_StartTracking(t *testing.T) {
	f := newFixture(t, navigation.RouteHome)
	h := NewBookingHandler(f.bookings, f.home, f.nav)

	sess := startTracking(t, f, h, `{"serviceId":"6","providerId":2}`)
	if sess.ServiceName != "Plumber" || sess.Provider == nil || sess.Provider.Name != "Emma Smith" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if len(sess.OTP) != 6 || sess.Status != domain.TrackingConfirmed {
		t.Fatalf("unexpected otp or status: %+v", sess)
	}
}

func TestBookingHandler_StartTrackingRejectsBadInput(t *testing.T) {
	f := newFixture(t, navigation.RouteHome)
	h := NewBookingHandler(f.bookings, f.home, f.nav)

	_, err := f.call(h.StartTracking, http.MethodPost, "/trackings", `{"providerId":1}`)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}

	_, err = f.call(h.StartTracking, http.MethodPost, "/trackings", `{"serviceId":"99"}`)
	if !errors.Is(err, domain.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestBookingHandler_ReopeningTrackingStopsPreviousSession(t *testing.T) {
	f := newFixture(t, navigation.RouteHome)
	h := NewBookingHandler(f.bookings, f.home, f.nav)

	first := startTracking(t, f, h, `{"serviceId":"5"}`)
	second := startTracking(t, f, h, `{"serviceId":"6"}`)

	if _, err := f.bookings.Tracking(first.ID); !errors.Is(err, domain.ErrTrackingNotFound) {
		t.Fatalf("expected first session to be stopped, got %v", err)
	}
	if _, err := f.bookings.Tracking(second.ID); err != nil {
		t.Fatalf("second session must stay active: %v", err)
	}
}

func TestBookingHandler_ConfirmListCancel(t *testing.T) {
	f := newFixture(t, navigation.RouteHome)
	h := NewBookingHandler(f.bookings, f.home, f.nav)

	sess := startTracking(t, f, h, `{"serviceId":"6"}`)
	rec, err := f.call(h.Confirm, http.MethodPost, "/trackings/"+sess.ID+"/confirm", "", "id", sess.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if resp := decodeScreen(t, rec); resp.Screen.Route != navigation.RouteMyBookings {
		t.Fatalf("expected MyBookings, got %s", resp.Screen.Route)
	}

	rec, err = f.call(h.List, http.MethodGet, "/bookings", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var list []bookingView
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(list) != 1 || list[0].Index != 0 || list[0].ServiceName != "Plumber" || list[0].OTP != sess.OTP {
		t.Fatalf("unexpected list: %+v", list)
	}

	rec, err = f.call(h.Cancel, http.MethodDelete, "/bookings/0", "", "index", "0")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if rec.Body.String() != "[]\n" {
		t.Fatalf("expected empty list, got %q", rec.Body.String())
	}

	if _, err := f.call(h.Cancel, http.MethodDelete, "/bookings/0", "", "index", "0"); !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestBookingHandler_CancelInvalidIndex(t *testing.T) {
	f := newFixture(t, navigation.RouteMyBookings)
	h := NewBookingHandler(f.bookings, f.home, f.nav)

	_, err := f.call(h.Cancel, http.MethodDelete, "/bookings/abc", "", "index", "abc")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
