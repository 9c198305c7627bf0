package ports

import (
	"context"

	"github.com/homeservices/booking-app/internal/core/domain"
)

// StartTrackingInput identifies the service (and optionally the provider)
// a tracking screen is opened for.
type StartTrackingInput struct {
	ServiceName string
	Provider    *domain.Provider
}

// BookingService drives tracking screens and the stored bookings list.
type BookingService interface {
	StartTracking(ctx context.Context, in StartTrackingInput) (domain.TrackingSession, error)
	Tracking(id string) (domain.TrackingSession, error)
	// StopTracking tears the tracking screen down and cancels its timer.
	StopTracking(id string) error
	ConfirmBooking(ctx context.Context, trackingID string) (domain.BookingRecord, error)
	ListBookings(ctx context.Context) ([]domain.BookingRecord, error)
	// CancelBooking returns the list as persisted after the cancellation.
	CancelBooking(ctx context.Context, index int) ([]domain.BookingRecord, error)
}
