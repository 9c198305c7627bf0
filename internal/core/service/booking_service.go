package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/ports"
	"github.com/homeservices/booking-app/internal/core/store"
)

const defaultTrackingInterval = 5 * time.Second

// BookingConfig tunes the booking lifecycle.
type BookingConfig struct {
	TrackingInterval time.Duration
	CancelMode       domain.CancelMode
}

// BookingService runs tracking screens and maintains the stored bookings list.
type BookingService struct {
	store  *store.Adapter
	serial ports.KeySerializer
	clock  ports.Clock
	cfg    BookingConfig
	otp    func() (string, error)
	log    zerolog.Logger

	mu       sync.Mutex
	trackers map[string]*tracker
}

func NewBookingService(
	kv ports.KVStore,
	serial ports.KeySerializer,
	clock ports.Clock,
	cfg BookingConfig,
	log zerolog.Logger,
) *BookingService {
	if cfg.TrackingInterval <= 0 {
		cfg.TrackingInterval = defaultTrackingInterval
	}
	if cfg.CancelMode == "" {
		cfg.CancelMode = domain.CancelRemove
	}
	return &BookingService{
		store:    store.NewAdapter(kv),
		serial:   serial,
		clock:    clock,
		cfg:      cfg,
		otp:      generateOTP,
		log:      log,
		trackers: make(map[string]*tracker),
	}
}

// StartTracking opens a tracking screen with a fresh one-time code and
// starts the status simulation.
func (s *BookingService) StartTracking(_ context.Context, in ports.StartTrackingInput) (domain.TrackingSession, error) {
	if strings.TrimSpace(in.ServiceName) == "" {
		return domain.TrackingSession{}, domain.NewValidationError(RuleRequired, "service name is required")
	}
	code, err := s.otp()
	if err != nil {
		return domain.TrackingSession{}, err
	}

	session := domain.TrackingSession{
		ID:          uuid.NewString(),
		ServiceName: in.ServiceName,
		Provider:    in.Provider,
		OTP:         code,
		Status:      domain.TrackingConfirmed,
		StartedAt:   s.clock.Now(),
	}
	t := newTracker(session, s.clock, s.cfg.TrackingInterval)

	s.mu.Lock()
	s.trackers[session.ID] = t
	s.mu.Unlock()
	t.start()

	s.log.Debug().Str("tracking_id", session.ID).Str("service", session.ServiceName).Msg("tracking started")
	return session, nil
}

func (s *BookingService) Tracking(id string) (domain.TrackingSession, error) {
	t, err := s.tracker(id)
	if err != nil {
		return domain.TrackingSession{}, err
	}
	return t.snapshot(), nil
}

func (s *BookingService) StopTracking(id string) error {
	s.mu.Lock()
	t, ok := s.trackers[id]
	delete(s.trackers, id)
	s.mu.Unlock()
	if !ok {
		return domain.ErrTrackingNotFound
	}
	t.stop()
	s.log.Debug().Str("tracking_id", id).Msg("tracking stopped")
	return nil
}

// ActiveTrackings counts open tracking screens.
func (s *BookingService) ActiveTrackings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trackers)
}

// ConfirmBooking appends a Confirmed record for the tracked service. The
// record is only returned once the updated list has been written.
func (s *BookingService) ConfirmBooking(ctx context.Context, trackingID string) (domain.BookingRecord, error) {
	t, err := s.tracker(trackingID)
	if err != nil {
		return domain.BookingRecord{}, err
	}
	snap := t.snapshot()
	rec := domain.BookingRecord{
		ServiceName: snap.ServiceName,
		Date:        s.clock.Now().Format(domain.BookingDateLayout),
		OTP:         snap.OTP,
		Status:      domain.BookingConfirmed,
	}

	err = s.serial.Do(ctx, store.KeyBookings, func(ctx context.Context) error {
		list, err := s.loadBookings(ctx)
		if err != nil {
			return err
		}
		return s.store.SetJSON(ctx, store.KeyBookings, append(list, rec))
	})
	if err != nil {
		s.log.Error().Err(err).Str("tracking_id", trackingID).Msg("confirm booking failed")
		return domain.BookingRecord{}, fmt.Errorf("confirm booking: %w", err)
	}

	s.log.Info().Str("service", rec.ServiceName).Str("date", rec.Date).Msg("booking confirmed")
	return rec, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.BookingRecord, error) {
	list, err := s.loadBookings(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("load bookings failed")
		return nil, err
	}
	return list, nil
}

// CancelBooking removes the record at index, or marks it Cancelled when the
// service retains history.
func (s *BookingService) CancelBooking(ctx context.Context, index int) ([]domain.BookingRecord, error) {
	var updated []domain.BookingRecord
	err := s.serial.Do(ctx, store.KeyBookings, func(ctx context.Context) error {
		list, err := s.loadBookings(ctx)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(list) {
			return fmt.Errorf("%w: %d of %d", domain.ErrIndexOutOfRange, index, len(list))
		}

		switch s.cfg.CancelMode {
		case domain.CancelRetain:
			if list[index].Status == domain.BookingCancelled {
				return domain.ErrBookingAlreadyCancelled
			}
			next := make([]domain.BookingRecord, len(list))
			copy(next, list)
			next[index].Status = domain.BookingCancelled
			updated = next
		default:
			next := make([]domain.BookingRecord, 0, len(list)-1)
			next = append(next, list[:index]...)
			updated = append(next, list[index+1:]...)
		}
		return s.store.SetJSON(ctx, store.KeyBookings, updated)
	})
	if err != nil {
		s.log.Warn().Err(err).Int("index", index).Msg("cancel booking failed")
		return nil, err
	}

	s.log.Info().Int("index", index).Str("mode", string(s.cfg.CancelMode)).Msg("booking cancelled")
	return updated, nil
}

func (s *BookingService) tracker(id string) (*tracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trackers[id]
	if !ok {
		return nil, domain.ErrTrackingNotFound
	}
	return t, nil
}

// loadBookings returns the stored list, or an empty one when none exists.
func (s *BookingService) loadBookings(ctx context.Context) ([]domain.BookingRecord, error) {
	list := []domain.BookingRecord{}
	if _, err := s.store.GetJSON(ctx, store.KeyBookings, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.BookingRecord{}
	}
	return list, nil
}
