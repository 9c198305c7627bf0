package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/ports"
)

const (
	defaultCarouselInterval = 2 * time.Second
	// BannerCount is the number of images on the home carousel.
	BannerCount = 5
)

var catalog = []domain.Service{
	{ID: "1", Name: "Clinics", Icon: "medkit"},
	{ID: "2", Name: "Physiotherapist", Icon: "medical"},
	{ID: "3", Name: "Care Taker", Icon: "heart"},
	{ID: "4", Name: "Home Maids", Icon: "home"},
	{ID: "5", Name: "Electrician", Icon: "flash"},
	{ID: "6", Name: "Plumber", Icon: "water"},
	{ID: "7", Name: "Home Shifters", Icon: "car"},
	{ID: "8", Name: "Painting", Icon: "color-palette"},
	{ID: "9", Name: "Saloons", Icon: "cut"},
	{ID: "10", Name: "Pest Control", Icon: "bug"},
	{ID: "11", Name: "Mechanic", Icon: "construct"},
	{ID: "12", Name: "Bike Rental", Icon: "bicycle"},
}

var providers = []domain.Provider{
	{ID: 1, Name: "John Doe", Rating: 4.8, Address: "New York, NY", Phone: "1234567890"},
	{ID: 2, Name: "Emma Smith", Rating: 4.7, Address: "Los Angeles, CA", Phone: "9876543210"},
	{ID: 3, Name: "Michael Johnson", Rating: 4.6, Address: "Hyderabad", Phone: "5556667777"},
	{ID: 4, Name: "Sophia Brown", Rating: 4.9, Address: "Houston, TX", Phone: "2223334444"},
	{ID: 5, Name: "William Davis", Rating: 4.5, Address: "Phoenix, AZ", Phone: "6667778888"},
	{ID: 6, Name: "Olivia Wilson", Rating: 4.7, Address: "Philadelphia, PA", Phone: "9990001111"},
}

// HomeConfig tunes the home screen.
type HomeConfig struct {
	CarouselInterval time.Duration
}

// HomeService serves the catalog, the provider lists and the home screen
// banner carousel.
type HomeService struct {
	location ports.LocationProvider
	clock    ports.Clock
	interval time.Duration
	log      zerolog.Logger

	mu     sync.Mutex
	index  int
	timer  ports.Timer
	active bool
	gen    uint64 // bumped on every open; stale ticks carry an older value
}

func NewHomeService(location ports.LocationProvider, clock ports.Clock, cfg HomeConfig, log zerolog.Logger) *HomeService {
	if cfg.CarouselInterval <= 0 {
		cfg.CarouselInterval = defaultCarouselInterval
	}
	return &HomeService{
		location: location,
		clock:    clock,
		interval: cfg.CarouselInterval,
		log:      log,
	}
}

// Services filters the catalog by a case-insensitive name substring. An
// empty query returns every service.
func (s *HomeService) Services(query string) []domain.Service {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Service, 0, len(catalog))
	for _, svc := range catalog {
		if q == "" || strings.Contains(strings.ToLower(svc.Name), q) {
			out = append(out, svc)
		}
	}
	return out
}

func (s *HomeService) Service(id string) (domain.Service, bool) {
	for _, svc := range catalog {
		if svc.ID == id {
			return svc, true
		}
	}
	return domain.Service{}, false
}

// Providers lists the professionals offering a service.
func (s *HomeService) Providers(serviceID string) ([]domain.Provider, error) {
	if _, ok := s.Service(serviceID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrServiceNotFound, serviceID)
	}
	out := make([]domain.Provider, len(providers))
	copy(out, providers)
	return out, nil
}

// Location renders the device position for the home header.
func (s *HomeService) Location(ctx context.Context) string {
	place, found, err := s.location.CurrentPlace(ctx)
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		return domain.LocationDenied
	case err != nil:
		s.log.Warn().Err(err).Msg("resolve location failed")
		return domain.LocationUnknown
	case !found:
		return domain.LocationUnknown
	}
	return fmt.Sprintf("%s, %s, %s", place.City, place.Region, place.Country)
}

// OpenHome starts the carousel from the first banner. Opening an already
// open home screen keeps the running carousel.
func (s *HomeService) OpenHome() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.index = 0
	s.gen++
	s.scheduleLocked(s.gen)
}

func (s *HomeService) CloseHome() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *HomeService) BannerIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *HomeService) scheduleLocked(gen uint64) {
	s.timer = s.clock.AfterFunc(s.interval, func() { s.advance(gen) })
}

// advance moves to the next banner. A tick from an earlier opening of the
// home screen is dropped.
func (s *HomeService) advance(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active || gen != s.gen {
		return
	}
	s.index = (s.index + 1) % BannerCount
	s.scheduleLocked(gen)
}
