package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/homeservices/booking-app/internal/core/domain"
)

func newHomeService(loc *stubLocation, clock *fakeClock) *HomeService {
	return NewHomeService(loc, clock, HomeConfig{CarouselInterval: 2 * time.Second}, discardLogger)
}

func TestHomeService_ServicesSearch(t *testing.T) {
	svc := newHomeService(&stubLocation{}, newFakeClock())

	if got := svc.Services(""); len(got) != 12 {
		t.Fatalf("expected 12 services, got %d", len(got))
	}

	cases := []struct {
		query string
		want  []string
	}{
		{"plum", []string{"Plumber"}},
		{"HOME", []string{"Home Maids", "Home Shifters"}},
		{"  clinic ", []string{"Clinics"}},
		{"xyz", nil},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			got := svc.Services(tc.query)
			if len(got) != len(tc.want) {
				t.Fatalf("query %q: got %d results, want %d", tc.query, len(got), len(tc.want))
			}
			for i, name := range tc.want {
				if got[i].Name != name {
					t.Fatalf("query %q: result %d is %s, want %s", tc.query, i, got[i].Name, name)
				}
			}
		})
	}
}

func TestHomeService_Providers(t *testing.T) {
	svc := newHomeService(&stubLocation{}, newFakeClock())

	list, err := svc.Providers("6")
	if err != nil {
		t.Fatalf("Providers: %v", err)
	}
	if len(list) != 6 || list[0].Name != "John Doe" || list[3].Rating != 4.9 {
		t.Fatalf("unexpected providers: %+v", list)
	}
	if domain.CallURI(list[0].Phone) != "tel:1234567890" {
		t.Fatalf("unexpected call uri")
	}

	if _, err := svc.Providers("99"); !errors.Is(err, domain.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestHomeService_Location(t *testing.T) {
	cases := []struct {
		name string
		loc  *stubLocation
		want string
	}{
		{"resolved", &stubLocation{place: domain.Place{City: "Austin", Region: "TX", Country: "USA"}, found: true}, "Austin, TX, USA"},
		{"denied", &stubLocation{err: domain.ErrPermissionDenied}, "Location permission denied"},
		{"no geocode", &stubLocation{found: false}, "Location not found"},
		{"device failure", &stubLocation{err: errDiskFull}, "Location not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newHomeService(tc.loc, newFakeClock())
			if got := svc.Location(context.Background()); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHomeService_CarouselWrapsAndStops(t *testing.T) {
	clock := newFakeClock()
	svc := newHomeService(&stubLocation{}, clock)

	svc.OpenHome()
	if svc.BannerIndex() != 0 {
		t.Fatalf("expected first banner")
	}
	for i := 1; i <= BannerCount; i++ {
		clock.Advance(2 * time.Second)
		if got, want := svc.BannerIndex(), i%BannerCount; got != want {
			t.Fatalf("tick %d: index %d, want %d", i, got, want)
		}
	}

	svc.CloseHome()
	if clock.pending() != 0 {
		t.Fatalf("carousel timer must be cancelled on close")
	}
	idx := svc.BannerIndex()
	clock.Advance(10 * time.Second)
	if svc.BannerIndex() != idx {
		t.Fatalf("carousel advanced after close")
	}
}

func TestHomeService_StaleTickAfterReopenIgnored(t *testing.T) {
	clock := newFakeClock()
	svc := newHomeService(&stubLocation{}, clock)

	svc.OpenHome()
	clock.mu.Lock()
	staleTick := clock.timers[0].f
	clock.mu.Unlock()

	// the first tick fired but lost the race for the lock to a close and reopen
	svc.CloseHome()
	svc.OpenHome()
	staleTick()

	if svc.BannerIndex() != 0 {
		t.Fatalf("stale tick must not advance the carousel, index %d", svc.BannerIndex())
	}
	if got := clock.pending(); got != 1 {
		t.Fatalf("expected a single running carousel timer, got %d", got)
	}

	clock.Advance(2 * time.Second)
	if svc.BannerIndex() != 1 {
		t.Fatalf("expected one step per interval, index %d", svc.BannerIndex())
	}
}
