package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/ports"
)

const (
	otpMin  = 100000
	otpSpan = 900000
)

// generateOTP returns a uniformly random code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

// tracker advances one tracking screen through the status sequence, one
// step per interval, until the terminal status.
type tracker struct {
	mu       sync.Mutex
	session  domain.TrackingSession
	clock    ports.Clock
	interval time.Duration
	timer    ports.Timer
	stopped  bool
}

func newTracker(session domain.TrackingSession, clock ports.Clock, interval time.Duration) *tracker {
	return &tracker{session: session, clock: clock, interval: interval}
}

func (t *tracker) start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.session.Status.IsTerminal() {
		t.schedule()
	}
}

// schedule must be called with mu held.
func (t *tracker) schedule() {
	t.timer = t.clock.AfterFunc(t.interval, t.tick)
}

func (t *tracker) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	next, ok := t.session.Status.Next()
	if !ok {
		t.timer = nil
		return
	}
	t.session.Status = next
	if next.IsTerminal() {
		t.timer = nil
		return
	}
	t.schedule()
}

// stop cancels the pending step. Later ticks are ignored.
func (t *tracker) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *tracker) snapshot() domain.TrackingSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

func (t *tracker) running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}
