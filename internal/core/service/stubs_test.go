package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var errDiskFull = errors.New("disk full")

// ---------------------------------------------------------------------------
// In-memory stub store
// ---------------------------------------------------------------------------

type stubKV struct {
	mu       sync.Mutex
	items    map[string]string
	writes   int
	getErr   error
	setErr   map[string]error // per-key write failures
	removeEr error
}

func newStubKV() *stubKV {
	return &stubKV{items: make(map[string]string), setErr: make(map[string]error)}
}

func (s *stubKV) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *stubKV) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setErr[key]; err != nil {
		return err
	}
	s.writes++
	s.items[key] = value
	return nil
}

func (s *stubKV) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removeEr != nil {
		return s.removeEr
	}
	s.writes++
	delete(s.items, key)
	return nil
}

func (s *stubKV) get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *stubKV) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// ---------------------------------------------------------------------------
// Manual clock
// ---------------------------------------------------------------------------

type fakeTimer struct {
	c       *fakeClock
	at      time.Time
	f       func()
	fired   bool
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward, running due callbacks in order on the
// calling goroutine.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if t.fired || t.stopped || t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.fired = true
		c.now = next.at
		c.mu.Unlock()

		next.f()
	}
}

// pending counts timers that have neither fired nor been stopped.
func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Serializer and device stubs
// ---------------------------------------------------------------------------

type inlineSerializer struct{}

func (inlineSerializer) Do(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubMediaPicker struct {
	asset      ports.MediaAsset
	err        error
	fromCamera bool
}

func (p *stubMediaPicker) PickMedia(_ context.Context, fromCamera bool) (ports.MediaAsset, error) {
	p.fromCamera = fromCamera
	return p.asset, p.err
}

type stubDocumentPicker struct {
	asset ports.DocumentAsset
	err   error
}

func (p *stubDocumentPicker) PickDocument(context.Context) (ports.DocumentAsset, error) {
	return p.asset, p.err
}

type stubRecording struct {
	uri string
}

func (r *stubRecording) Stop(context.Context) (string, error) {
	return r.uri, nil
}

type stubRecorder struct {
	uri string
	err error
}

func (r *stubRecorder) StartRecording(context.Context) (ports.Recording, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &stubRecording{uri: r.uri}, nil
}

type stubLocation struct {
	place domain.Place
	found bool
	err   error
}

func (l *stubLocation) CurrentPlace(context.Context) (domain.Place, bool, error) {
	return l.place, l.found, l.err
}
