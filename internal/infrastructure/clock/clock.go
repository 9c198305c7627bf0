package clock

import (
	"time"

	"github.com/homeservices/booking-app/internal/core/ports"
)

// System is the wall clock. Callbacks run on their own goroutine.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

func (System) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}
