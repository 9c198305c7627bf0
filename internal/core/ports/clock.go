package ports

import "time"

// Timer is a pending callback registered with a Clock.
type Timer interface {
	// Stop cancels the callback. It reports false if it already ran or was stopped.
	Stop() bool
}

// Clock abstracts wall time so timer-driven screens can be tested.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
