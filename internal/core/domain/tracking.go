package domain

import "time"

// TrackingStatus is the provider progress shown while a service is tracked.
type TrackingStatus string

const (
	TrackingConfirmed  TrackingStatus = "Confirmed"
	TrackingOnTheWay   TrackingStatus = "On the way"
	TrackingArrived    TrackingStatus = "Arrived"
	TrackingInProgress TrackingStatus = "In progress"
	TrackingCompleted  TrackingStatus = "Completed"
)

// trackingSequence is the only order statuses advance in.
var trackingSequence = []TrackingStatus{
	TrackingConfirmed,
	TrackingOnTheWay,
	TrackingArrived,
	TrackingInProgress,
	TrackingCompleted,
}

// TrackingSequence returns a copy of the ordered status list.
func TrackingSequence() []TrackingStatus {
	out := make([]TrackingStatus, len(trackingSequence))
	copy(out, trackingSequence)
	return out
}

// Next returns the status following s and whether one exists.
func (s TrackingStatus) Next() (TrackingStatus, bool) {
	for i, st := range trackingSequence {
		if st == s && i+1 < len(trackingSequence) {
			return trackingSequence[i+1], true
		}
	}
	return s, false
}

// IsTerminal reports whether s is the last status of the sequence.
func (s TrackingStatus) IsTerminal() bool {
	return s == TrackingCompleted
}

// TrackingSession is a snapshot of one tracking screen.
type TrackingSession struct {
	ID          string         `json:"id"`
	ServiceName string         `json:"serviceName"`
	Provider    *Provider      `json:"provider,omitempty"`
	OTP         string         `json:"otp"`
	Status      TrackingStatus `json:"status"`
	StartedAt   time.Time      `json:"startedAt"`
}
