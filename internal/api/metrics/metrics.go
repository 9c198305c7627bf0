// Package metrics defines the Prometheus collectors of the screen shell. It
// is the single source of truth for metric names, labels and help strings.
//
// Collectors register with the default registry on package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "homeservices"

// ── Session metrics ──────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login and signup attempts.
// Labels:
//   - account: "customer" or "employee"
//   - action:  "login" or "signup"
//   - result:  "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login and signup attempts.",
	},
	[]string{"account", "action", "result"},
)

// ── Booking metrics ──────────────────────────────────────────────────────────

// BookingsTotal counts bookings list changes.
// Label:
//   - action: "confirmed" or "cancelled"
var BookingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_total",
		Help:      "Total number of confirmed and cancelled bookings.",
	},
	[]string{"action"},
)

// ActiveTrackings is the number of open tracking screens.
var ActiveTrackings = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_trackings",
		Help:      "Current number of tracking screens with a running status simulation.",
	},
)

// ── Chat metrics ─────────────────────────────────────────────────────────────

// ChatMessagesTotal counts messages posted by the user.
// Label:
//   - type: text, image, video, document or voice
var ChatMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_total",
		Help:      "Total number of chat messages sent by the user, by type.",
	},
	[]string{"type"},
)

// ── Navigation and storage ───────────────────────────────────────────────────

// ScreenViewsTotal counts screens entered.
var ScreenViewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "screen_views_total",
		Help:      "Total number of screens entered, by route.",
	},
	[]string{"route"},
)

// StorageErrorsTotal counts requests that failed on the key-value store.
var StorageErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_errors_total",
		Help:      "Total number of requests that failed because of the key-value store.",
	},
	[]string{"op"},
)

// Result maps an error to the result label.
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
