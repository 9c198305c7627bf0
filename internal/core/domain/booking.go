package domain

// BookingStatus is the persisted status of a booking record.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

// BookingDateLayout renders booking dates as M/D/YYYY.
const BookingDateLayout = "1/2/2006"

// BookingRecord is one entry of the stored bookings list.
type BookingRecord struct {
	ServiceName string        `json:"serviceName"`
	Date        string        `json:"date"`
	OTP         string        `json:"otp"`
	Status      BookingStatus `json:"status"`
}

// CancelMode selects what cancelling a booking does to the stored list.
type CancelMode string

const (
	// CancelRemove deletes the record from the list.
	CancelRemove CancelMode = "remove"
	// CancelRetain keeps the record with status Cancelled.
	CancelRetain CancelMode = "retain"
)

// ParseCancelMode maps a config value to a CancelMode, defaulting to CancelRemove.
func ParseCancelMode(s string) CancelMode {
	if CancelMode(s) == CancelRetain {
		return CancelRetain
	}
	return CancelRemove
}
