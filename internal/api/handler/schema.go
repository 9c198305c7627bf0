package handler

import (
	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/navigation"
)

// screenResponse is the envelope of every screen action: the screen the
// view should show now and the action's payload.
type screenResponse struct {
	Screen    navigation.Entry `json:"screen"`
	CanGoBack bool             `json:"canGoBack"`
	Data      any              `json:"data,omitempty"`
}

// --- Session ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

type employeeSignupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Profession      string `json:"profession"`
	Address         string `json:"address"`
}

type employeeResponse struct {
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
	Profession string `json:"profession,omitempty"`
	Address    string `json:"address,omitempty"`
}

// --- Home and catalog ---

type homeResponse struct {
	Username    string           `json:"username"`
	Location    string           `json:"location"`
	BannerIndex int              `json:"bannerIndex"`
	Services    []domain.Service `json:"services"`
}

type providerView struct {
	domain.Provider
	CallURI string `json:"callUri"`
}

type serviceDetailResponse struct {
	Service   domain.Service `json:"service"`
	Providers []providerView `json:"providers"`
}

// --- Tracking and bookings ---

type startTrackingRequest struct {
	ServiceID  string `json:"serviceId"  validate:"required"`
	ProviderID int    `json:"providerId" validate:"omitempty,gt=0"`
}

type bookingView struct {
	Index int `json:"index"`
	domain.BookingRecord
}

// --- Chat ---

type openChatRequest struct {
	ServiceID string `json:"serviceId"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type mediaRequest struct {
	URI  string `json:"uri"  validate:"omitempty,uri"`
	Kind string `json:"kind" validate:"omitempty,oneof=image video"`
}

type documentRequest struct {
	URI  string `json:"uri"  validate:"omitempty,uri"`
	Name string `json:"name"`
}

type stopRecordingRequest struct {
	URI string `json:"uri" validate:"omitempty,uri"`
}

// --- Profile ---

type profileResponse struct {
	domain.Profile
	Completion int `json:"completion"`
}

type pictureRequest struct {
	FromCamera bool   `json:"fromCamera"`
	URI        string `json:"uri" validate:"omitempty,uri"`
}

// --- Navigation ---

type navigateRequest struct {
	Route string `json:"route" validate:"required,oneof=Home MyProfile MyBookings EmployeeLogin Login Signup"`
}
