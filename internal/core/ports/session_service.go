package ports

import (
	"context"

	"github.com/homeservices/booking-app/internal/core/domain"
)

// SignupInput carries the user signup form.
type SignupInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// SessionService owns the customer session state machine.
type SessionService interface {
	CheckSession(ctx context.Context) domain.Session
	InitialRoute(ctx context.Context) string
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Signup(ctx context.Context, in SignupInput) (domain.Session, error)
	Logout(ctx context.Context) error
	ResolveUsername(ctx context.Context, fromRoute string) string
}
