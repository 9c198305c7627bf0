package ports

import (
	"context"

	"github.com/homeservices/booking-app/internal/core/domain"
)

// EmployeeSignupInput carries the employee signup form.
type EmployeeSignupInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Profession      string
	Address         string
}

// EmployeeService manages the single employee slot and its login marker.
type EmployeeService interface {
	Signup(ctx context.Context, in EmployeeSignupInput) (*domain.EmployeeAccount, error)
	Login(ctx context.Context, username, password string) (domain.Session, error)
	CheckSession(ctx context.Context) domain.Session
	Dashboard(ctx context.Context) (domain.SessionToken, error)
	Logout(ctx context.Context) error
}
