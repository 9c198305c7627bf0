package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/ports"
	"github.com/homeservices/booking-app/internal/core/store"
)

// EmployeeService manages the single stored employee account.
type EmployeeService struct {
	store *store.Adapter
	rules *signupRules
	log   zerolog.Logger
}

func NewEmployeeService(kv ports.KVStore, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{
		store: store.NewAdapter(kv),
		rules: newSignupRules(),
		log:   log,
	}
}

// Signup validates the form and overwrites the employee slot.
func (s *EmployeeService) Signup(ctx context.Context, in ports.EmployeeSignupInput) (*domain.EmployeeAccount, error) {
	address := truncateRunes(in.Address, domain.MaxAddressLength)
	if err := s.rules.check(in.Email, in.Password, in.ConfirmPassword,
		in.Username, in.Email, in.Password, in.ConfirmPassword, in.Profession, address); err != nil {
		return nil, err
	}
	if !domain.IsProfession(in.Profession) {
		return nil, domain.NewValidationError(RuleProfession, "Please select a valid profession.")
	}

	acct := &domain.EmployeeAccount{
		Username:   in.Username,
		Email:      in.Email,
		Password:   in.Password,
		Profession: in.Profession,
		Address:    address,
	}
	if err := s.store.SetJSON(ctx, store.KeyEmployeeData, acct); err != nil {
		s.log.Error().Err(err).Str("username", in.Username).Msg("store employee failed")
		return nil, err
	}

	s.log.Info().Str("username", acct.Username).Str("profession", acct.Profession).Msg("employee signed up")
	return acct, nil
}

func (s *EmployeeService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	var acct domain.EmployeeAccount
	found, err := s.store.GetJSON(ctx, store.KeyEmployeeData, &acct)
	if err != nil {
		s.log.Error().Err(err).Msg("load employee failed")
		return domain.Session{}, err
	}
	if !found {
		return domain.Session{}, domain.ErrEmployeeNotFound
	}
	if username != acct.Username || password != acct.Password {
		return domain.Session{}, domain.ErrInvalidEmployeeCredentials
	}

	if err := s.store.SetJSON(ctx, store.KeyLoggedInEmployee, domain.SessionToken{Username: username}); err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("write employee login failed")
		return domain.Session{}, err
	}

	s.log.Info().Str("username", username).Msg("employee logged in")
	return domain.Session{Authenticated: true, Username: username}, nil
}

// CheckSession reports a logged-in employee so the login screen can be skipped.
func (s *EmployeeService) CheckSession(ctx context.Context) domain.Session {
	tok, err := s.Dashboard(ctx)
	if err != nil {
		return domain.Session{}
	}
	return domain.Session{Authenticated: true, Username: tok.Username}
}

// Dashboard returns the identity of the logged-in employee.
func (s *EmployeeService) Dashboard(ctx context.Context) (domain.SessionToken, error) {
	var tok domain.SessionToken
	found, err := s.store.GetJSON(ctx, store.KeyLoggedInEmployee, &tok)
	if err != nil {
		s.log.Error().Err(err).Msg("load employee login failed")
		return domain.SessionToken{}, err
	}
	if !found {
		return domain.SessionToken{}, domain.ErrUnauthenticated
	}
	return tok, nil
}

func (s *EmployeeService) Logout(ctx context.Context) error {
	if err := s.store.Remove(ctx, store.KeyLoggedInEmployee); err != nil {
		s.log.Error().Err(err).Msg("employee logout failed")
		return err
	}
	return nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
