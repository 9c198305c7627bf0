package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/navigation"
	"github.com/homeservices/booking-app/internal/core/ports"
	"github.com/homeservices/booking-app/internal/core/store"
)

// SessionService implements customer signup, login and logout on top of the
// device store.
type SessionService struct {
	store *store.Adapter
	rules *signupRules
	log   zerolog.Logger
}

func NewSessionService(kv ports.KVStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		store: store.NewAdapter(kv),
		rules: newSignupRules(),
		log:   log,
	}
}

// CheckSession derives the session from the stored token. A read failure or
// an unreadable token is logged and reported as logged out.
func (s *SessionService) CheckSession(ctx context.Context) domain.Session {
	var tok domain.SessionToken
	found, err := s.store.GetJSON(ctx, store.KeyUserToken, &tok)
	if err != nil {
		s.log.Error().Err(err).Msg("check session failed")
		return domain.Session{}
	}
	if !found {
		return domain.Session{}
	}
	return domain.Session{Authenticated: true, Username: tok.Username}
}

// InitialRoute is Home for a logged-in user and StartScreen otherwise.
func (s *SessionService) InitialRoute(ctx context.Context) string {
	if s.CheckSession(ctx).Authenticated {
		return navigation.RouteHome
	}
	return navigation.RouteStart
}

func (s *SessionService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if strings.TrimSpace(username) == "" {
		return domain.Session{}, domain.NewValidationError(RuleRequired, "Please enter your username")
	}
	if strings.TrimSpace(password) == "" {
		return domain.Session{}, domain.NewValidationError(RuleRequired, "Please enter your password")
	}

	var acct domain.UserAccount
	found, err := s.store.GetJSON(ctx, store.UserKey(username), &acct)
	if err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("load account failed")
		return domain.Session{}, err
	}
	if !found {
		return domain.Session{}, domain.ErrUserNotFound
	}
	if acct.Password != password {
		return domain.Session{}, domain.ErrBadPassword
	}

	if err := s.store.SetJSON(ctx, store.KeyUserToken, domain.SessionToken{Username: acct.Username}); err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("write session token failed")
		return domain.Session{}, err
	}

	s.log.Info().Str("username", acct.Username).Msg("user logged in")
	return domain.Session{Authenticated: true, Username: acct.Username}, nil
}

// Signup validates the form and stores the account, the greeting name and
// the session token, in that order. Existing accounts with the same username
// are overwritten. The writes are not atomic: when a later write fails the
// account stays stored without a session, and signing up again overwrites it.
func (s *SessionService) Signup(ctx context.Context, in ports.SignupInput) (domain.Session, error) {
	if err := s.rules.check(in.Email, in.Password, in.ConfirmPassword,
		in.Username, in.Email, in.Password, in.ConfirmPassword); err != nil {
		return domain.Session{}, err
	}

	acct := domain.UserAccount{Username: in.Username, Email: in.Email, Password: in.Password}
	if err := s.store.SetJSON(ctx, store.UserKey(in.Username), acct); err != nil {
		s.log.Error().Err(err).Str("username", in.Username).Msg("store account failed")
		return domain.Session{}, err
	}
	if err := s.store.SetString(ctx, store.KeyUsername, in.Username); err != nil {
		s.log.Error().Err(err).Str("username", in.Username).Msg("store username failed")
		return domain.Session{}, err
	}
	if err := s.store.SetJSON(ctx, store.KeyUserToken, domain.SessionToken{Username: in.Username}); err != nil {
		s.log.Error().Err(err).Str("username", in.Username).Msg("write session token failed")
		return domain.Session{}, err
	}

	s.log.Info().Str("username", in.Username).Msg("user signed up")
	return domain.Session{Authenticated: true, Username: in.Username}, nil
}

// Logout removes the session token. It succeeds when no token exists.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Remove(ctx, store.KeyUserToken); err != nil {
		s.log.Error().Err(err).Msg("logout failed")
		return err
	}
	s.log.Info().Msg("user logged out")
	return nil
}

// ResolveUsername returns the name greeted on the home screen. A name passed
// along with the route is remembered for later launches.
func (s *SessionService) ResolveUsername(ctx context.Context, fromRoute string) string {
	if fromRoute != "" {
		if err := s.store.SetString(ctx, store.KeyUsername, fromRoute); err != nil {
			s.log.Warn().Err(err).Msg("remember username failed")
		}
		return fromRoute
	}
	name, _, err := s.store.GetString(ctx, store.KeyUsername)
	if err != nil {
		s.log.Error().Err(err).Msg("load username failed")
		return ""
	}
	return name
}
