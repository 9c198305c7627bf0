package service

import (
	"context"
	"errors"
	"testing"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/navigation"
	"github.com/homeservices/booking-app/internal/core/ports"
)

func signupInput(username, email, password, confirm string) ports.SignupInput {
	return ports.SignupInput{Username: username, Email: email, Password: password, ConfirmPassword: confirm}
}

func TestSessionService_Signup_Success(t *testing.T) {
	kv := newStubKV()
	svc := NewSessionService(kv, discardLogger)

	sess, err := svc.Signup(context.Background(), signupInput("alex", "a@b.com", "secret1", "secret1"))
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if !sess.Authenticated || sess.Username != "alex" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	if got, _ := kv.get("user_alex"); got != `{"username":"alex","email":"a@b.com","password":"secret1"}` {
		t.Fatalf("unexpected account: %s", got)
	}
	if got, _ := kv.get("userToken"); got != `{"username":"alex"}` {
		t.Fatalf("unexpected token: %s", got)
	}
	if got, _ := kv.get("username"); got != "alex" {
		t.Fatalf("unexpected username: %s", got)
	}
}

func TestSessionService_Signup_RuleOrder(t *testing.T) {
	cases := []struct {
		name string
		in   ports.SignupInput
		rule string
	}{
		{"missing field wins over bad email", signupInput("", "bad", "x", "y"), RuleRequired},
		{"missing confirm", signupInput("alex", "a@b.com", "secret1", ""), RuleRequired},
		{"bad email wins over short password", signupInput("alex", "a@b", "x", "y"), RuleEmail},
		{"email with space", signupInput("alex", "a b@c.com", "secret1", "secret1"), RuleEmail},
		{"short password wins over mismatch", signupInput("alex", "a@b.com", "12345", "54321"), RulePasswordMin},
		{"mismatch", signupInput("alex", "a@b.com", "secret1", "secret2"), RulePasswordMatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kv := newStubKV()
			svc := NewSessionService(kv, discardLogger)

			_, err := svc.Signup(context.Background(), tc.in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Rule != tc.rule {
				t.Fatalf("expected rule %s, got %+v", tc.rule, ve)
			}
			if kv.writeCount() != 0 {
				t.Fatalf("expected no writes, got %d", kv.writeCount())
			}
		})
	}
}

func TestSessionService_Signup_OverwritesExistingAccount(t *testing.T) {
	kv := newStubKV()
	svc := NewSessionService(kv, discardLogger)

	if _, err := svc.Signup(context.Background(), signupInput("alex", "a@b.com", "secret1", "secret1")); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(context.Background(), signupInput("alex", "new@b.com", "secret2", "secret2")); err != nil {
		t.Fatalf("second signup: %v", err)
	}
	if _, err := svc.Login(context.Background(), "alex", "secret2"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestSessionService_Signup_StorageFailure(t *testing.T) {
	kv := newStubKV()
	kv.setErr["user_alex"] = errDiskFull
	svc := NewSessionService(kv, discardLogger)

	_, err := svc.Signup(context.Background(), signupInput("alex", "a@b.com", "secret1", "secret1"))
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if svc.CheckSession(context.Background()).Authenticated {
		t.Fatalf("session must not be created when the account write fails")
	}
}

func TestSessionService_Signup_TokenFailureKeepsAccount(t *testing.T) {
	kv := newStubKV()
	kv.setErr["userToken"] = errDiskFull
	svc := NewSessionService(kv, discardLogger)
	in := signupInput("alex", "a@b.com", "secret1", "secret1")

	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if _, ok := kv.get("user_alex"); !ok {
		t.Fatalf("account written before the token must stay stored")
	}
	if svc.CheckSession(context.Background()).Authenticated {
		t.Fatalf("no session must exist after a failed token write")
	}

	delete(kv.setErr, "userToken")
	sess, err := svc.Signup(context.Background(), in)
	if err != nil || !sess.Authenticated {
		t.Fatalf("signing up again must succeed, got %+v %v", sess, err)
	}
	if !svc.CheckSession(context.Background()).Authenticated {
		t.Fatalf("expected a session after the retry")
	}
}

func TestSessionService_Login_Success(t *testing.T) {
	kv := newStubKV()
	svc := NewSessionService(kv, discardLogger)

	accounts := map[string]string{"alex": "secret1", "sam": "hunter22", "kai": "pa ss word"}
	for user, pass := range accounts {
		if _, err := svc.Signup(context.Background(), signupInput(user, user+"@mail.com", pass, pass)); err != nil {
			t.Fatalf("signup %s: %v", user, err)
		}
	}
	for user, pass := range accounts {
		_ = svc.Logout(context.Background())
		sess, err := svc.Login(context.Background(), user, pass)
		if err != nil {
			t.Fatalf("login %s: %v", user, err)
		}
		if sess.Username != user {
			t.Fatalf("expected %s, got %s", user, sess.Username)
		}
		if got := svc.CheckSession(context.Background()); !got.Authenticated || got.Username != user {
			t.Fatalf("unexpected session after login: %+v", got)
		}
	}
}

func TestSessionService_Login_Errors(t *testing.T) {
	kv := newStubKV()
	svc := NewSessionService(kv, discardLogger)
	_, _ = svc.Signup(context.Background(), signupInput("alex", "a@b.com", "secret1", "secret1"))
	_ = svc.Logout(context.Background())

	if _, err := svc.Login(context.Background(), "ghost", "secret1"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "alex", "wrong"); err != domain.ErrBadPassword {
		t.Fatalf("expected ErrBadPassword, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "   ", "secret1"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for blank username, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "alex", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for blank password, got %v", err)
	}
	if svc.CheckSession(context.Background()).Authenticated {
		t.Fatalf("failed logins must not create a session")
	}
}

func TestSessionService_LogoutThenCheck(t *testing.T) {
	kv := newStubKV()
	svc := NewSessionService(kv, discardLogger)
	_, _ = svc.Signup(context.Background(), signupInput("alex", "a@b.com", "secret1", "secret1"))

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if got := svc.CheckSession(context.Background()); got.Authenticated {
		t.Fatalf("expected unauthenticated, got %+v", got)
	}
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("second logout should be a no-op: %v", err)
	}
}

func TestSessionService_CheckSession_ReadFailure(t *testing.T) {
	kv := newStubKV()
	kv.getErr = errDiskFull
	svc := NewSessionService(kv, discardLogger)

	if got := svc.CheckSession(context.Background()); got.Authenticated {
		t.Fatalf("expected unauthenticated on read failure")
	}
	if got := svc.InitialRoute(context.Background()); got != navigation.RouteStart {
		t.Fatalf("expected StartScreen, got %s", got)
	}
}

func TestSessionService_InitialRoute(t *testing.T) {
	kv := newStubKV()
	svc := NewSessionService(kv, discardLogger)

	if got := svc.InitialRoute(context.Background()); got != navigation.RouteStart {
		t.Fatalf("expected StartScreen, got %s", got)
	}
	kv.items["userToken"] = `{"username":"alex"}`
	if got := svc.InitialRoute(context.Background()); got != navigation.RouteHome {
		t.Fatalf("expected Home, got %s", got)
	}
}

func TestSessionService_ResolveUsername(t *testing.T) {
	kv := newStubKV()
	svc := NewSessionService(kv, discardLogger)

	if got := svc.ResolveUsername(context.Background(), ""); got != "" {
		t.Fatalf("expected empty name, got %q", got)
	}
	if got := svc.ResolveUsername(context.Background(), "alex"); got != "alex" {
		t.Fatalf("expected alex, got %q", got)
	}
	if got := svc.ResolveUsername(context.Background(), ""); got != "alex" {
		t.Fatalf("expected remembered name, got %q", got)
	}
}
