package service

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/homeservices/booking-app/internal/core/domain"
)

// Rule names reported in domain.ValidationError.Rule.
const (
	RuleRequired      = "required"
	RuleEmail         = "email"
	RulePasswordMin   = "password_min"
	RulePasswordMatch = "password_match"
	RuleProfession    = "profession"
)

const minPasswordLength = "6"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// signupRules evaluates the signup form in a fixed order and reports only
// the first failing rule.
type signupRules struct {
	v *validator.Validate
}

func newSignupRules() *signupRules {
	v := validator.New()
	if err := v.RegisterValidation("device_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &signupRules{v: v}
}

// check runs required, email, password length and password match, in that order.
func (r *signupRules) check(email, password, confirm string, required ...string) error {
	for _, f := range required {
		if r.v.Var(f, "required") != nil {
			return domain.NewValidationError(RuleRequired, "Please fill in all fields.")
		}
	}
	if r.v.Var(email, "device_email") != nil {
		return domain.NewValidationError(RuleEmail, "Invalid Email. Please enter a valid email address.")
	}
	if r.v.Var(password, "min="+minPasswordLength) != nil {
		return domain.NewValidationError(RulePasswordMin, "Weak Password. Must be at least 6 characters long.")
	}
	if r.v.VarWithValue(confirm, password, "eqfield") != nil {
		return domain.NewValidationError(RulePasswordMatch, "Password Mismatch. Both passwords must be the same.")
	}
	return nil
}
