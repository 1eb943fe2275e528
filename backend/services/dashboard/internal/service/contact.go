package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/multierr"

	"emfmonitor/backend/services/dashboard/internal/models"
)

// ErrInvalidContact marks a contact form that failed validation.
var ErrInvalidContact = errors.New("service: invalid contact form")

// FieldError names the offending form field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidContact }

// ValidateContact checks required fields and email syntax, reporting every problem at once.
func ValidateContact(form models.ContactForm) error {
	var err error
	if strings.TrimSpace(form.Name) == "" {
		err = multierr.Append(err, &FieldError{Field: "name", Reason: "required"})
	}
	email := strings.TrimSpace(form.Email)
	if email == "" {
		err = multierr.Append(err, &FieldError{Field: "email", Reason: "required"})
	} else if addr, perr := mail.ParseAddress(email); perr != nil || addr.Address != email {
		err = multierr.Append(err, &FieldError{Field: "email", Reason: "invalid address"})
	}
	if strings.TrimSpace(form.Message) == "" {
		err = multierr.Append(err, &FieldError{Field: "message", Reason: "required"})
	}
	return err
}

// FieldErrors lists the field errors contained in err.
func FieldErrors(err error) []*FieldError {
	var out []*FieldError
	for _, e := range multierr.Errors(err) {
		var fe *FieldError
		if errors.As(e, &fe) {
			out = append(out, fe)
		}
	}
	return out
}
