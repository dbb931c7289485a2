// Package requests defines the register and login payloads accepted by the
// transports and their validation rules.
package requests

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/server/strategies"
)

// Password bounds in bytes. bcrypt ignores input past 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
	MaxNameLength     = 100
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(MinPasswordLength, MaxPasswordLength)),
		validation.Field(&r.Name, validation.Length(0, MaxNameLength)),
	)
}

func (r RegisterRequest) Credentials() strategies.Credentials {
	return strategies.Credentials{Email: r.Email, Password: r.Password, Name: r.Name}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(0, MaxPasswordLength)),
	)
}

func (r LoginRequest) Credentials() strategies.Credentials {
	return strategies.Credentials{Email: r.Email, Password: r.Password}
}

// FieldError is one rejected input field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries every field problem of a request. It matches
// common.ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Path, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

type validatable interface {
	Validate() error
}

// Check validates v and converts ozzo errors into a *ValidationError with a
// stable field order.
func Check(v validatable) error {
	err := v.Validate()
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []FieldError{{Path: "", Message: err.Error()}}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for path, ferr := range verrs {
		fields = append(fields, FieldError{Path: path, Message: ferr.Error()})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Path < fields[j].Path })
	return &ValidationError{Fields: fields}
}
