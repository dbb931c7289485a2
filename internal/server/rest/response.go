package rest

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/server/requests"
)

// Envelope codes carried by failed responses.
const (
	CodeValidation      = 0
	CodeIdentity        = 1
	CodeCredentials     = 2
	CodeUnauthenticated = 3
)

const uniformLoginMessage = "invalid email or password"

type envelope struct {
	Success bool                  `json:"success"`
	Data    any                   `json:"data,omitempty"`
	Code    *int                  `json:"code,omitempty"`
	Errors  []requests.FieldError `json:"errors,omitempty"`
}

type authData struct {
	User      any    `json:"user"`
	Token     string `json:"token"`
	ExpiresIn string `json:"expires_in"`
}

func success(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Success: true, Data: data})
}

func fail(c *fiber.Ctx, status, code int, fields ...requests.FieldError) error {
	return c.Status(status).JSON(envelope{Success: false, Code: &code, Errors: fields})
}

func field(path, message string) requests.FieldError {
	return requests.FieldError{Path: path, Message: message}
}

// renderError writes the failure envelope that matches err. Failures outside
// the known taxonomy become a bare 500.
func (s *Server) renderError(c *fiber.Ctx, err error) error {
	var verr *requests.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, fiber.StatusBadRequest, CodeValidation, verr.Fields...)
	case errors.Is(err, common.ErrDuplicateIdentity):
		return fail(c, fiber.StatusBadRequest, CodeIdentity, field("email", common.ErrDuplicateIdentity.Error()))
	case errors.Is(err, common.ErrUnknownIdentity):
		if s.uniformLoginErrors {
			return fail(c, fiber.StatusUnauthorized, CodeIdentity, field("email", uniformLoginMessage))
		}
		return fail(c, fiber.StatusUnauthorized, CodeIdentity, field("email", common.ErrUnknownIdentity.Error()))
	case errors.Is(err, common.ErrBadCredentials):
		if s.uniformLoginErrors {
			return fail(c, fiber.StatusUnauthorized, CodeIdentity, field("email", uniformLoginMessage))
		}
		return fail(c, fiber.StatusForbidden, CodeCredentials, field("passwords", common.ErrBadCredentials.Error()))
	case errors.Is(err, common.ErrUnauthenticated):
		return fail(c, fiber.StatusUnauthorized, CodeUnauthenticated, field("authorization", "Unauthorized"))
	}

	s.logger.Error(c.UserContext(), "Request failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(envelope{Success: false})
}

// errorHandler renders errors fiber raises itself, such as unknown routes.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return c.Status(ferr.Code).JSON(envelope{Success: false, Errors: []requests.FieldError{field("", ferr.Message)}})
	}
	return s.renderError(c, err)
}
