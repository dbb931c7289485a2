package rest

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/server/gate"
)

func (s *Server) poweredBy(c *fiber.Ctx) error {
	c.Set(fiber.HeaderXPoweredBy, common.PoweredBy)
	return c.Next()
}

func (s *Server) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	if err != nil {
		// the error handler has not run yet, so render now to log the final status
		if herr := s.app.ErrorHandler(c, err); herr != nil {
			return herr
		}
	}
	s.logger.Info(c.UserContext(), "HTTP request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start).String(),
		"ip", c.IP(),
	)
	return nil
}

// requireIdentity lets the request through only when the gate accepts its
// Authorization header.
func (s *Server) requireIdentity(c *fiber.Ctx) error {
	id, err := s.gate.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return s.renderError(c, err)
	}
	c.SetUserContext(gate.WithIdentity(c.UserContext(), id))
	return c.Next()
}

func identity(c *fiber.Ctx) (*gate.Identity, error) {
	id, ok := gate.IdentityFrom(c.UserContext())
	if !ok {
		return nil, common.ErrUnauthenticated
	}
	return id, nil
}
