package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/dmitrijs2005/arabica/internal/server/requests"
	"github.com/dmitrijs2005/arabica/internal/server/services"
)

func (s *Server) status(c *fiber.Ctx) error {
	return c.JSON(envelope{Success: true})
}

func (s *Server) register(c *fiber.Ctx) error {
	var req requests.RegisterRequest
	if err := bind(c, &req); err != nil {
		return s.renderError(c, err)
	}
	req.Normalize()
	if err := requests.Check(req); err != nil {
		return s.renderError(c, err)
	}

	res, err := s.service.Register(c.UserContext(), req.Credentials(), clientInfo(c))
	if err != nil {
		return s.renderError(c, err)
	}
	return s.issued(c, res)
}

func (s *Server) login(c *fiber.Ctx) error {
	var req requests.LoginRequest
	if err := bind(c, &req); err != nil {
		return s.renderError(c, err)
	}
	req.Normalize()
	if err := requests.Check(req); err != nil {
		return s.renderError(c, err)
	}

	res, err := s.service.Login(c.UserContext(), req.Credentials(), clientInfo(c))
	if err != nil {
		return s.renderError(c, err)
	}
	return s.issued(c, res)
}

func (s *Server) issued(c *fiber.Ctx, res *services.AuthResult) error {
	bearer := common.BearerScheme + " " + res.Token
	c.Set(fiber.HeaderAuthorization, bearer)
	return success(c, authData{User: res.User, Token: bearer, ExpiresIn: res.ExpiresIn})
}

func (s *Server) check(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return s.renderError(c, err)
	}
	return success(c, id.User.Public())
}

func (s *Server) logout(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return s.renderError(c, err)
	}
	if err := s.service.Logout(c.UserContext(), id.User, id.Token); err != nil {
		return s.renderError(c, err)
	}
	return c.JSON(envelope{Success: true})
}

func (s *Server) sessions(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return s.renderError(c, err)
	}
	return success(c, s.service.Sessions(c.UserContext(), id.User, id.Token))
}

// bind decodes a JSON body. Anything that does not decode is a validation
// failure of the whole body.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &requests.ValidationError{Fields: []requests.FieldError{field("body", "must be a JSON object")}}
	}
	return nil
}

func clientInfo(c *fiber.Ctx) models.ClientInfo {
	return models.ClientInfo{UserAgent: c.Get(fiber.HeaderUserAgent), IP: c.IP()}
}
