package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/danieltanr/webauth/config"
	"github.com/danieltanr/webauth/internal/auth/domain"
	"github.com/danieltanr/webauth/internal/auth/dto"
	"github.com/danieltanr/webauth/internal/auth/service"
	autherror "github.com/danieltanr/webauth/internal/errors"
	"github.com/danieltanr/webauth/pkg/constant"
)

type AuthHandler struct {
	userService *service.UserService
	tokens      service.TokenGenerator
	cfg         *config.Config
}

func NewAuthHandler(userService *service.UserService, tokens service.TokenGenerator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{userService: userService, tokens: tokens, cfg: cfg}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input dto.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return writeError(c, autherror.New(fiber.StatusBadRequest, "invalid input"))
	}

	user, err := h.userService.Signup(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}

	return h.sendToken(c, user, fiber.StatusCreated)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return writeError(c, autherror.New(fiber.StatusBadRequest, "invalid input"))
	}

	user, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}

	return h.sendToken(c, user, fiber.StatusOK)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input dto.ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil || input.Email == "" {
		return writeError(c, autherror.New(fiber.StatusBadRequest, "please provide an email address"))
	}

	resetURL := c.BaseURL() + "/api/v1/users/resetPassword"
	if err := h.userService.ForgotPassword(c.Context(), input.Email, resetURL); err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.Envelope{
		Status:  dto.StatusSuccess,
		Message: "token sent to email",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return writeError(c, autherror.New(fiber.StatusBadRequest, "invalid input"))
	}

	user, err := h.userService.ResetPassword(c.Context(), c.Params("token"), input)
	if err != nil {
		return writeError(c, err)
	}

	return h.sendToken(c, user, fiber.StatusOK)
}

func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return writeError(c, autherror.ErrNotLoggedIn)
	}

	var input dto.UpdatePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return writeError(c, autherror.New(fiber.StatusBadRequest, "invalid input"))
	}

	updated, err := h.userService.UpdatePassword(c.Context(), user.ID, input)
	if err != nil {
		return writeError(c, err)
	}

	return h.sendToken(c, updated, fiber.StatusOK)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return writeError(c, autherror.ErrNotLoggedIn)
	}

	return c.Status(fiber.StatusOK).JSON(dto.Envelope{
		Status: dto.StatusSuccess,
		Data:   &dto.UserData{User: dto.NewUserOutput(user)},
	})
}

func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return writeError(c, err)
	}

	outputs := make([]dto.UserOutput, 0, len(users))
	for i := range users {
		outputs = append(outputs, *dto.NewUserOutput(&users[i]))
	}

	return c.Status(fiber.StatusOK).JSON(dto.Envelope{
		Status: dto.StatusSuccess,
		Data:   &dto.UserData{Users: outputs},
	})
}

// sendToken is the single success path for every operation that establishes a
// session: issue the token, mirror it in an http-only cookie whose expiry
// matches the token lifetime, and return the sanitized principal.
func (h *AuthHandler) sendToken(c *fiber.Ctx, user *domain.User, status int) error {
	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		return writeError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     constant.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.tokens.GetExpiry()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.cfg.IsProduction(),
	})

	return c.Status(status).JSON(dto.Envelope{
		Status: dto.StatusSuccess,
		Token:  token,
		Data:   &dto.UserData{User: dto.NewUserOutput(user)},
	})
}

func writeError(c *fiber.Ctx, err error) error {
	status := autherror.StatusOf(err)

	message := "something went very wrong"
	if status != fiber.StatusInternalServerError || err == autherror.ErrEmailDispatch {
		message = err.Error()
	}

	return c.Status(status).JSON(dto.Envelope{
		Status:  dto.StatusError,
		Message: message,
	})
}
