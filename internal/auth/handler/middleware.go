package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/danieltanr/webauth/internal/auth/domain"
	autherror "github.com/danieltanr/webauth/internal/errors"
	"github.com/danieltanr/webauth/pkg/constant"
)

// userLocalKey is where Protect stores the resolved principal for downstream
// handlers.
const userLocalKey = "currentUser"

// CurrentUser returns the principal attached by Protect, or nil when the
// request never passed through it.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(userLocalKey).(*domain.User)
	return user
}

// Protect is the access guard. It runs extract, verify, resolve and freshness
// in order, terminating on the first failure, and attaches the principal on
// success.
func (h *AuthHandler) Protect(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, constant.AuthScheme+" ") {
		return writeError(c, autherror.ErrNotLoggedIn)
	}

	tokenString := strings.TrimPrefix(header, constant.AuthScheme+" ")

	claims, err := h.tokens.Verify(tokenString)
	if err != nil {
		return writeError(c, autherror.ErrInvalidToken)
	}
	if claims.IssuedAt == nil {
		return writeError(c, autherror.ErrInvalidToken)
	}

	user, err := h.userService.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return writeError(c, err)
	}
	// The principal may have been deleted after the token was issued.
	if user == nil {
		return writeError(c, autherror.ErrUserGone)
	}

	if user.ChangedPasswordAfter(claims.IssuedAt.Time) {
		return writeError(c, autherror.ErrPasswordChanged)
	}

	c.Locals(userLocalKey, user)

	return c.Next()
}

// RequireRole allows the request through only when the principal attached by
// Protect holds one of the given roles. It must be mounted after Protect.
func (h *AuthHandler) RequireRole(roles ...domain.Role) fiber.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return writeError(c, autherror.ErrNotLoggedIn)
		}

		if _, ok := allowed[user.Role]; !ok {
			return writeError(c, autherror.ErrForbidden)
		}

		return c.Next()
	}
}
