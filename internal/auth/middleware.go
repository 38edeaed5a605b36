package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/donation-service/pkg/util"
)

const identityKey = "auth_identity"

// Middleware is the request gate: it validates bearer tokens, resolves the
// subject to an Identity and attaches it to the request context. Requests
// failing either step never reach a handler.
type Middleware struct {
	tokens   *TokenManager
	resolver *IdentityResolver
}

// NewMiddleware constructs the gate.
func NewMiddleware(tokens *TokenManager, resolver *IdentityResolver) *Middleware {
	return &Middleware{tokens: tokens, resolver: resolver}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("token expired or invalid")
	}

	identity, err := m.resolver.Resolve(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, ErrInvalidCredential) {
			return apperrors.NewUnauthorized("token expired or invalid")
		}
		return apperrors.MapError(err)
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
