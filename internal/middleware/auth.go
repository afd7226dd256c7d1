package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"go.uber.org/zap"
)

// SessionUserKey is the session key holding the signed-in owner's subject.
const SessionUserKey = "user_sub"

// viewerIDKey is the Locals key the viewer's id is stored under.
const viewerIDKey = "viewer_id"

// AuthMiddleware identifies the signed-in owner from the session.
type AuthMiddleware struct {
	log *zap.Logger
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{log: log}
}

// RequireAuth ensures an owner is signed in, responding 401 if not.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	sub := sessionUser(c)
	if sub == "" {
		m.log.Debug("unauthenticated request", zap.String("path", c.Path()))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "sign in required",
		})
	}

	c.Locals(viewerIDKey, sub)
	return c.Next()
}

// OptionalAuth records the owner's id when signed in, but lets anonymous
// viewers through.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	if sub := sessionUser(c); sub != "" {
		c.Locals(viewerIDKey, sub)
	}
	return c.Next()
}

// ViewerID returns the signed-in owner's id, or "" for anonymous viewers.
func ViewerID(c fiber.Ctx) string {
	id, _ := c.Locals(viewerIDKey).(string)
	return id
}

func sessionUser(c fiber.Ctx) string {
	sess := session.FromContext(c)
	if sess == nil {
		return ""
	}
	sub, _ := sess.Get(SessionUserKey).(string)
	return sub
}
