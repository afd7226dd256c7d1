package api

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"weddash/internal/access"
)

// fiberSession exposes the request's session to the access gate.
type fiberSession struct {
	sess *session.Middleware
}

func (s fiberSession) Get(key string) any {
	return s.sess.Get(key)
}

func (s fiberSession) Set(key string, value any) {
	s.sess.Set(key, value)
}

// viewerSession returns the request's session, or nil when no session
// middleware is installed. The result must not be used after the handler returns.
func viewerSession(c fiber.Ctx) access.Session {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}
	return fiberSession{sess: sess}
}
