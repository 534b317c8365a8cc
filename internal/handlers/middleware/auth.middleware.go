package middleware

import (
	"context"
	"errors"
	"time"

	"globeswap/internal/models"
	"globeswap/internal/services"
	"globeswap/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AuthContextKey string

const (
	UserKey         AuthContextKey = "user"
	UserKeyFiber    string         = "User"
	SessionKeyFiber string         = "Session"

	SessionCookieName = "globeswap_session"
)

// LoadSession resolves the session cookie, when present, into the current
// user. Requests without a valid session continue anonymously and a stale
// cookie is cleared. Any other failure is returned to the error handler.
func (m *Middleware) LoadSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return c.Next()
		}

		log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("LoadSession")

		user, session, err := m.authController.GetSessionUser(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, types.ErrAuthentication) {
				// store failures keep the cookie and go to the error handler
				return log.Err("failed to load session", err)
			}

			log.Info("discarding invalid session", "error", err.Error())
			m.ClearSessionCookie(c)
			return c.Next()
		}

		c.Locals(UserKeyFiber, user)
		c.Locals(SessionKeyFiber, session)

		ctx := context.WithValue(c.UserContext(), UserKey, user)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// RequireAuth rejects requests that LoadSession could not attach a user to.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUser(c) == nil {
			log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("RequireAuth")
			log.Info("unauthenticated request", "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		return c.Next()
	}
}

func (m *Middleware) SetSessionCookie(c *fiber.Ctx, session *services.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   m.Config.SessionCookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (m *Middleware) ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   m.Config.SessionCookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func GetSession(c *fiber.Ctx) *services.Session {
	session, ok := c.Locals(SessionKeyFiber).(*services.Session)
	if !ok {
		return nil
	}
	return session
}
