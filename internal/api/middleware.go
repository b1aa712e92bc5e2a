package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"todo-service/internal/entity"
)

const (
	sessionCookieName = "sessionId"
	sessionContextKey = "session"
)

// currentSession resolves the cookie-borne token to a session, or nil when
// the cookie is absent, unknown or expired. Read-only; runs at most once
// per request.
func (h *Handler) currentSession(c echo.Context) *entity.Session {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sess, err := h.sessions.Find(c.Request().Context(), cookie.Value)
	if err != nil {
		log.Error().Err(err).Msg("Error looking up session")
		return nil
	}

	return sess
}

// RequireAuth gates API routes: no identity means a 401 envelope.
func (h *Handler) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := h.currentSession(c)
		if sess == nil {
			return fail(c, 401, "Unauthorized")
		}
		c.Set(sessionContextKey, sess)
		return next(c)
	}
}

// RequirePage gates HTML routes: no identity means a redirect to /login.
func (h *Handler) RequirePage(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := h.currentSession(c)
		if sess == nil {
			return c.Redirect(http.StatusFound, "/login")
		}
		c.Set(sessionContextKey, sess)
		return next(c)
	}
}

// RedirectIfAuthenticated sends logged-in users away from the login and
// register pages.
func (h *Handler) RedirectIfAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.currentSession(c) != nil {
			return c.Redirect(http.StatusFound, "/")
		}
		return next(c)
	}
}

func sessionFrom(c echo.Context) *entity.Session {
	return c.Get(sessionContextKey).(*entity.Session)
}
