package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/Eursukkul/nexo-service/pkg/security"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookie = "session_token"

	ctxUser   = "auth.user"
	ctxClaims = "auth.claims"
	ctxSource = "auth.source"
)

// AuthSource records where the session token was read from.
type AuthSource string

const (
	SourceNone   AuthSource = ""
	SourceHeader AuthSource = "header"
	SourceCookie AuthSource = "cookie"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, *security.SessionClaims, error)
}

// tokenFromRequest prefers the Authorization header over the cookie.
func tokenFromRequest(c echo.Context) (string, AuthSource) {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token), SourceHeader
		}
		return "", SourceHeader
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, SourceCookie
	}
	return "", SourceNone
}

func authenticate(c echo.Context, auth Authenticator) error {
	token, source := tokenFromRequest(c)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	user, claims, err := auth.Authenticate(c.Request().Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrTokenExpired):
			return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
		case errors.Is(err, service.ErrUnauthenticated):
			return echo.NewHTTPError(http.StatusUnauthorized, service.ErrUnauthenticated.Error())
		default:
			return err
		}
	}

	c.Set(ctxUser, user)
	c.Set(ctxClaims, claims)
	c.Set(ctxSource, source)
	return nil
}

// RequireAuth rejects requests without a valid session token with 401.
func RequireAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authenticate(c, auth); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// OptionalAuth attaches the user when a valid token is present and otherwise
// lets the request through anonymously.
func OptionalAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authenticate(c, auth); err != nil {
				var he *echo.HTTPError
				if !errors.As(err, &he) {
					return err
				}
			}
			return next(c)
		}
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if !user.Role.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(ctxUser).(*models.User)
	return user
}

// SessionID is the jti of the caller's session token, or "" when anonymous.
func SessionID(c echo.Context) string {
	if claims, ok := c.Get(ctxClaims).(*security.SessionClaims); ok {
		return claims.ID
	}
	return ""
}

func Source(c echo.Context) AuthSource {
	source, _ := c.Get(ctxSource).(AuthSource)
	return source
}

// SetUser attaches an authenticated user to c. Used by tests and by
// handlers that authenticate inline.
func SetUser(c echo.Context, user *models.User, claims *security.SessionClaims, source AuthSource) {
	c.Set(ctxUser, user)
	c.Set(ctxClaims, claims)
	c.Set(ctxSource, source)
}
