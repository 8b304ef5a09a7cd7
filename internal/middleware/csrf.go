package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Eursukkul/nexo-service/pkg/security"
	"github.com/labstack/echo/v4"
)

const (
	CSRFHeader    = "X-CSRF-Token"
	CSRFFormField = "csrf_token"
)

type CSRFVerifier interface {
	VerifyCSRF(token, sessionID string) error
}

func isFormRequest(r *http.Request) bool {
	ct := r.Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEApplicationForm) || strings.HasPrefix(ct, echo.MIMEMultipartForm)
}

// CSRF guards state-changing requests that a browser could forge: form
// posts, and any request authenticated by the session cookie. JSON requests
// carrying a bearer header are exempt. Run it after the auth middleware so
// the token can be checked against the caller's session.
func CSRF(v CSRFVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}
			form := isFormRequest(c.Request())
			if !form && Source(c) != SourceCookie {
				return next(c)
			}

			token := c.Request().Header.Get(CSRFHeader)
			if token == "" && form {
				token = c.FormValue(CSRFFormField)
			}

			if err := v.VerifyCSRF(token, SessionID(c)); err != nil {
				switch {
				case errors.Is(err, security.ErrTokenMissing):
					return echo.NewHTTPError(http.StatusForbidden, "CSRF token missing")
				case errors.Is(err, security.ErrTokenExpired):
					return echo.NewHTTPError(http.StatusForbidden, "CSRF token expired")
				default:
					return echo.NewHTTPError(http.StatusForbidden, "CSRF token invalid")
				}
			}
			return next(c)
		}
	}
}
