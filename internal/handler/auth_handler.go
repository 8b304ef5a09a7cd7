package handler

import (
	"net/http"
	"time"

	"github.com/Eursukkul/nexo-service/internal/dto"
	"github.com/Eursukkul/nexo-service/internal/middleware"
	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc          service.AuthService
	cookieSecure bool
}

func NewAuthHandler(svc service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, cookieSecure: cookieSecure}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	g := e.Group("/auth")
	g.POST("/register", h.Register, mw.Public...)
	g.POST("/login", h.Login, mw.Public...)
	g.POST("/logout", h.Logout, mw.Public...)
	g.GET("/me", h.Me, mw.Auth...)
	g.GET("/csrf", h.CSRFToken, mw.Public...)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.svc.Register(c.Request().Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	c.SetCookie(h.sessionCookie(session.Token, session.ExpiresAt))
	return c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: session.Token,
		TokenType:   "bearer",
		ExpiresAt:   session.ExpiresAt,
	})
}

// Logout clears the session cookie. Tokens are stateless, so a copied
// bearer token stays valid until it expires.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// CSRFToken issues a token bound to the caller's session, or an anonymous
// one for login and registration forms.
func (h *AuthHandler) CSRFToken(c echo.Context) error {
	token, exp, err := h.svc.IssueCSRF(middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.CSRFResponse{CSRFToken: token, ExpiresAt: exp})
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie
}
