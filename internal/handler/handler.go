package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Eursukkul/nexo-service/internal/middleware"
	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/labstack/echo/v4"
)

// Middlewares are the route-level chains handlers attach to their routes.
type Middlewares struct {
	// Public runs OptionalAuth and CSRF.
	Public []echo.MiddlewareFunc
	// Auth runs RequireAuth and CSRF.
	Auth []echo.MiddlewareFunc
	// Admin runs RequireAuth, RequireAdmin and CSRF.
	Admin []echo.MiddlewareFunc
}

func parseID(c echo.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+label+" id")
	}
	return uint(id), nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
// Malformed bodies and failed validation both end up as 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid request body")
	}
	return c.Validate(req)
}

// actor returns the authenticated user. Routes using it must sit behind
// RequireAuth.
func actor(c echo.Context) (*models.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return user, nil
}

// httpError maps service sentinels to HTTP errors. Unknown errors pass
// through and surface as 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidSignature):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrContactNotFound),
		errors.Is(err, service.ErrCarNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrRecipientNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrEventNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPlateTaken),
		errors.Is(err, service.ErrCarUnavailable),
		errors.Is(err, service.ErrCarAlreadyBooked),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrTransactionSettled),
		errors.Is(err, service.ErrReferenceTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidDailyRate),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidTxStatus),
		errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrSelfTransfer):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, service.ErrPaymentGateway):
		return echo.NewHTTPError(http.StatusBadGateway, service.ErrPaymentGateway.Error())
	case errors.Is(err, service.ErrChatUpstream):
		return echo.NewHTTPError(http.StatusBadGateway, service.ErrChatUpstream.Error())
	}
	return err
}
