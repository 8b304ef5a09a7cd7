package middleware

import (
	"errors"
	"net/http"

	"github.com/Eursukkul/nexo-service/internal/validator"
	"github.com/Eursukkul/nexo-service/pkg/logger"
	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Message string                     `json:"message"`
	Errors  validator.ValidationErrors `json:"errors,omitempty"`
}

// ErrorHandler renders every error as {"message": ...}. Validation failures
// become 422 with per-field errors; anything not already an HTTP error is
// logged and hidden behind a generic 500.
func ErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		resp := errorResponse{Message: http.StatusText(code)}

		var he *echo.HTTPError
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			code = http.StatusUnprocessableEntity
			resp = errorResponse{Message: "validation failed", Errors: verrs}
		case errors.As(err, &he):
			code = he.Code
			if m, ok := he.Message.(string); ok {
				resp.Message = m
			} else {
				resp.Message = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", code,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, resp)
		}
		if err != nil {
			log.Error("failed to write error response", "error", err)
		}
	}
}
