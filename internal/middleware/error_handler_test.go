package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Eursukkul/nexo-service/internal/validator"
	"github.com/Eursukkul/nexo-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func handle(err error, method string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, "/x", nil)
	rec := httptest.NewRecorder()
	ErrorHandler(logger.Nop())(err, e.NewContext(req, rec))
	return rec
}

func TestErrorHandler_HTTPError(t *testing.T) {
	rec := handle(echo.NewHTTPError(http.StatusNotFound, "car not found"), http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"car not found"}`, rec.Body.String())
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	err := validator.ValidationErrors{{Field: "email", Message: "must be a valid email address"}}

	rec := handle(err, http.MethodPost)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"message":"validation failed","errors":[{"field":"email","message":"must be a valid email address"}]}`, rec.Body.String())
}

func TestErrorHandler_InternalErrorsAreHidden(t *testing.T) {
	rec := handle(errors.New("pq: connection refused"), http.MethodGet)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())
}

func TestErrorHandler_HeadHasNoBody(t *testing.T) {
	rec := handle(echo.NewHTTPError(http.StatusUnauthorized, "not authenticated"), http.MethodHead)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Body.String())
}
