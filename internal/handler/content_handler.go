package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/labstack/echo/v4"
)

const upcomingWindow = 7 * 24 * time.Hour

// ContentHandler serves the informational health, agro, education and
// calendar pages.
type ContentHandler struct {
	svc service.ContentService
}

func NewContentHandler(svc service.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

func (h *ContentHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	health := e.Group("/health")
	health.GET("/status", h.HealthStatus, mw.Auth...)
	health.GET("/appointments", h.Appointments, mw.Auth...)
	health.GET("/records", h.HealthRecords, mw.Auth...)

	agro := e.Group("/agro")
	agro.GET("/advice", h.AgroAdvice, mw.Auth...)
	agro.GET("/markets", h.MarketPrices, mw.Auth...)
	agro.GET("/equipment", h.Equipment, mw.Auth...)

	edu := e.Group("/education")
	edu.GET("/courses", h.Courses, mw.Auth...)
	edu.GET("/courses/:id", h.Course, mw.Auth...)
	edu.GET("/enrollments", h.Enrollments, mw.Auth...)
	edu.GET("/resources", h.Resources, mw.Auth...)

	cal := e.Group("/calendar")
	cal.GET("/events", h.CalendarEvents, mw.Auth...)
	cal.GET("/events/:id", h.CalendarEvent, mw.Auth...)
	cal.GET("/upcoming", h.UpcomingEvents, mw.Auth...)
}

func (h *ContentHandler) HealthStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.HealthStatus())
}

func (h *ContentHandler) Appointments(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"appointments": h.svc.Appointments(),
		"message":      "Appointment booking feature coming soon",
	})
}

func (h *ContentHandler) HealthRecords(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"records": h.svc.HealthRecords(),
		"message": "Health records feature in development",
	})
}

func (h *ContentHandler) AgroAdvice(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.AgroAdvice())
}

func (h *ContentHandler) MarketPrices(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.MarketPrices())
}

func (h *ContentHandler) Equipment(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"equipment": h.svc.Equipment()})
}

func (h *ContentHandler) Courses(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"courses": h.svc.Courses()})
}

func (h *ContentHandler) Course(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	course, err := h.svc.Course(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, course)
}

func (h *ContentHandler) Enrollments(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"enrollments": h.svc.Enrollments(),
		"message":     "No current enrollments. Browse courses to get started!",
	})
}

func (h *ContentHandler) Resources(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"resources": h.svc.Resources()})
}

func (h *ContentHandler) CalendarEvents(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"events": h.svc.CalendarEvents()})
}

func (h *ContentHandler) CalendarEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.svc.CalendarEvent(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, event)
}

func (h *ContentHandler) UpcomingEvents(c echo.Context) error {
	events := h.svc.UpcomingEvents(upcomingWindow)
	return c.JSON(http.StatusOK, map[string]any{
		"events": events,
		"count":  len(events),
		"period": "next 7 days",
	})
}
