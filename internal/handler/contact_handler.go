package handler

import (
	"net/http"

	"github.com/Eursukkul/nexo-service/internal/dto"
	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	svc service.ContactService
}

func NewContactHandler(svc service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	e.GET("/users/me/contacts", h.ListContacts, mw.Auth...)
	e.POST("/users/me/contacts", h.CreateContact, mw.Auth...)

	g := e.Group("/contacts")
	g.GET("/:id", h.GetContact, mw.Auth...)
	g.PUT("/:id", h.UpdateContact, mw.Auth...)
	g.DELETE("/:id", h.DeleteContact, mw.Auth...)
}

func (h *ContactHandler) ListContacts(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	contacts, err := h.svc.ListContacts(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.ContactResponse, len(contacts))
	for i := range contacts {
		resp[i] = dto.ToContactResponse(&contacts[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ContactHandler) CreateContact(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req dto.CreateContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact := &models.Contact{
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	}
	if err := h.svc.CreateContact(c.Request().Context(), user, contact); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

func (h *ContactHandler) GetContact(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "contact")
	if err != nil {
		return err
	}

	contact, err := h.svc.GetContact(c.Request().Context(), user, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

func (h *ContactHandler) UpdateContact(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "contact")
	if err != nil {
		return err
	}

	var req dto.UpdateContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.svc.UpdateContact(c.Request().Context(), user, id, service.ContactUpdate{
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

func (h *ContactHandler) DeleteContact(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "contact")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteContact(c.Request().Context(), user, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
