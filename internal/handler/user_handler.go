package handler

import (
	"net/http"

	"github.com/Eursukkul/nexo-service/internal/dto"
	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	g := e.Group("/users")
	g.GET("", h.ListUsers, mw.Admin...)
	g.GET("/me", h.GetMe, mw.Auth...)
	g.PUT("/me", h.UpdateMe, mw.Auth...)
	g.GET("/:id", h.GetUser, mw.Auth...)
	g.DELETE("/:id", h.DeleteUser, mw.Admin...)
	g.PUT("/:id/role", h.UpdateRole, mw.Admin...)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	users, err := h.svc.ListUsers(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = dto.ToUserResponse(&users[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.svc.UpdateProfile(c.Request().Context(), user, service.ProfileUpdate{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(updated))
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	found, err := h.svc.GetUser(c.Request().Context(), user, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(found))
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteUser(c.Request().Context(), user, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) UpdateRole(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}

	var req dto.UpdateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := h.svc.SetRole(c.Request().Context(), user, id, models.Role(req.Role))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(updated))
}
