package handler

import (
	"net/http"

	"github.com/Eursukkul/nexo-service/internal/dto"
	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	svc service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	e.GET("/admin/dashboard", h.Dashboard, mw.Admin...)
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	d, err := h.svc.Dashboard(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}

	s := d.Statistics
	return c.JSON(http.StatusOK, dto.DashboardResponse{
		Statistics: dto.DashboardStatistics{
			Users:               s.Users,
			Cars:                s.Cars,
			AvailableCars:       s.AvailableCars,
			CarBookings:         s.CarBookings,
			HotelBookings:       s.HotelBookings,
			Transactions:        s.Transactions,
			PendingTransactions: s.PendingTransactions,
			TotalLoaded:         s.TotalLoaded,
		},
		GeneratedAt: d.GeneratedAt,
		Cached:      d.Cached,
	})
}
