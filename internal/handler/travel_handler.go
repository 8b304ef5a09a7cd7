package handler

import (
	"net/http"
	"strconv"

	"github.com/Eursukkul/nexo-service/internal/dto"
	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/repository"
	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/labstack/echo/v4"
)

type TravelHandler struct {
	cars     service.CarService
	bookings service.BookingService
	content  service.ContentService
}

func NewTravelHandler(cars service.CarService, bookings service.BookingService, content service.ContentService) *TravelHandler {
	return &TravelHandler{cars: cars, bookings: bookings, content: content}
}

func (h *TravelHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	g := e.Group("/travel")

	g.GET("/cars", h.ListCars, mw.Auth...)
	g.GET("/cars/:id", h.GetCar, mw.Auth...)
	g.POST("/cars", h.CreateCar, mw.Admin...)
	g.PUT("/cars/:id", h.UpdateCar, mw.Admin...)
	g.DELETE("/cars/:id", h.DeleteCar, mw.Admin...)

	g.POST("/cars/:id/bookings", h.BookCar, mw.Auth...)
	g.GET("/car-bookings", h.ListCarBookings, mw.Auth...)
	g.GET("/car-bookings/:id", h.GetCarBooking, mw.Auth...)
	g.PATCH("/car-bookings/:id/status", h.UpdateCarBookingStatus, mw.Auth...)

	g.POST("/hotel-bookings", h.CreateHotelBooking, mw.Auth...)
	g.GET("/hotel-bookings", h.ListHotelBookings, mw.Auth...)
	g.GET("/hotel-bookings/:id", h.GetHotelBooking, mw.Auth...)
	g.PATCH("/hotel-bookings/:id/status", h.UpdateHotelBookingStatus, mw.Auth...)

	g.GET("/packages", h.ListPackages, mw.Auth...)
}

func (h *TravelHandler) ListCars(c echo.Context) error {
	var filter repository.CarFilter
	if s := c.QueryParam("available"); s != "" {
		available, err := strconv.ParseBool(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "available must be true or false")
		}
		filter.Available = &available
	}
	filter.Make = c.QueryParam("make")

	cars, err := h.cars.ListCars(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.CarResponse, len(cars))
	for i := range cars {
		resp[i] = dto.ToCarResponse(&cars[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TravelHandler) GetCar(c echo.Context) error {
	id, err := parseID(c, "id", "car")
	if err != nil {
		return err
	}

	car, err := h.cars.GetCar(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToCarResponse(car))
}

func (h *TravelHandler) CreateCar(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req dto.CreateCarRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	car := &models.Car{
		OwnerID:      req.OwnerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		DailyRate:    req.DailyRate,
		Available:    true,
	}
	if req.Available != nil {
		car.Available = *req.Available
	}

	if err := h.cars.CreateCar(c.Request().Context(), user, car); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToCarResponse(car))
}

func (h *TravelHandler) UpdateCar(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "car")
	if err != nil {
		return err
	}

	var req dto.UpdateCarRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	car, err := h.cars.UpdateCar(c.Request().Context(), user, id, service.CarUpdate{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		DailyRate:    req.DailyRate,
		Available:    req.Available,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToCarResponse(car))
}

func (h *TravelHandler) DeleteCar(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "car")
	if err != nil {
		return err
	}

	if err := h.cars.DeleteCar(c.Request().Context(), user, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TravelHandler) BookCar(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	carID, err := parseID(c, "id", "car")
	if err != nil {
		return err
	}

	var req dto.CreateCarBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.bookings.BookCar(c.Request().Context(), user, carID, service.CarBookingInput{
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Notes:           req.Notes,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToCarBookingResponse(booking))
}

func (h *TravelHandler) ListCarBookings(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookings.ListCarBookings(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.CarBookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToCarBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TravelHandler) GetCarBooking(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "booking")
	if err != nil {
		return err
	}

	booking, err := h.bookings.GetCarBooking(c.Request().Context(), user, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToCarBookingResponse(booking))
}

func (h *TravelHandler) UpdateCarBookingStatus(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "booking")
	if err != nil {
		return err
	}

	var req dto.UpdateBookingStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.bookings.UpdateCarBookingStatus(c.Request().Context(), user, id, models.BookingStatus(req.Status))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToCarBookingResponse(booking))
}

func (h *TravelHandler) CreateHotelBooking(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req dto.CreateHotelBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking := &models.HotelBooking{
		HotelName:    req.HotelName,
		Location:     req.Location,
		RoomType:     req.RoomType,
		NumGuests:    req.NumGuests,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		TotalPrice:   req.TotalPrice,
		Notes:        req.Notes,
	}
	if err := h.bookings.CreateHotelBooking(c.Request().Context(), user, booking); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToHotelBookingResponse(booking))
}

func (h *TravelHandler) ListHotelBookings(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookings.ListHotelBookings(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.HotelBookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToHotelBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TravelHandler) GetHotelBooking(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "booking")
	if err != nil {
		return err
	}

	booking, err := h.bookings.GetHotelBooking(c.Request().Context(), user, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToHotelBookingResponse(booking))
}

func (h *TravelHandler) UpdateHotelBookingStatus(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "booking")
	if err != nil {
		return err
	}

	var req dto.UpdateBookingStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.bookings.UpdateHotelBookingStatus(c.Request().Context(), user, id, models.BookingStatus(req.Status))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToHotelBookingResponse(booking))
}

func (h *TravelHandler) ListPackages(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"packages": h.content.TravelPackages()})
}
