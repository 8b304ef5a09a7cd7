package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/Eursukkul/nexo-service/internal/middleware"
	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/repository"
	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/Eursukkul/nexo-service/internal/validator"
	"github.com/Eursukkul/nexo-service/pkg/security"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var (
	alice = &models.User{ID: 1, Email: "alice@example.com", FullName: "Alice", Role: models.RoleUser}
	admin = &models.User{ID: 9, Email: "admin@example.com", FullName: "Admin", Role: models.RoleAdmin}
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	return e
}

// newContext builds a request context, authenticated as user when non-nil.
func newContext(e *echo.Echo, method, target, body string, user *models.User) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		claims := &security.SessionClaims{RegisteredClaims: jwt.RegisteredClaims{ID: "sess-test"}}
		middleware.SetUser(c, user, claims, middleware.SourceHeader)
	}
	return c, rec
}

func withParam(c echo.Context, name, value string) echo.Context {
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c
}

func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}

// --- Mock AuthService ---

type mockAuthService struct {
	registerFn func(ctx context.Context, email, password, fullName string) (*models.User, error)
	loginFn    func(ctx context.Context, email, password string) (*service.Session, error)
	issueFn    func(sessionID string) (string, time.Time, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	return m.registerFn(ctx, email, password, fullName)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*models.User, *security.SessionClaims, error) {
	return nil, nil, service.ErrUnauthenticated
}
func (m *mockAuthService) IssueCSRF(sessionID string) (string, time.Time, error) {
	return m.issueFn(sessionID)
}
func (m *mockAuthService) VerifyCSRF(token, sessionID string) error {
	return nil
}

// --- Mock WalletService ---

type mockWalletService struct {
	balanceFn  func(ctx context.Context, actor *models.User) (decimal.Decimal, error)
	loadFn     func(ctx context.Context, actor *models.User, amount decimal.Decimal, currency string) (*models.WalletTransaction, error)
	transferFn func(ctx context.Context, actor *models.User, email string, amount decimal.Decimal, description string) (*service.TransferResult, error)
	payFn      func(ctx context.Context, actor *models.User, in service.PaymentInput) (*service.PaymentResult, error)
	webhookFn  func(ctx context.Context, in service.WebhookInput) (*service.WebhookResult, error)
	listFn     func(ctx context.Context, actor *models.User) ([]models.WalletTransaction, error)
	getFn      func(ctx context.Context, actor *models.User, id uint) (*models.WalletTransaction, error)
}

func (m *mockWalletService) Balance(ctx context.Context, actor *models.User) (decimal.Decimal, error) {
	return m.balanceFn(ctx, actor)
}
func (m *mockWalletService) Load(ctx context.Context, actor *models.User, amount decimal.Decimal, currency string) (*models.WalletTransaction, error) {
	return m.loadFn(ctx, actor, amount, currency)
}
func (m *mockWalletService) Transfer(ctx context.Context, actor *models.User, email string, amount decimal.Decimal, description string) (*service.TransferResult, error) {
	return m.transferFn(ctx, actor, email, amount, description)
}
func (m *mockWalletService) Pay(ctx context.Context, actor *models.User, in service.PaymentInput) (*service.PaymentResult, error) {
	return m.payFn(ctx, actor, in)
}
func (m *mockWalletService) HandleWebhook(ctx context.Context, in service.WebhookInput) (*service.WebhookResult, error) {
	return m.webhookFn(ctx, in)
}
func (m *mockWalletService) ListTransactions(ctx context.Context, actor *models.User) ([]models.WalletTransaction, error) {
	return m.listFn(ctx, actor)
}
func (m *mockWalletService) GetTransaction(ctx context.Context, actor *models.User, id uint) (*models.WalletTransaction, error) {
	return m.getFn(ctx, actor, id)
}

// --- Mock CarService ---

type mockCarService struct {
	listFn   func(ctx context.Context, filter repository.CarFilter) ([]models.Car, error)
	getFn    func(ctx context.Context, id uint) (*models.Car, error)
	createFn func(ctx context.Context, actor *models.User, car *models.Car) error
	updateFn func(ctx context.Context, actor *models.User, id uint, update service.CarUpdate) (*models.Car, error)
	deleteFn func(ctx context.Context, actor *models.User, id uint) error
}

func (m *mockCarService) ListCars(ctx context.Context, filter repository.CarFilter) ([]models.Car, error) {
	return m.listFn(ctx, filter)
}
func (m *mockCarService) GetCar(ctx context.Context, id uint) (*models.Car, error) {
	return m.getFn(ctx, id)
}
func (m *mockCarService) CreateCar(ctx context.Context, actor *models.User, car *models.Car) error {
	return m.createFn(ctx, actor, car)
}
func (m *mockCarService) UpdateCar(ctx context.Context, actor *models.User, id uint, update service.CarUpdate) (*models.Car, error) {
	return m.updateFn(ctx, actor, id, update)
}
func (m *mockCarService) DeleteCar(ctx context.Context, actor *models.User, id uint) error {
	return m.deleteFn(ctx, actor, id)
}

// --- Mock BookingService ---

type mockBookingService struct {
	bookCarFn           func(ctx context.Context, actor *models.User, carID uint, in service.CarBookingInput) (*models.CarBooking, error)
	listCarFn           func(ctx context.Context, actor *models.User) ([]models.CarBooking, error)
	getCarFn            func(ctx context.Context, actor *models.User, id uint) (*models.CarBooking, error)
	updateCarStatusFn   func(ctx context.Context, actor *models.User, id uint, status models.BookingStatus) (*models.CarBooking, error)
	createHotelFn       func(ctx context.Context, actor *models.User, booking *models.HotelBooking) error
	listHotelFn         func(ctx context.Context, actor *models.User) ([]models.HotelBooking, error)
	getHotelFn          func(ctx context.Context, actor *models.User, id uint) (*models.HotelBooking, error)
	updateHotelStatusFn func(ctx context.Context, actor *models.User, id uint, status models.BookingStatus) (*models.HotelBooking, error)
}

func (m *mockBookingService) BookCar(ctx context.Context, actor *models.User, carID uint, in service.CarBookingInput) (*models.CarBooking, error) {
	return m.bookCarFn(ctx, actor, carID, in)
}
func (m *mockBookingService) ListCarBookings(ctx context.Context, actor *models.User) ([]models.CarBooking, error) {
	return m.listCarFn(ctx, actor)
}
func (m *mockBookingService) GetCarBooking(ctx context.Context, actor *models.User, id uint) (*models.CarBooking, error) {
	return m.getCarFn(ctx, actor, id)
}
func (m *mockBookingService) UpdateCarBookingStatus(ctx context.Context, actor *models.User, id uint, status models.BookingStatus) (*models.CarBooking, error) {
	return m.updateCarStatusFn(ctx, actor, id, status)
}
func (m *mockBookingService) CreateHotelBooking(ctx context.Context, actor *models.User, booking *models.HotelBooking) error {
	return m.createHotelFn(ctx, actor, booking)
}
func (m *mockBookingService) ListHotelBookings(ctx context.Context, actor *models.User) ([]models.HotelBooking, error) {
	return m.listHotelFn(ctx, actor)
}
func (m *mockBookingService) GetHotelBooking(ctx context.Context, actor *models.User, id uint) (*models.HotelBooking, error) {
	return m.getHotelFn(ctx, actor, id)
}
func (m *mockBookingService) UpdateHotelBookingStatus(ctx context.Context, actor *models.User, id uint, status models.BookingStatus) (*models.HotelBooking, error) {
	return m.updateHotelStatusFn(ctx, actor, id, status)
}

// --- Mock AdminService / ChatService ---

type mockAdminService struct {
	dashboardFn func(ctx context.Context, actor *models.User) (*service.Dashboard, error)
}

func (m *mockAdminService) Dashboard(ctx context.Context, actor *models.User) (*service.Dashboard, error) {
	return m.dashboardFn(ctx, actor)
}

type mockChatService struct {
	sendFn func(ctx context.Context, message, model string) (*service.ChatReply, error)
}

func (m *mockChatService) Send(ctx context.Context, message, model string) (*service.ChatReply, error) {
	return m.sendFn(ctx, message, model)
}
