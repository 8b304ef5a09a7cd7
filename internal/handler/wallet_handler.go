package handler

import (
	"net/http"

	"github.com/Eursukkul/nexo-service/internal/dto"
	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/labstack/echo/v4"
)

const SignatureHeader = "X-Nexo-Signature"

type WalletHandler struct {
	svc service.WalletService
}

func NewWalletHandler(svc service.WalletService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

func (h *WalletHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	g := e.Group("/nexo-paisa")
	g.GET("/balance", h.Balance, mw.Auth...)
	g.POST("/load", h.Load, mw.Auth...)
	g.POST("/transfer", h.Transfer, mw.Auth...)
	g.POST("/pay", h.Pay, mw.Auth...)
	g.GET("/transactions", h.ListTransactions, mw.Auth...)
	g.GET("/transactions/:id", h.GetTransaction, mw.Auth...)

	// Called by the payment gateway, authenticated by its signature only.
	g.POST("/webhook", h.Webhook)
}

func (h *WalletHandler) Balance(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	balance, err := h.svc.Balance(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance, Currency: models.DefaultCurrency})
}

func (h *WalletHandler) Load(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req dto.LoadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	t, err := h.svc.Load(c.Request().Context(), user, req.Amount, req.Currency)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToTransactionResponse(t))
}

func (h *WalletHandler) Transfer(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req dto.TransferRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.svc.Transfer(c.Request().Context(), user, req.RecipientEmail, req.Amount, req.Description)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.TransferResponse{
		Debit:  dto.ToTransactionResponse(result.Debit),
		Credit: dto.ToTransactionResponse(result.Credit),
	})
}

func (h *WalletHandler) Pay(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req dto.PayRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.svc.Pay(c.Request().Context(), user, service.PaymentInput{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		ReturnURL:   req.ReturnURL,
	})
	if err != nil {
		return httpError(err)
	}

	ref := ""
	if result.Transaction.Reference != nil {
		ref = *result.Transaction.Reference
	}
	return c.JSON(http.StatusOK, dto.PaymentResponse{
		TransactionID: result.Transaction.ID,
		PaymentURL:    result.PaymentURL,
		Reference:     ref,
		Status:        result.Transaction.Status,
		Message:       result.Message,
	})
}

func (h *WalletHandler) Webhook(c echo.Context) error {
	var req dto.WebhookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Signature == "" {
		req.Signature = c.Request().Header.Get(SignatureHeader)
	}

	result, err := h.svc.HandleWebhook(c.Request().Context(), service.WebhookInput{
		TransactionID: req.TransactionID,
		Status:        req.Status,
		Reference:     req.Reference,
		Signature:     req.Signature,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.WebhookResponse{
		TransactionID: result.TransactionID,
		Status:        result.Status,
		Duplicate:     result.Duplicate,
	})
}

func (h *WalletHandler) ListTransactions(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	txs, err := h.svc.ListTransactions(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dto.TransactionResponse, len(txs))
	for i := range txs {
		resp[i] = dto.ToTransactionResponse(&txs[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *WalletHandler) GetTransaction(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "transaction")
	if err != nil {
		return err
	}

	t, err := h.svc.GetTransaction(c.Request().Context(), user, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTransactionResponse(t))
}
