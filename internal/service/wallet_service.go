package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Eursukkul/nexo-service/internal/events"
	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/repository"
	"github.com/Eursukkul/nexo-service/pkg/logger"
	"github.com/Eursukkul/nexo-service/pkg/payment"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentGateway interface {
	CreatePayment(ctx context.Context, req payment.Request) (*payment.Session, error)
	VerifyWebhook(transactionID uint, status, reference, signature string) bool
}

type PaymentInput struct {
	Amount      decimal.Decimal
	Currency    string
	Description string
	ReturnURL   string
}

type PaymentResult struct {
	Transaction *models.WalletTransaction
	PaymentURL  string
	Message     string
}

type TransferResult struct {
	Debit  *models.WalletTransaction
	Credit *models.WalletTransaction
}

type WebhookInput struct {
	TransactionID uint
	Status        string
	Reference     string
	Signature     string
}

type WebhookResult struct {
	TransactionID uint
	Status        models.TransactionStatus
	Duplicate     bool
}

type WalletService interface {
	Balance(ctx context.Context, actor *models.User) (decimal.Decimal, error)
	Load(ctx context.Context, actor *models.User, amount decimal.Decimal, currency string) (*models.WalletTransaction, error)
	Transfer(ctx context.Context, actor *models.User, recipientEmail string, amount decimal.Decimal, description string) (*TransferResult, error)
	Pay(ctx context.Context, actor *models.User, in PaymentInput) (*PaymentResult, error)
	HandleWebhook(ctx context.Context, in WebhookInput) (*WebhookResult, error)
	ListTransactions(ctx context.Context, actor *models.User) ([]models.WalletTransaction, error)
	GetTransaction(ctx context.Context, actor *models.User, id uint) (*models.WalletTransaction, error)
}

type walletService struct {
	tx        repository.Transactor
	users     repository.UserRepository
	txs       repository.TransactionRepository
	gateway   PaymentGateway
	publisher EventPublisher
	log       *logger.Logger
}

func NewWalletService(tx repository.Transactor, users repository.UserRepository, txs repository.TransactionRepository,
	gateway PaymentGateway, publisher EventPublisher, log *logger.Logger) WalletService {
	return &walletService{
		tx:        tx,
		users:     users,
		txs:       txs,
		gateway:   gateway,
		publisher: publisher,
		log:       log,
	}
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return models.DefaultCurrency
	}
	return c
}

// balanceOf is the balance_after of the user's most recent ledger row, or
// zero for an empty ledger.
func (s *walletService) balanceOf(ctx context.Context, tx *gorm.DB, userID uint) (decimal.Decimal, error) {
	latest, err := s.txs.FindLatest(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("latest transaction: %w", err)
	}
	return latest.BalanceAfter, nil
}

// lockUser takes the per-user ledger lock for the rest of tx.
func (s *walletService) lockUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	if _, err := s.users.FindByIDForUpdate(ctx, tx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lock user %d: %w", userID, err)
	}
	return nil
}

func (s *walletService) Balance(ctx context.Context, actor *models.User) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		var err error
		balance, err = s.balanceOf(ctx, tx, actor.ID)
		return err
	})
	return balance, err
}

func (s *walletService) Load(ctx context.Context, actor *models.User, amount decimal.Decimal, currency string) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var result *models.WalletTransaction

	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := s.lockUser(ctx, tx, actor.ID); err != nil {
			return err
		}
		before, err := s.balanceOf(ctx, tx, actor.ID)
		if err != nil {
			return err
		}

		row := &models.WalletTransaction{
			UserID:        actor.ID,
			Type:          models.TxDeposit,
			Amount:        amount,
			Currency:      normalizeCurrency(currency),
			Status:        models.TxCompleted,
			BalanceBefore: before,
			BalanceAfter:  before.Add(models.TxDeposit.Delta(amount)),
			Description:   "Wallet load",
		}
		if err := s.txs.Create(ctx, tx, row); err != nil {
			return fmt.Errorf("create deposit: %w", err)
		}
		result = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("wallet loaded", "user_id", actor.ID, "transaction_id", result.ID, "amount", amount.String())
	return result, nil
}

func (s *walletService) Transfer(ctx context.Context, actor *models.User, recipientEmail string, amount decimal.Decimal, description string) (*TransferResult, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	recipient, err := s.users.FindByEmail(ctx, normalizeEmail(recipientEmail))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("lookup recipient: %w", err)
	}
	if recipient.ID == actor.ID {
		return nil, ErrSelfTransfer
	}

	if description == "" {
		description = fmt.Sprintf("Transfer to %s", recipient.Email)
	}

	result := &TransferResult{}

	err = s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		// Ascending id order keeps two opposite transfers from deadlocking.
		first, second := actor.ID, recipient.ID
		if second < first {
			first, second = second, first
		}
		if err := s.lockUser(ctx, tx, first); err != nil {
			return err
		}
		if err := s.lockUser(ctx, tx, second); err != nil {
			return err
		}

		senderBefore, err := s.balanceOf(ctx, tx, actor.ID)
		if err != nil {
			return err
		}
		if senderBefore.LessThan(amount) {
			return ErrInsufficientFunds
		}
		recipientBefore, err := s.balanceOf(ctx, tx, recipient.ID)
		if err != nil {
			return err
		}

		recipientID, senderID := recipient.ID, actor.ID
		debit := &models.WalletTransaction{
			UserID:         actor.ID,
			Type:           models.TxTransferOut,
			Amount:         amount,
			Currency:       models.DefaultCurrency,
			Status:         models.TxCompleted,
			BalanceBefore:  senderBefore,
			BalanceAfter:   senderBefore.Add(models.TxTransferOut.Delta(amount)),
			Description:    description,
			CounterpartyID: &recipientID,
		}
		if err := s.txs.Create(ctx, tx, debit); err != nil {
			return fmt.Errorf("create debit: %w", err)
		}

		credit := &models.WalletTransaction{
			UserID:         recipient.ID,
			Type:           models.TxTransferIn,
			Amount:         amount,
			Currency:       models.DefaultCurrency,
			Status:         models.TxCompleted,
			BalanceBefore:  recipientBefore,
			BalanceAfter:   recipientBefore.Add(models.TxTransferIn.Delta(amount)),
			Description:    fmt.Sprintf("Transfer from %s", actor.Email),
			CounterpartyID: &senderID,
		}
		if err := s.txs.Create(ctx, tx, credit); err != nil {
			return fmt.Errorf("create credit: %w", err)
		}

		result.Debit, result.Credit = debit, credit
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("wallet transfer", "from_user_id", actor.ID, "to_user_id", recipient.ID, "amount", amount.String())
	return result, nil
}

func (s *walletService) Pay(ctx context.Context, actor *models.User, in PaymentInput) (*PaymentResult, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	description := in.Description
	if description == "" {
		description = "Nexo Paisa payment"
	}

	var row *models.WalletTransaction

	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		if err := s.lockUser(ctx, tx, actor.ID); err != nil {
			return err
		}
		balance, err := s.balanceOf(ctx, tx, actor.ID)
		if err != nil {
			return err
		}

		row = &models.WalletTransaction{
			UserID:        actor.ID,
			Type:          models.TxPayment,
			Amount:        in.Amount,
			Currency:      normalizeCurrency(in.Currency),
			Status:        models.TxPending,
			BalanceBefore: balance,
			BalanceAfter:  balance.Add(models.TxPayment.Delta(in.Amount)),
			Description:   description,
		}
		if err := s.txs.Create(ctx, tx, row); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.CreatePayment(ctx, payment.Request{
		TransactionID: row.ID,
		Amount:        row.Amount,
		Currency:      row.Currency,
		Description:   row.Description,
		ReturnURL:     in.ReturnURL,
	})
	if err != nil {
		s.log.Error("payment gateway failed", "transaction_id", row.ID, "error", err)
		if markErr := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
			return s.txs.UpdateStatus(ctx, tx, row.ID, models.TxFailed)
		}); markErr != nil {
			s.log.Error("failed to mark payment failed", "transaction_id", row.ID, "error", markErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrPaymentGateway, err)
	}

	if err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		return s.txs.SetReference(ctx, tx, row.ID, session.Reference)
	}); err != nil {
		return nil, fmt.Errorf("store payment reference: %w", err)
	}
	ref := session.Reference
	row.Reference = &ref

	s.log.Info("payment initiated", "user_id", actor.ID, "transaction_id", row.ID, "reference", ref)
	return &PaymentResult{Transaction: row, PaymentURL: session.PaymentURL, Message: session.Message}, nil
}

func (s *walletService) HandleWebhook(ctx context.Context, in WebhookInput) (*WebhookResult, error) {
	status := models.TransactionStatus(in.Status)
	if !status.Terminal() {
		return nil, ErrInvalidTxStatus
	}
	if !s.gateway.VerifyWebhook(in.TransactionID, in.Status, in.Reference, in.Signature) {
		return nil, ErrInvalidSignature
	}

	result := &WebhookResult{TransactionID: in.TransactionID, Status: status}
	var row *models.WalletTransaction

	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		var err error
		row, err = s.txs.FindByIDForUpdate(ctx, tx, in.TransactionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}
		processed, err := s.txs.IsWebhookProcessed(ctx, tx, row.ID, status)
		if err != nil {
			return err
		}
		if processed {
			result.Duplicate = true
			return nil
		}

		if row.Status != status {
			if row.Status.Terminal() {
				return fmt.Errorf("%w: %s", ErrTransactionSettled, row.Status)
			}
			if err := s.settle(ctx, tx, row, status, in.Reference); err != nil {
				return err
			}
		} else {
			result.Duplicate = true
		}

		err = s.txs.MarkWebhookProcessed(ctx, tx, &models.ProcessedWebhookEvent{
			TransactionID: row.ID,
			Status:        status,
			Reference:     in.Reference,
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			result.Duplicate = true
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if result.Duplicate {
		s.log.Info("duplicate webhook ignored", "transaction_id", in.TransactionID, "status", status)
		return result, nil
	}

	row.Status = status
	s.log.Info("payment status updated", "transaction_id", row.ID, "status", status)

	email := ""
	if owner, err := s.users.FindByID(ctx, row.UserID); err == nil {
		email = owner.Email
	}
	publish(ctx, s.publisher, s.log, events.WalletPaymentUpdated, events.PaymentEvent{
		TransactionID: row.ID,
		UserID:        row.UserID,
		Email:         email,
		Status:        string(status),
		Amount:        row.Amount,
		Currency:      row.Currency,
		Reference:     in.Reference,
	})

	return result, nil
}

// settle writes the gateway's final status and, when given, its reference.
func (s *walletService) settle(ctx context.Context, tx *gorm.DB, row *models.WalletTransaction, status models.TransactionStatus, reference string) error {
	if reference == "" {
		return s.txs.UpdateStatus(ctx, tx, row.ID, status)
	}
	err := s.txs.UpdateStatusAndReference(ctx, tx, row.ID, status, reference)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrReferenceTaken
	}
	if err != nil {
		return err
	}
	row.Reference = &reference
	return nil
}

func (s *walletService) ListTransactions(ctx context.Context, actor *models.User) ([]models.WalletTransaction, error) {
	return s.txs.FindByUserID(ctx, actor.ID)
}

func (s *walletService) GetTransaction(ctx context.Context, actor *models.User, id uint) (*models.WalletTransaction, error) {
	t, err := s.txs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	if !actor.CanAccess(t.UserID) {
		return nil, ErrForbidden
	}
	return t, nil
}
