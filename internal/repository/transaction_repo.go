package repository

import (
	"context"

	"github.com/Eursukkul/nexo-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *models.WalletTransaction) error
	FindByID(ctx context.Context, id uint) (*models.WalletTransaction, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.WalletTransaction, error)
	// FindLatest returns gorm.ErrRecordNotFound when the user has no ledger rows.
	FindLatest(ctx context.Context, tx *gorm.DB, userID uint) (*models.WalletTransaction, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.WalletTransaction, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.TransactionStatus) error
	// UpdateStatusAndReference returns gorm.ErrDuplicatedKey when another row
	// already holds reference.
	UpdateStatusAndReference(ctx context.Context, tx *gorm.DB, id uint, status models.TransactionStatus, reference string) error
	SetReference(ctx context.Context, tx *gorm.DB, id uint, reference string) error
	// MarkWebhookProcessed returns gorm.ErrDuplicatedKey when the
	// (transaction, status) pair was already recorded.
	MarkWebhookProcessed(ctx context.Context, tx *gorm.DB, event *models.ProcessedWebhookEvent) error
	IsWebhookProcessed(ctx context.Context, tx *gorm.DB, transactionID uint, status models.TransactionStatus) (bool, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *gorm.DB, t *models.WalletTransaction) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.WalletTransaction, error) {
	var t models.WalletTransaction
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.WalletTransaction, error) {
	var t models.WalletTransaction
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindLatest orders by id: writes are serialized per user by the user row
// lock, so id order is commit order regardless of host clocks.
func (r *transactionRepository) FindLatest(ctx context.Context, tx *gorm.DB, userID uint) (*models.WalletTransaction, error) {
	var t models.WalletTransaction
	err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) FindByUserID(ctx context.Context, userID uint) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.TransactionStatus) error {
	return tx.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *transactionRepository) UpdateStatusAndReference(ctx context.Context, tx *gorm.DB, id uint, status models.TransactionStatus, reference string) error {
	return tx.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "reference": reference}).Error
}

func (r *transactionRepository) SetReference(ctx context.Context, tx *gorm.DB, id uint, reference string) error {
	return tx.WithContext(ctx).
		Model(&models.WalletTransaction{}).
		Where("id = ?", id).
		Update("reference", reference).Error
}

func (r *transactionRepository) MarkWebhookProcessed(ctx context.Context, tx *gorm.DB, event *models.ProcessedWebhookEvent) error {
	return tx.WithContext(ctx).Create(event).Error
}

func (r *transactionRepository) IsWebhookProcessed(ctx context.Context, tx *gorm.DB, transactionID uint, status models.TransactionStatus) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.ProcessedWebhookEvent{}).
		Where("transaction_id = ? AND status = ?", transactionID, status).
		Count(&count).Error
	return count > 0, err
}
