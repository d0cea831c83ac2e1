package repository

import (
	"context"

	"github.com/prasetyow/event-registration-service/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindLatestByRegistration(ctx context.Context, registrationID uint) (*models.Payment, error)
	FindPendingByRegistration(ctx context.Context, tx *gorm.DB, registrationID uint) (*models.Payment, error)
	FindByOrderIDForUpdate(ctx context.Context, tx *gorm.DB, orderID string) (*models.Payment, error)
	Updates(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error
	DeleteByRegistration(ctx context.Context, tx *gorm.DB, registrationID uint) error
	GetDB() *gorm.DB
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *paymentRepository) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Registration").
		Preload("Registration.Event").
		First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindLatestByRegistration(ctx context.Context, registrationID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Registration").
		Preload("Registration.Event").
		Where("registration_id = ?", registrationID).
		Order("created_at DESC").
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindPendingByRegistration(ctx context.Context, tx *gorm.DB, registrationID uint) (*models.Payment, error) {
	var payment models.Payment
	err := tx.WithContext(ctx).
		Where("registration_id = ? AND status = ?", registrationID, models.PayStatusPending).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByOrderIDForUpdate locks the payment row inside the given transaction so
// duplicate or concurrent webhook deliveries for the same order serialize.
func (r *paymentRepository) FindByOrderIDForUpdate(ctx context.Context, tx *gorm.DB, orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		Where("order_id = ?", orderID).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Updates(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	return tx.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *paymentRepository) DeleteByRegistration(ctx context.Context, tx *gorm.DB, registrationID uint) error {
	return tx.WithContext(ctx).
		Where("registration_id = ?", registrationID).
		Delete(&models.Payment{}).Error
}
