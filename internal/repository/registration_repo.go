package repository

import (
	"context"

	"github.com/prasetyow/event-registration-service/internal/models"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	FindByID(ctx context.Context, id uint) (*models.Registration, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Registration, error)
	FindByCode(ctx context.Context, code string) (*models.Registration, error)
	FindByEventID(ctx context.Context, eventID uint) ([]models.Registration, error)
	FindActiveByEmailAndEvent(ctx context.Context, tx *gorm.DB, email string, eventID uint) (*models.Registration, error)
	CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.RegistrationStatus) error
	UpdateQRCode(ctx context.Context, tx *gorm.DB, id uint, path string) error
	UpdateAttendance(ctx context.Context, id uint, status models.AttendanceStatus) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	GetDB() *gorm.DB
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *registrationRepository) Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	return tx.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepository) FindByID(ctx context.Context, id uint) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.WithContext(ctx).Preload("Event").First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// FindByIDForUpdate locks the registration row inside the given transaction so
// concurrent webhook deliveries serialize on the same record.
func (r *registrationRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Registration, error) {
	var reg models.Registration
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByCode(ctx context.Context, code string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.WithContext(ctx).Preload("Event").
		Where("registration_code = ?", code).
		First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByEventID(ctx context.Context, eventID uint) ([]models.Registration, error) {
	var regs []models.Registration
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

// FindActiveByEmailAndEvent returns a pending or paid registration for the
// same email and event, used as the duplicate-registration guard.
func (r *registrationRepository) FindActiveByEmailAndEvent(ctx context.Context, tx *gorm.DB, email string, eventID uint) (*models.Registration, error) {
	var reg models.Registration
	err := tx.WithContext(ctx).
		Where("email = ? AND event_id = ? AND status IN ?", email, eventID,
			[]models.RegistrationStatus{models.RegStatusPending, models.RegStatusPaid}).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) CodeExists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Registration{}).
		Where("registration_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.RegistrationStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *registrationRepository) UpdateQRCode(ctx context.Context, tx *gorm.DB, id uint, path string) error {
	return tx.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Update("qr_code", path).Error
}

func (r *registrationRepository) UpdateAttendance(ctx context.Context, id uint, status models.AttendanceStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("id = ?", id).
		Update("attendance_status", status).Error
}

func (r *registrationRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Registration{}, id).Error
}
