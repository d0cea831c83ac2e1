package models

import "time"

type PaymentMethod string

const (
	MethodBcaVA PaymentMethod = "bca_va"
	MethodQris  PaymentMethod = "qris"
	MethodFree  PaymentMethod = "free"
)

type PaymentStatus string

const (
	PayStatusPending PaymentStatus = "pending"
	PayStatusSuccess PaymentStatus = "success"
	PayStatusFailed  PaymentStatus = "failed"
	PayStatusExpired PaymentStatus = "expired"
)

type Payment struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	RegistrationID uint          `gorm:"not null;index" json:"registration_id"`
	Amount         float64       `gorm:"not null" json:"amount"`
	Method         PaymentMethod `gorm:"type:varchar(10);not null" json:"method"`
	Status         PaymentStatus `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	OrderID        string        `gorm:"uniqueIndex" json:"order_id,omitempty"`
	TransactionID  string        `json:"transaction_id,omitempty"`
	RawResponse    string        `gorm:"type:text" json:"-"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
	ExpiresAt      *time.Time    `json:"expires_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Registration *Registration `gorm:"foreignKey:RegistrationID" json:"registration,omitempty"`
}
