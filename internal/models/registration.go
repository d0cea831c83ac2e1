package models

import "time"

type RegistrationStatus string

const (
	RegStatusPending   RegistrationStatus = "pending"
	RegStatusPaid      RegistrationStatus = "paid"
	RegStatusCancelled RegistrationStatus = "cancelled"
	RegStatusExpired   RegistrationStatus = "expired"
)

type AttendanceStatus string

const (
	AttendanceNotAttended AttendanceStatus = "not_attended"
	AttendanceAttended    AttendanceStatus = "attended"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Registration struct {
	ID               uint               `gorm:"primaryKey" json:"id"`
	FullName         string             `gorm:"not null" json:"full_name"`
	Email            string             `gorm:"not null;index" json:"email"`
	PhoneNumber      string             `gorm:"not null" json:"phone_number"`
	Gender           Gender             `gorm:"type:varchar(10);not null" json:"gender"`
	Age              int                `gorm:"not null" json:"age"`
	FoodAllergy      string             `gorm:"default:'-'" json:"food_allergy"`
	EventID          uint               `gorm:"not null;index" json:"event_id"`
	Status           RegistrationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AttendanceStatus AttendanceStatus   `gorm:"type:varchar(20);not null;default:'not_attended'" json:"attendance_status"`
	RegistrationCode string             `gorm:"uniqueIndex;not null" json:"registration_code"`
	QRCode           string             `json:"qr_code,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// Terminal reports whether the registration can no longer transition.
func (s RegistrationStatus) Terminal() bool {
	return s == RegStatusCancelled || s == RegStatusExpired
}

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}
