package models

import "time"

type EventType string

const (
	TypePreEvent1 EventType = "pre_event_1"
	TypePreEvent2 EventType = "pre_event_2"
	TypeMainEvent EventType = "main_event"
)

type Event struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	Type               EventType `gorm:"type:varchar(20);not null" json:"type"`
	Date               time.Time `gorm:"not null" json:"date"`
	Quota              int       `gorm:"not null" json:"quota"`
	RegisteredCount    int       `gorm:"not null;default:0" json:"registered_count"`
	Price              float64   `gorm:"not null" json:"price"`
	Description        string    `json:"description,omitempty"`
	RequireFoodAllergy bool      `gorm:"not null;default:false" json:"require_food_allergy"`
	IsActive           bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Available reports whether the event still has unreserved capacity.
// Derived from quota/registered_count, never stored.
func (e *Event) Available() bool {
	return e.RegisteredCount < e.Quota
}

func (e *Event) RemainingSlots() int {
	if e.Quota <= e.RegisteredCount {
		return 0
	}
	return e.Quota - e.RegisteredCount
}

// CodePrefix is the registration-code prefix for this event's type.
func (e *Event) CodePrefix() string {
	switch e.Type {
	case TypePreEvent1:
		return "EVT-PRE1"
	case TypePreEvent2:
		return "EVT-PRE2"
	case TypeMainEvent:
		return "EVT-MAIN"
	default:
		return "EV"
	}
}

func (t EventType) Valid() bool {
	switch t {
	case TypePreEvent1, TypePreEvent2, TypeMainEvent:
		return true
	}
	return false
}
