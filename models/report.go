package models

import (
	"time"

	"gorm.io/datatypes"
)

// Report is a persisted snapshot of a generated report. It is an audit
// record, not a cache; nothing invalidates it.
type Report struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Type      string    `gorm:"size:30;not null" json:"type"`
	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"not null" json:"endDate"`
	HotelID   *uint     `gorm:"index" json:"hotelId,omitempty"`

	Data datatypes.JSON `json:"data"`

	CreatedAt time.Time `json:"createdAt"`
}
