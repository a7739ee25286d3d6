package models

import (
	"time"

	"gorm.io/gorm"
)

type Hotel struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Code        string `gorm:"uniqueIndex;size:32;not null" json:"code"`
	Address     string `gorm:"size:255" json:"address"`
	City        string `gorm:"size:100" json:"city"`
	State       string `gorm:"size:100" json:"state"`
	Country     string `gorm:"size:100" json:"country"`
	ZipCode     string `gorm:"size:20" json:"zipCode"`
	Phone       string `gorm:"size:50" json:"phone"`
	Email       string `gorm:"size:150" json:"email"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HotelRef is the trimmed shape embedded in other responses.
type HotelRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

func (h Hotel) Ref() HotelRef {
	return HotelRef{ID: h.ID, Name: h.Name, Code: h.Code}
}
