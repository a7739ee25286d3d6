package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomType struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	HotelID uint `gorm:"index;not null" json:"hotelId"`

	Name         string         `gorm:"size:100;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	BaseRate     float64        `gorm:"not null" json:"baseRate"`
	MaxOccupancy int            `gorm:"default:2" json:"maxOccupancy"`
	Amenities    datatypes.JSON `json:"amenities,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Hotel Hotel `gorm:"foreignKey:HotelID" json:"-"`
}
