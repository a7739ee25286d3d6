package models

import (
	"time"

	"gorm.io/gorm"
)

// Room operational statuses. Transitions between them are driven by the
// reservation lifecycle; MAINTENANCE is set manually by staff.
const (
	RoomAvailable   = "AVAILABLE"
	RoomReserved    = "RESERVED"
	RoomOccupied    = "OCCUPIED"
	RoomCleaning    = "CLEANING"
	RoomMaintenance = "MAINTENANCE"
)

type Room struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	HotelID    uint `gorm:"uniqueIndex:idx_rooms_hotel_number;not null" json:"hotelId"`
	RoomTypeID uint `gorm:"index;not null" json:"roomTypeId"`

	Number string `gorm:"uniqueIndex:idx_rooms_hotel_number;size:20;not null" json:"number"`
	Floor  int    `json:"floor"`
	Status string `gorm:"size:20;default:AVAILABLE" json:"status"`
	Notes  string `gorm:"type:text" json:"notes,omitempty"`

	// Soft delete flag: rooms referenced by history are never hard-deleted.
	IsActive bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
	Hotel    Hotel    `gorm:"foreignKey:HotelID" json:"-"`
}
