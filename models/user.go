package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is a closed, totally ordered hierarchy. Comparison goes through
// Level(); there is no dynamic role registration.
type Role string

const (
	RoleSuperAdmin   Role = "SUPER_ADMIN"
	RoleHotelAdmin   Role = "HOTEL_ADMIN"
	RoleManager      Role = "MANAGER"
	RoleReceptionist Role = "RECEPTIONIST"
	RoleStaff        Role = "STAFF"
)

var roleLevels = map[Role]int{
	RoleSuperAdmin:   5,
	RoleHotelAdmin:   4,
	RoleManager:      3,
	RoleReceptionist: 2,
	RoleStaff:        1,
}

func (r Role) Level() int {
	return roleLevels[r]
}

func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email     string `gorm:"uniqueIndex;size:150;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"`
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Phone     string `gorm:"size:50" json:"phone,omitempty"`
	Role      Role   `gorm:"size:20;not null" json:"role"`

	// Nil only for SUPER_ADMIN, who sees every hotel.
	HotelID *uint `gorm:"index" json:"hotelId"`

	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}

// AuthUser is the identity resolved from a request credential. Every
// operation receives it explicitly; there is no ambient current-user state.
type AuthUser struct {
	ID      uint  `json:"id"`
	Email   string `json:"email"`
	Role    Role  `json:"role"`
	HotelID *uint `json:"hotelId"`
}

// HasMinimumRole reports whether u's role ordinal is at least min's.
func (u AuthUser) HasMinimumRole(min Role) bool {
	return u.Role.Level() >= min.Level()
}

// CanAccessHotel reports whether u may touch data belonging to hotelID.
func (u AuthUser) CanAccessHotel(hotelID uint) bool {
	if u.Role == RoleSuperAdmin {
		return true
	}
	return u.HotelID != nil && *u.HotelID == hotelID
}
