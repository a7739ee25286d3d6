package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation lifecycle statuses.
const (
	ReservationPending    = "PENDING"
	ReservationConfirmed  = "CONFIRMED"
	ReservationCheckedIn  = "CHECKED_IN"
	ReservationCheckedOut = "CHECKED_OUT"
	ReservationCancelled  = "CANCELLED"
	ReservationNoShow     = "NO_SHOW"
)

// NonBlockingStatuses are the terminal states that release a room from the
// overlap check: a reservation in one of these never holds inventory.
var NonBlockingStatuses = []string{ReservationCancelled, ReservationCheckedOut, ReservationNoShow}

// IsTerminalStatus reports whether no further transition is allowed from s.
func IsTerminalStatus(s string) bool {
	switch s {
	case ReservationCheckedOut, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code    string `gorm:"uniqueIndex;size:32;not null" json:"code"`
	GuestID uint   `gorm:"index;not null" json:"guestId"`
	HotelID uint   `gorm:"index;not null" json:"hotelId"`

	CheckInDate    time.Time  `gorm:"not null" json:"checkInDate"`
	CheckOutDate   time.Time  `gorm:"not null" json:"checkOutDate"`
	ActualCheckIn  *time.Time `json:"actualCheckIn,omitempty"`
	ActualCheckOut *time.Time `json:"actualCheckOut,omitempty"`

	Adults   int    `gorm:"default:1" json:"adults"`
	Children int    `gorm:"default:0" json:"children"`
	Status   string `gorm:"size:20;default:PENDING;index" json:"status"`

	TotalAmount float64 `gorm:"default:0" json:"totalAmount"`
	PaidAmount  float64 `gorm:"default:0" json:"paidAmount"`

	Notes           string `gorm:"type:text" json:"notes,omitempty"`
	SpecialRequests string `gorm:"type:text" json:"specialRequests,omitempty"`

	CreatedByID uint `gorm:"index" json:"createdById"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Guest     Guest             `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Hotel     Hotel             `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	Rooms     []ReservationRoom `gorm:"foreignKey:ReservationID" json:"rooms"`
	Charges   []Charge          `gorm:"foreignKey:ReservationID" json:"charges,omitempty"`
	CreatedBy User              `gorm:"foreignKey:CreatedByID" json:"-"`
}

// Nights is the billed night count, rounding partial days up.
func (r Reservation) Nights() int {
	return NightsBetween(r.CheckInDate, r.CheckOutDate)
}

func NightsBetween(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	n := int(hours / 24)
	if float64(n*24) < hours {
		n++
	}
	return n
}

// ReservationRoom joins a reservation to one booked room, snapshotting the
// nightly rate at booking time so later RoomType rate changes never affect
// existing reservations.
type ReservationRoom struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	ReservationID uint    `gorm:"index;not null" json:"reservationId"`
	RoomID        uint    `gorm:"index;not null" json:"roomId"`
	DailyRate     float64 `gorm:"not null" json:"dailyRate"`

	CreatedAt time.Time `json:"createdAt"`

	Room Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

type Charge struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ReservationID uint `gorm:"index;not null" json:"reservationId"`

	Description string  `gorm:"size:255;not null" json:"description"`
	Category    string  `gorm:"size:50;default:OTHER" json:"category"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Quantity    int     `gorm:"default:1" json:"quantity"`

	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c Charge) Total() float64 {
	return c.Amount * float64(c.Quantity)
}
