package models

import "time"

// Transaction types and payment states.
const (
	TransactionPayment    = "PAYMENT"
	TransactionRefund     = "REFUND"
	TransactionAdjustment = "ADJUSTMENT"

	PaymentStatusPaid    = "PAID"
	PaymentStatusPartial = "PARTIAL"
	PaymentStatusPending = "PENDING"
)

// Transaction is an append-only ledger entry. There are no update or delete
// endpoints; deleting a reservation only nulls ReservationID, the financial
// history stays.
type Transaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID *uint `gorm:"index" json:"reservationId,omitempty"`
	HotelID       uint  `gorm:"index;not null" json:"hotelId"`

	Amount        float64 `gorm:"not null" json:"amount"`
	Type          string  `gorm:"size:20;not null" json:"type"`
	PaymentMethod string  `gorm:"size:30;default:CASH" json:"paymentMethod"`
	PaymentStatus string  `gorm:"size:20;default:PAID" json:"paymentStatus"`
	Reference     string  `gorm:"size:100" json:"reference,omitempty"`
	Description   string  `gorm:"size:255" json:"description,omitempty"`

	ProcessedByID uint `gorm:"index" json:"processedById"`

	CreatedAt time.Time `json:"createdAt"`

	Reservation *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
	Hotel       Hotel        `gorm:"foreignKey:HotelID" json:"-"`
	ProcessedBy User         `gorm:"foreignKey:ProcessedByID" json:"-"`
}
