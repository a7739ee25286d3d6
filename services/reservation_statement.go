package services

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"hotelchain-backend/models"
)

// Statement is the printable folio for a reservation: room charges with a
// per-night breakdown, extra charges by category, payment history and the
// derived balance. It is a pure function of stored data.
type Statement struct {
	ReservationCode string    `json:"reservationCode"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`

	Hotel models.HotelRef `json:"hotel"`
	Guest struct {
		Name         string `json:"name"`
		Email        string `json:"email,omitempty"`
		Phone        string `json:"phone,omitempty"`
		Document     string `json:"document"`
		DocumentType string `json:"documentType"`
	} `json:"guest"`

	Stay struct {
		CheckInDate     time.Time  `json:"checkInDate"`
		CheckOutDate    time.Time  `json:"checkOutDate"`
		ActualCheckIn   *time.Time `json:"actualCheckIn,omitempty"`
		ActualCheckOut  *time.Time `json:"actualCheckOut,omitempty"`
		Nights          int        `json:"nights"`
		Adults          int        `json:"adults"`
		Children        int        `json:"children"`
		SpecialRequests string     `json:"specialRequests,omitempty"`
	} `json:"stay"`

	RoomCharges       []RoomChargeLine        `json:"roomCharges"`
	RoomTotal         float64                 `json:"roomTotal"`
	AdditionalCharges []ChargeCategorySummary `json:"additionalCharges"`
	ChargesTotal      float64                 `json:"chargesTotal"`
	Payments          []PaymentLine           `json:"payments"`
	Summary           StatementSummary        `json:"summary"`
}

type RoomChargeLine struct {
	RoomNumber     string      `json:"roomNumber"`
	RoomType       string      `json:"roomType"`
	DailyRate      float64     `json:"dailyRate"`
	Nights         int         `json:"nights"`
	Subtotal       float64     `json:"subtotal"`
	DailyBreakdown []DailyRate `json:"dailyBreakdown"`
}

type DailyRate struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

type ChargeCategorySummary struct {
	Category string       `json:"category"`
	Items    []ChargeItem `json:"items"`
	Total    float64      `json:"total"`
}

type ChargeItem struct {
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	Total       float64   `json:"total"`
	Date        time.Time `json:"date"`
}

type PaymentLine struct {
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Method      string    `json:"method"`
	Amount      float64   `json:"amount"`
	Reference   string    `json:"reference,omitempty"`
	Description string    `json:"description,omitempty"`
}

type StatementSummary struct {
	Subtotal          float64 `json:"subtotal"`
	AdditionalCharges float64 `json:"additionalCharges"`
	TotalCharges      float64 `json:"totalCharges"`
	TotalPayments     float64 `json:"totalPayments"`
	TotalRefunds      float64 `json:"totalRefunds"`
	Balance           float64 `json:"balance"`
	PaymentStatus     string  `json:"paymentStatus"`
}

// Statement builds the folio for one reservation. Repeated calls with no
// intervening writes yield identical output.
func (s *ReservationService) Statement(user models.AuthUser, id uint) (*Statement, error) {
	var reservation models.Reservation
	err := s.DB.
		Preload("Guest").
		Preload("Hotel").
		Preload("Rooms.Room.RoomType").
		Preload("Charges", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&reservation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !user.CanAccessHotel(reservation.HotelID) {
		return nil, ErrForbidden
	}

	var transactions []models.Transaction
	if err := s.DB.Where("reservation_id = ?", id).
		Order("created_at ASC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	nights := reservation.Nights()

	st := &Statement{
		ReservationCode: reservation.Code,
		Status:          reservation.Status,
		CreatedAt:       reservation.CreatedAt,
		Hotel:           reservation.Hotel.Ref(),
	}
	st.Guest.Name = reservation.Guest.FullName()
	st.Guest.Email = reservation.Guest.Email
	st.Guest.Phone = reservation.Guest.Phone
	st.Guest.Document = reservation.Guest.Document
	st.Guest.DocumentType = reservation.Guest.DocumentType

	st.Stay.CheckInDate = reservation.CheckInDate
	st.Stay.CheckOutDate = reservation.CheckOutDate
	st.Stay.ActualCheckIn = reservation.ActualCheckIn
	st.Stay.ActualCheckOut = reservation.ActualCheckOut
	st.Stay.Nights = nights
	st.Stay.Adults = reservation.Adults
	st.Stay.Children = reservation.Children
	st.Stay.SpecialRequests = reservation.SpecialRequests

	roomTotal := 0.0
	for _, rr := range reservation.Rooms {
		line := RoomChargeLine{
			RoomNumber: rr.Room.Number,
			RoomType:   rr.Room.RoomType.Name,
			DailyRate:  rr.DailyRate,
			Nights:     nights,
			Subtotal:   rr.DailyRate * float64(nights),
		}
		for i := 0; i < nights; i++ {
			day := reservation.CheckInDate.AddDate(0, 0, i)
			line.DailyBreakdown = append(line.DailyBreakdown, DailyRate{
				Date: day.Format("2006-01-02"),
				Rate: rr.DailyRate,
			})
		}
		roomTotal += line.Subtotal
		st.RoomCharges = append(st.RoomCharges, line)
	}
	st.RoomTotal = roomTotal

	byCategory := map[string]*ChargeCategorySummary{}
	chargesTotal := 0.0
	for _, charge := range reservation.Charges {
		summary, ok := byCategory[charge.Category]
		if !ok {
			summary = &ChargeCategorySummary{Category: charge.Category}
			byCategory[charge.Category] = summary
		}
		summary.Items = append(summary.Items, ChargeItem{
			Description: charge.Description,
			Quantity:    charge.Quantity,
			UnitPrice:   charge.Amount,
			Total:       charge.Total(),
			Date:        charge.CreatedAt,
		})
		summary.Total += charge.Total()
		chargesTotal += charge.Total()
	}
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		st.AdditionalCharges = append(st.AdditionalCharges, *byCategory[category])
	}
	st.ChargesTotal = chargesTotal

	totalPayments := 0.0
	totalRefunds := 0.0
	for _, t := range transactions {
		st.Payments = append(st.Payments, PaymentLine{
			Date:        t.CreatedAt,
			Type:        t.Type,
			Method:      t.PaymentMethod,
			Amount:      t.Amount,
			Reference:   t.Reference,
			Description: t.Description,
		})
		switch t.Type {
		case models.TransactionPayment:
			totalPayments += t.Amount
		case models.TransactionRefund:
			totalRefunds += t.Amount
		}
	}

	totalCharges := roomTotal + chargesTotal
	balance := totalCharges - totalPayments + totalRefunds

	st.Summary = StatementSummary{
		Subtotal:          roomTotal,
		AdditionalCharges: chargesTotal,
		TotalCharges:      totalCharges,
		TotalPayments:     totalPayments,
		TotalRefunds:      totalRefunds,
		Balance:           balance,
		PaymentStatus:     paymentStatusFor(balance, totalPayments),
	}

	return st, nil
}

func paymentStatusFor(balance, totalPayments float64) string {
	if balance <= 0 {
		return models.PaymentStatusPaid
	}
	if totalPayments > 0 {
		return models.PaymentStatusPartial
	}
	return models.PaymentStatusPending
}
