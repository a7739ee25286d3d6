package services

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotelchain-backend/models"
)

// Report types.
const (
	ReportOccupancy    = "occupancy"
	ReportRevenue      = "revenue"
	ReportReservations = "reservations"
	ReportFinancial    = "financial"
)

// ReportService computes read-side aggregates over a date range. Reports
// never mutate domain state; Save only persists a snapshot for later
// retrieval.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

type ReportPeriod struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// resolveScope forces non-super admins onto their own hotel. A nil return
// with ok=true means chain-wide (SUPER_ADMIN without a filter).
func (s *ReportService) resolveScope(user models.AuthUser, hotelID *uint) (*uint, bool) {
	if user.Role != models.RoleSuperAdmin {
		if user.HotelID == nil {
			return nil, false
		}
		return user.HotelID, true
	}
	return hotelID, true
}

// Generate computes one report. Unknown types are a validation failure.
func (s *ReportService) Generate(user models.AuthUser, reportType string, hotelID *uint, start, end time.Time) (interface{}, error) {
	scope, ok := s.resolveScope(user, hotelID)
	if !ok {
		return nil, validationErrorf("caller has no hotel assignment")
	}
	if end.Before(start) {
		return nil, validationErrorf("end date must not precede start date")
	}

	switch reportType {
	case ReportOccupancy:
		return s.occupancyReport(scope, start, end)
	case ReportRevenue:
		return s.revenueReport(scope, start, end)
	case ReportReservations:
		return s.reservationsReport(scope, start, end)
	case ReportFinancial:
		return s.financialReport(scope, start, end)
	}
	return nil, validationErrorf("invalid report type %q", reportType)
}

// Save generates a report and persists it as a named snapshot.
func (s *ReportService) Save(user models.AuthUser, reportType string, hotelID *uint, start, end time.Time) (*models.Report, error) {
	data, err := s.Generate(user, reportType, hotelID, start, end)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}

	scope, _ := s.resolveScope(user, hotelID)
	report := models.Report{
		Type:      reportType,
		StartDate: start,
		EndDate:   end,
		HotelID:   scope,
		Data:      datatypes.JSON(payload),
	}
	if err := s.DB.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return &report, nil
}

func scoped(q *gorm.DB, hotelID *uint) *gorm.DB {
	if hotelID != nil {
		return q.Where("hotel_id = ?", *hotelID)
	}
	return q
}

func daysIn(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

type DailyOccupancy struct {
	Date          string `json:"date"`
	Occupancy     int    `json:"occupancy"`
	RoomsOccupied int    `json:"roomsOccupied"`
}

type OccupancyReport struct {
	Type                 string           `json:"type"`
	Period               ReportPeriod     `json:"period"`
	TotalRooms           int64            `json:"totalRooms"`
	AverageOccupancy     int              `json:"averageOccupancy"`
	DailyOccupancy       []DailyOccupancy `json:"dailyOccupancy"`
	OccupancyByDayOfWeek [7]int           `json:"occupancyByDayOfWeek"`
	PeakOccupancy        int              `json:"peakOccupancy"`
	LowestOccupancy      int              `json:"lowestOccupancy"`
}

func (s *ReportService) occupancyReport(hotelID *uint, start, end time.Time) (*OccupancyReport, error) {
	var totalRooms int64
	if err := scoped(s.DB.Model(&models.Room{}), hotelID).
		Where("is_active = ?", true).
		Count(&totalRooms).Error; err != nil {
		return nil, err
	}

	var reservations []models.Reservation
	q := scoped(s.DB.Model(&models.Reservation{}), hotelID).
		Where("status IN ?", []string{models.ReservationConfirmed, models.ReservationCheckedIn, models.ReservationCheckedOut}).
		Where("check_in_date <= ? AND check_out_date >= ?", end, start)
	if err := q.Preload("Rooms").Find(&reservations).Error; err != nil {
		return nil, err
	}

	report := &OccupancyReport{
		Type:   ReportOccupancy,
		Period: ReportPeriod{StartDate: start, EndDate: end},
	}
	report.TotalRooms = totalRooms

	days := daysIn(start, end)
	var weekdayTotals, weekdayCounts [7]int
	occupancySum := 0

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)

		occupied := 0
		for _, r := range reservations {
			// A stay covers [checkIn, checkOut): the check-out day is not
			// an occupied night.
			if !day.Before(r.CheckInDate) && day.Before(r.CheckOutDate) {
				occupied += len(r.Rooms)
			}
		}

		pct := 0
		if totalRooms > 0 {
			pct = int(math.Round(float64(occupied) / float64(totalRooms) * 100))
		}
		report.DailyOccupancy = append(report.DailyOccupancy, DailyOccupancy{
			Date:          day.Format("2006-01-02"),
			Occupancy:     pct,
			RoomsOccupied: occupied,
		})

		weekday := int(day.Weekday())
		weekdayTotals[weekday] += pct
		weekdayCounts[weekday]++
		occupancySum += pct
	}

	if len(report.DailyOccupancy) > 0 {
		report.AverageOccupancy = int(math.Round(float64(occupancySum) / float64(len(report.DailyOccupancy))))
		report.PeakOccupancy = report.DailyOccupancy[0].Occupancy
		report.LowestOccupancy = report.DailyOccupancy[0].Occupancy
		for _, d := range report.DailyOccupancy {
			if d.Occupancy > report.PeakOccupancy {
				report.PeakOccupancy = d.Occupancy
			}
			if d.Occupancy < report.LowestOccupancy {
				report.LowestOccupancy = d.Occupancy
			}
		}
	}
	for i := range weekdayTotals {
		if weekdayCounts[i] > 0 {
			report.OccupancyByDayOfWeek[i] = int(math.Round(float64(weekdayTotals[i]) / float64(weekdayCounts[i])))
		}
	}

	return report, nil
}

type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type HotelRevenue struct {
	HotelID   uint    `json:"hotelId"`
	HotelName string  `json:"hotelName"`
	Revenue   float64 `json:"revenue"`
}

type RevenueReport struct {
	Type               string             `json:"type"`
	Period             ReportPeriod       `json:"period"`
	TotalRevenue       float64            `json:"totalRevenue"`
	TotalRefunds       float64            `json:"totalRefunds"`
	NetRevenue         float64            `json:"netRevenue"`
	TransactionCount   int                `json:"transactionCount"`
	AverageTransaction float64            `json:"averageTransaction"`
	RevenueByMethod    map[string]float64 `json:"revenueByMethod"`
	DailyRevenue       []DailyRevenue     `json:"dailyRevenue"`
	RevenueByHotel     []HotelRevenue     `json:"revenueByHotel,omitempty"`
}

func (s *ReportService) revenueReport(hotelID *uint, start, end time.Time) (*RevenueReport, error) {
	var transactions []models.Transaction
	if err := scoped(s.DB.Model(&models.Transaction{}), hotelID).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	report := &RevenueReport{
		Type:            ReportRevenue,
		Period:          ReportPeriod{StartDate: start, EndDate: end},
		RevenueByMethod: map[string]float64{},
	}
	report.TransactionCount = len(transactions)

	paymentCount := 0
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionPayment:
			report.TotalRevenue += t.Amount
			report.RevenueByMethod[t.PaymentMethod] += t.Amount
			paymentCount++
		case models.TransactionRefund:
			report.TotalRefunds += t.Amount
		}
	}
	report.NetRevenue = report.TotalRevenue - report.TotalRefunds
	if paymentCount > 0 {
		report.AverageTransaction = math.Round(report.TotalRevenue / float64(paymentCount))
	}

	days := daysIn(start, end)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		next := day.AddDate(0, 0, 1)

		revenue := 0.0
		for _, t := range transactions {
			if t.Type == models.TransactionPayment && !t.CreatedAt.Before(day) && t.CreatedAt.Before(next) {
				revenue += t.Amount
			}
		}
		report.DailyRevenue = append(report.DailyRevenue, DailyRevenue{
			Date:    day.Format("2006-01-02"),
			Revenue: revenue,
		})
	}

	// Chain-wide runs also break revenue down per hotel.
	if hotelID == nil {
		type hotelSum struct {
			HotelID uint
			Total   float64
		}
		var sums []hotelSum
		if err := s.DB.Model(&models.Transaction{}).
			Select("hotel_id, SUM(amount) AS total").
			Where("type = ? AND created_at >= ? AND created_at <= ?", models.TransactionPayment, start, end).
			Group("hotel_id").
			Scan(&sums).Error; err != nil {
			return nil, err
		}
		for _, sum := range sums {
			var hotel models.Hotel
			name := "Unknown"
			if err := s.DB.Select("name").First(&hotel, sum.HotelID).Error; err == nil {
				name = hotel.Name
			}
			report.RevenueByHotel = append(report.RevenueByHotel, HotelRevenue{
				HotelID:   sum.HotelID,
				HotelName: name,
				Revenue:   sum.Total,
			})
		}
	}

	return report, nil
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ReservationsReport struct {
	Type                    string         `json:"type"`
	Period                  ReportPeriod   `json:"period"`
	TotalReservations       int            `json:"totalReservations"`
	StatusBreakdown         map[string]int `json:"statusBreakdown"`
	AverageStay             float64        `json:"averageStay"`
	TotalAmount             float64        `json:"totalAmount"`
	PaidAmount              float64        `json:"paidAmount"`
	OutstandingAmount       float64        `json:"outstandingAmount"`
	AverageReservationValue float64        `json:"averageReservationValue"`
	DailyReservations       []DailyCount   `json:"dailyReservations"`
	CancellationRate        int            `json:"cancellationRate"`
	NoShowRate              int            `json:"noShowRate"`
}

func (s *ReportService) reservationsReport(hotelID *uint, start, end time.Time) (*ReservationsReport, error) {
	var reservations []models.Reservation
	if err := scoped(s.DB.Model(&models.Reservation{}), hotelID).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	report := &ReservationsReport{
		Type:   ReportReservations,
		Period: ReportPeriod{StartDate: start, EndDate: end},
		StatusBreakdown: map[string]int{
			models.ReservationPending:    0,
			models.ReservationConfirmed:  0,
			models.ReservationCheckedIn:  0,
			models.ReservationCheckedOut: 0,
			models.ReservationCancelled:  0,
			models.ReservationNoShow:     0,
		},
	}
	report.TotalReservations = len(reservations)

	completedNights := 0
	completedCount := 0
	for _, r := range reservations {
		report.StatusBreakdown[r.Status]++
		report.TotalAmount += r.TotalAmount
		report.PaidAmount += r.PaidAmount
		if r.Status == models.ReservationCheckedOut {
			completedNights += r.Nights()
			completedCount++
		}
	}
	report.OutstandingAmount = report.TotalAmount - report.PaidAmount

	if completedCount > 0 {
		report.AverageStay = math.Round(float64(completedNights)/float64(completedCount)*10) / 10
	}
	if len(reservations) > 0 {
		report.AverageReservationValue = math.Round(report.TotalAmount / float64(len(reservations)))
		report.CancellationRate = int(math.Round(float64(report.StatusBreakdown[models.ReservationCancelled]) / float64(len(reservations)) * 100))
		report.NoShowRate = int(math.Round(float64(report.StatusBreakdown[models.ReservationNoShow]) / float64(len(reservations)) * 100))
	}

	days := daysIn(start, end)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		next := day.AddDate(0, 0, 1)

		count := 0
		for _, r := range reservations {
			if !r.CreatedAt.Before(day) && r.CreatedAt.Before(next) {
				count++
			}
		}
		report.DailyReservations = append(report.DailyReservations, DailyCount{
			Date:  day.Format("2006-01-02"),
			Count: count,
		})
	}

	return report, nil
}

type FinancialReport struct {
	Type    string       `json:"type"`
	Period  ReportPeriod `json:"period"`
	Summary struct {
		TotalPayments    float64 `json:"totalPayments"`
		TotalRefunds     float64 `json:"totalRefunds"`
		TotalAdjustments float64 `json:"totalAdjustments"`
		NetRevenue       float64 `json:"netRevenue"`
	} `json:"summary"`
	TransactionCounts struct {
		Payments    int `json:"payments"`
		Refunds     int `json:"refunds"`
		Adjustments int `json:"adjustments"`
	} `json:"transactionCounts"`
	ReservationFinancials struct {
		TotalBilled    float64 `json:"totalBilled"`
		TotalCollected float64 `json:"totalCollected"`
		Outstanding    float64 `json:"outstanding"`
	} `json:"reservationFinancials"`
	PaymentStatusBreakdown map[string]int     `json:"paymentStatusBreakdown"`
	ChargesByCategory      map[string]float64 `json:"chargesByCategory"`
	AveragePaymentAmount   float64            `json:"averagePaymentAmount"`
}

func (s *ReportService) financialReport(hotelID *uint, start, end time.Time) (*FinancialReport, error) {
	var transactions []models.Transaction
	if err := scoped(s.DB.Model(&models.Transaction{}), hotelID).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	var reservations []models.Reservation
	if err := scoped(s.DB.Model(&models.Reservation{}), hotelID).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	chargeQuery := s.DB.Model(&models.Charge{}).
		Joins("JOIN reservations ON reservations.id = charges.reservation_id")
	if hotelID != nil {
		chargeQuery = chargeQuery.Where("reservations.hotel_id = ?", *hotelID)
	}
	var charges []models.Charge
	if err := chargeQuery.Find(&charges).Error; err != nil {
		return nil, err
	}

	report := &FinancialReport{
		Type:                   ReportFinancial,
		Period:                 ReportPeriod{StartDate: start, EndDate: end},
		PaymentStatusBreakdown: map[string]int{},
		ChargesByCategory:      map[string]float64{},
	}

	for _, t := range transactions {
		switch t.Type {
		case models.TransactionPayment:
			report.Summary.TotalPayments += t.Amount
			report.TransactionCounts.Payments++
		case models.TransactionRefund:
			report.Summary.TotalRefunds += t.Amount
			report.TransactionCounts.Refunds++
		case models.TransactionAdjustment:
			report.Summary.TotalAdjustments += t.Amount
			report.TransactionCounts.Adjustments++
		}
	}
	report.Summary.NetRevenue = report.Summary.TotalPayments - report.Summary.TotalRefunds

	for _, r := range reservations {
		report.ReservationFinancials.TotalBilled += r.TotalAmount
		report.ReservationFinancials.TotalCollected += r.PaidAmount

		status := models.PaymentStatusPending
		if r.PaidAmount >= r.TotalAmount {
			status = models.PaymentStatusPaid
		} else if r.PaidAmount > 0 {
			status = models.PaymentStatusPartial
		}
		report.PaymentStatusBreakdown[status]++
	}
	report.ReservationFinancials.Outstanding = report.ReservationFinancials.TotalBilled - report.ReservationFinancials.TotalCollected

	for _, c := range charges {
		report.ChargesByCategory[c.Category] += c.Total()
	}

	if report.TransactionCounts.Payments > 0 {
		report.AveragePaymentAmount = math.Round(report.Summary.TotalPayments / float64(report.TransactionCounts.Payments))
	}

	return report, nil
}
