package services

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"hotelchain-backend/models"
)

// DashboardService feeds the landing screen with live counters for one
// hotel, or a chain-wide rollup for SUPER_ADMIN.
type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

type DashboardStats struct {
	Rooms struct {
		Total       int64 `json:"total"`
		Available   int64 `json:"available"`
		Occupied    int64 `json:"occupied"`
		Reserved    int64 `json:"reserved"`
		Cleaning    int64 `json:"cleaning"`
		Maintenance int64 `json:"maintenance"`
	} `json:"rooms"`
	OccupancyRate       int                  `json:"occupancyRate"`
	TodayCheckIns       int64                `json:"todayCheckIns"`
	TodayCheckOuts      int64                `json:"todayCheckOuts"`
	PendingReservations int64                `json:"pendingReservations"`
	MonthlyRevenue      float64              `json:"monthlyRevenue"`
	TotalRevenue        float64              `json:"totalRevenue"`
	RecentReservations  []models.Reservation `json:"recentReservations"`
}

// Stats builds the dashboard for one hotel. Non-super admins are pinned to
// their own hotel regardless of the requested id.
func (s *DashboardService) Stats(user models.AuthUser, hotelID *uint) (*DashboardStats, error) {
	if user.Role != models.RoleSuperAdmin {
		if user.HotelID == nil {
			return nil, validationErrorf("caller has no hotel assignment")
		}
		hotelID = user.HotelID
	}
	if hotelID == nil {
		return nil, validationErrorf("hotel id is required")
	}

	stats := &DashboardStats{}

	roomCounts := s.DB.Model(&models.Room{}).
		Where("hotel_id = ? AND is_active = ?", *hotelID, true)
	if err := roomCounts.Count(&stats.Rooms.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}
	type statusCount struct {
		Status string
		N      int64
	}
	var counts []statusCount
	if err := s.DB.Model(&models.Room{}).
		Select("status, COUNT(*) AS n").
		Where("hotel_id = ? AND is_active = ?", *hotelID, true).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count room statuses: %w", err)
	}
	for _, c := range counts {
		switch c.Status {
		case models.RoomAvailable:
			stats.Rooms.Available = c.N
		case models.RoomOccupied:
			stats.Rooms.Occupied = c.N
		case models.RoomReserved:
			stats.Rooms.Reserved = c.N
		case models.RoomCleaning:
			stats.Rooms.Cleaning = c.N
		case models.RoomMaintenance:
			stats.Rooms.Maintenance = c.N
		}
	}
	if stats.Rooms.Total > 0 {
		stats.OccupancyRate = int(math.Round(float64(stats.Rooms.Occupied) / float64(stats.Rooms.Total) * 100))
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	if err := s.DB.Model(&models.Reservation{}).
		Where("hotel_id = ? AND status = ?", *hotelID, models.ReservationConfirmed).
		Where("check_in_date >= ? AND check_in_date < ?", dayStart, dayEnd).
		Count(&stats.TodayCheckIns).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Reservation{}).
		Where("hotel_id = ? AND status = ?", *hotelID, models.ReservationCheckedIn).
		Where("check_out_date >= ? AND check_out_date < ?", dayStart, dayEnd).
		Count(&stats.TodayCheckOuts).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Reservation{}).
		Where("hotel_id = ? AND status = ?", *hotelID, models.ReservationPending).
		Count(&stats.PendingReservations).Error; err != nil {
		return nil, err
	}

	if err := s.sumPayments(*hotelID, &monthStart, &stats.MonthlyRevenue); err != nil {
		return nil, err
	}
	if err := s.sumPayments(*hotelID, nil, &stats.TotalRevenue); err != nil {
		return nil, err
	}

	err := s.DB.Model(&models.Reservation{}).
		Where("hotel_id = ?", *hotelID).
		Preload("Guest").
		Preload("Rooms").
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentReservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent reservations: %w", err)
	}

	return stats, nil
}

func (s *DashboardService) sumPayments(hotelID uint, since *time.Time, dest *float64) error {
	q := s.DB.Model(&models.Transaction{}).
		Where("hotel_id = ? AND type = ?", hotelID, models.TransactionPayment)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	var total *float64
	if err := q.Select("SUM(amount)").Scan(&total).Error; err != nil {
		return fmt.Errorf("failed to sum payments: %w", err)
	}
	if total != nil {
		*dest = *total
	}
	return nil
}

type HotelSummary struct {
	Hotel          models.HotelRef `json:"hotel"`
	TotalRooms     int64           `json:"totalRooms"`
	OccupiedRooms  int64           `json:"occupiedRooms"`
	OccupancyRate  int             `json:"occupancyRate"`
	MonthlyRevenue float64         `json:"monthlyRevenue"`
}

type ChainOverview struct {
	Hotels         []HotelSummary `json:"hotels"`
	TotalRooms     int64          `json:"totalRooms"`
	OccupiedRooms  int64          `json:"occupiedRooms"`
	OccupancyRate  int            `json:"occupancyRate"`
	MonthlyRevenue float64        `json:"monthlyRevenue"`
}

// ChainStats rolls the dashboard up across every active hotel. SUPER_ADMIN
// only.
func (s *DashboardService) ChainStats(user models.AuthUser) (*ChainOverview, error) {
	if user.Role != models.RoleSuperAdmin {
		return nil, ErrForbidden
	}

	var hotels []models.Hotel
	if err := s.DB.Where("is_active = ?", true).Order("name ASC").Find(&hotels).Error; err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	overview := &ChainOverview{Hotels: []HotelSummary{}}
	for _, hotel := range hotels {
		summary := HotelSummary{Hotel: hotel.Ref()}

		if err := s.DB.Model(&models.Room{}).
			Where("hotel_id = ? AND is_active = ?", hotel.ID, true).
			Count(&summary.TotalRooms).Error; err != nil {
			return nil, err
		}
		if err := s.DB.Model(&models.Room{}).
			Where("hotel_id = ? AND is_active = ? AND status = ?", hotel.ID, true, models.RoomOccupied).
			Count(&summary.OccupiedRooms).Error; err != nil {
			return nil, err
		}
		if summary.TotalRooms > 0 {
			summary.OccupancyRate = int(math.Round(float64(summary.OccupiedRooms) / float64(summary.TotalRooms) * 100))
		}
		if err := s.sumPayments(hotel.ID, &monthStart, &summary.MonthlyRevenue); err != nil {
			return nil, err
		}

		overview.Hotels = append(overview.Hotels, summary)
		overview.TotalRooms += summary.TotalRooms
		overview.OccupiedRooms += summary.OccupiedRooms
		overview.MonthlyRevenue += summary.MonthlyRevenue
	}
	if overview.TotalRooms > 0 {
		overview.OccupancyRate = int(math.Round(float64(overview.OccupiedRooms) / float64(overview.TotalRooms) * 100))
	}

	return overview, nil
}
