package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelchain-backend/models"
	"hotelchain-backend/utils"
)

// validTransitions is the reservation lifecycle table. Any pair not listed
// here fails with InvalidTransitionError and leaves state unchanged.
var validTransitions = map[string][]string{
	models.ReservationPending:    {models.ReservationConfirmed, models.ReservationCancelled},
	models.ReservationConfirmed:  {models.ReservationCheckedIn, models.ReservationCancelled, models.ReservationNoShow},
	models.ReservationCheckedIn:  {models.ReservationCheckedOut},
	models.ReservationCheckedOut: {},
	models.ReservationCancelled:  {},
	models.ReservationNoShow:     {},
}

// ReservationService drives the reservation lifecycle and is the only
// writer of lifecycle-driven room statuses.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// withRowLock adds SELECT ... FOR UPDATE where the dialect supports it.
// sqlite has no row locks and serializes writers on its own.
func withRowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

type CreateReservationInput struct {
	GuestID         uint
	HotelID         uint
	RoomIDs         []uint
	CheckInDate     time.Time
	CheckOutDate    time.Time
	Adults          int
	Children        int
	Notes           string
	SpecialRequests string
}

// Create validates room availability and the date interval, snapshots the
// nightly rates and inserts the reservation. The conflict check and the
// insert run in one transaction with the room rows locked, so two
// concurrent creations for overlapping dates serialize and exactly one
// succeeds.
func (s *ReservationService) Create(user models.AuthUser, in CreateReservationInput) (*models.Reservation, error) {
	if len(in.RoomIDs) == 0 {
		return nil, validationErrorf("at least one room is required")
	}
	if !in.CheckInDate.Before(in.CheckOutDate) {
		return nil, validationErrorf("check-in date must be before check-out date")
	}
	if in.Adults < 1 {
		in.Adults = 1
	}
	if in.Children < 0 {
		in.Children = 0
	}
	if !user.CanAccessHotel(in.HotelID) {
		return nil, ErrForbidden
	}

	var guest models.Guest
	if err := s.DB.First(&guest, in.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationErrorf("guest %d not found", in.GuestID)
		}
		return nil, fmt.Errorf("db error checking guest: %w", err)
	}

	var reservationID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the requested rooms first; every competing creation for any
		// of these rooms queues up behind the lock.
		var rooms []models.Room
		if err := withRowLock(tx).
			Preload("RoomType").
			Where("id IN ? AND hotel_id = ? AND is_active = ?", in.RoomIDs, in.HotelID, true).
			Find(&rooms).Error; err != nil {
			return fmt.Errorf("failed to load rooms: %w", err)
		}
		if len(rooms) != len(in.RoomIDs) {
			return ErrRoomsUnavailable
		}

		// Inclusive-bounds overlap against every reservation still holding
		// inventory.
		var conflicts int64
		if err := tx.Model(&models.ReservationRoom{}).
			Joins("JOIN reservations ON reservations.id = reservation_rooms.reservation_id").
			Where("reservation_rooms.room_id IN ?", in.RoomIDs).
			Where("reservations.status NOT IN ?", models.NonBlockingStatuses).
			Where("reservations.check_in_date <= ? AND reservations.check_out_date >= ?", in.CheckOutDate, in.CheckInDate).
			Count(&conflicts).Error; err != nil {
			return fmt.Errorf("failed to check conflicts: %w", err)
		}
		if conflicts > 0 {
			return ErrRoomConflict
		}

		nights := models.NightsBetween(in.CheckInDate, in.CheckOutDate)
		total := 0.0
		joinRows := make([]models.ReservationRoom, 0, len(rooms))
		for _, room := range rooms {
			total += room.RoomType.BaseRate * float64(nights)
			joinRows = append(joinRows, models.ReservationRoom{
				RoomID:    room.ID,
				DailyRate: room.RoomType.BaseRate,
			})
		}

		reservation := models.Reservation{
			GuestID:         in.GuestID,
			HotelID:         in.HotelID,
			CheckInDate:     in.CheckInDate,
			CheckOutDate:    in.CheckOutDate,
			Adults:          in.Adults,
			Children:        in.Children,
			Status:          models.ReservationPending,
			TotalAmount:     total,
			Notes:           in.Notes,
			SpecialRequests: in.SpecialRequests,
			CreatedByID:     user.ID,
			Rooms:           joinRows,
		}

		// Retry on the rare code collision, like any unique token mint.
		var createErr error
		for attempt := 0; attempt < 5; attempt++ {
			reservation.Code = utils.GenerateReservationCode(time.Now())
			createErr = tx.Create(&reservation).Error
			if createErr == nil {
				break
			}
			if !isDuplicateKeyErr(createErr) {
				return fmt.Errorf("failed to create reservation: %w", createErr)
			}
		}
		if createErr != nil {
			return fmt.Errorf("failed to create reservation after retries: %w", createErr)
		}

		// PENDING holds no inventory beyond the conflict check above; room
		// statuses change only on explicit confirmation.
		reservationID = reservation.ID
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.reload(reservationID)
}

// Transition applies a status change from the lifecycle table together with
// its room side effects, atomically.
func (s *ReservationService) Transition(user models.AuthUser, id uint, target string) (*models.Reservation, error) {
	if _, known := validTransitions[target]; !known {
		return nil, validationErrorf("unknown status %q", target)
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := withRowLock(tx).Preload("Rooms").First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !user.CanAccessHotel(reservation.HotelID) {
			return ErrForbidden
		}

		allowed := false
		for _, next := range validTransitions[reservation.Status] {
			if next == target {
				allowed = true
				break
			}
		}
		if !allowed {
			return &InvalidTransitionError{From: reservation.Status, To: target}
		}

		roomIDs := make([]uint, 0, len(reservation.Rooms))
		for _, rr := range reservation.Rooms {
			roomIDs = append(roomIDs, rr.RoomID)
		}

		now := time.Now()
		updates := map[string]interface{}{"status": target}

		switch target {
		case models.ReservationConfirmed:
			if err := tx.Model(&models.Room{}).
				Where("id IN ? AND status = ?", roomIDs, models.RoomAvailable).
				Update("status", models.RoomReserved).Error; err != nil {
				return err
			}

		case models.ReservationCheckedIn:
			updates["actual_check_in"] = now
			if err := tx.Model(&models.Room{}).
				Where("id IN ?", roomIDs).
				Update("status", models.RoomOccupied).Error; err != nil {
				return err
			}

		case models.ReservationCheckedOut:
			updates["actual_check_out"] = now
			if err := tx.Model(&models.Room{}).
				Where("id IN ?", roomIDs).
				Update("status", models.RoomCleaning).Error; err != nil {
				return err
			}

		case models.ReservationCancelled, models.ReservationNoShow:
			// Release only rooms this reservation actually held. Rooms
			// already OCCUPIED are left for staff to resolve.
			if reservation.Status == models.ReservationConfirmed {
				if err := tx.Model(&models.Room{}).
					Where("id IN ? AND status = ?", roomIDs, models.RoomReserved).
					Update("status", models.RoomAvailable).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&models.Reservation{}).Where("id = ?", id).Updates(updates).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.reload(id)
}

type UpdateReservationInput struct {
	CheckInDate     *time.Time
	CheckOutDate    *time.Time
	Adults          *int
	Children        *int
	Notes           *string
	SpecialRequests *string
}

// Update edits dates, occupant counts and notes while the reservation is
// still editable. A date change recomputes the total from the rates
// snapshotted at booking time plus the charges already on the folio;
// paidAmount is untouched, so the outstanding balance shifts with it.
func (s *ReservationService) Update(user models.AuthUser, id uint, in UpdateReservationInput) (*models.Reservation, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := withRowLock(tx).Preload("Rooms").Preload("Charges").First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !user.CanAccessHotel(reservation.HotelID) {
			return ErrForbidden
		}
		if reservation.Status == models.ReservationCheckedOut || reservation.Status == models.ReservationCancelled {
			return validationErrorf("cannot edit completed or cancelled reservations")
		}

		updates := map[string]interface{}{}
		if in.Adults != nil {
			updates["adults"] = *in.Adults
		}
		if in.Children != nil {
			updates["children"] = *in.Children
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}
		if in.SpecialRequests != nil {
			updates["special_requests"] = *in.SpecialRequests
		}

		if in.CheckInDate != nil || in.CheckOutDate != nil {
			checkIn := reservation.CheckInDate
			checkOut := reservation.CheckOutDate
			if in.CheckInDate != nil {
				checkIn = *in.CheckInDate
			}
			if in.CheckOutDate != nil {
				checkOut = *in.CheckOutDate
			}
			if !checkIn.Before(checkOut) {
				return validationErrorf("check-in date must be before check-out date")
			}

			nights := models.NightsBetween(checkIn, checkOut)
			total := 0.0
			for _, rr := range reservation.Rooms {
				total += rr.DailyRate * float64(nights)
			}
			for _, charge := range reservation.Charges {
				total += charge.Total()
			}

			updates["check_in_date"] = checkIn
			updates["check_out_date"] = checkOut
			updates["total_amount"] = total
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.Reservation{}).Where("id = ?", id).Updates(updates).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.reload(id)
}

// Delete hard-deletes the reservation with its room joins and charges, and
// detaches (never deletes) linked transactions so the financial history
// survives the booking.
func (s *ReservationService) Delete(user models.AuthUser, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !user.CanAccessHotel(reservation.HotelID) {
			return ErrForbidden
		}

		if err := tx.Where("reservation_id = ?", id).Delete(&models.ReservationRoom{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("reservation_id = ?", id).Delete(&models.Charge{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Transaction{}).
			Where("reservation_id = ?", id).
			Update("reservation_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Reservation{}, id).Error
	})
}

// Get loads one reservation with all relations.
func (s *ReservationService) Get(user models.AuthUser, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.
		Preload("Guest").
		Preload("Hotel").
		Preload("Rooms.Room.RoomType").
		Preload("Charges").
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
	return &reservation, nil
}

type ReservationFilter struct {
	HotelID *uint
	Status  string
	GuestID *uint
}

// List returns reservations visible to the caller, newest first. Non-super
// admins are always scoped to their own hotel.
func (s *ReservationService) List(user models.AuthUser, filter ReservationFilter) ([]models.Reservation, error) {
	q := s.DB.Model(&models.Reservation{})

	if user.Role != models.RoleSuperAdmin {
		if user.HotelID == nil {
			return []models.Reservation{}, nil
		}
		q = q.Where("hotel_id = ?", *user.HotelID)
	} else if filter.HotelID != nil {
		q = q.Where("hotel_id = ?", *filter.HotelID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.GuestID != nil {
		q = q.Where("guest_id = ?", *filter.GuestID)
	}

	var reservations []models.Reservation
	err := q.
		Preload("Guest").
		Preload("Hotel").
		Preload("Rooms.Room.RoomType").
		Order("created_at DESC").
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	for i := range reservations {
		if reservations[i].Rooms == nil {
			reservations[i].Rooms = []models.ReservationRoom{}
		}
	}
	return reservations, nil
}

type AddChargeInput struct {
	Description string
	Category    string
	Amount      float64
	Quantity    int
}

// AddCharge appends a billable line and bumps the reservation total in the
// same transaction, with an in-place SQL increment.
func (s *ReservationService) AddCharge(user models.AuthUser, reservationID uint, in AddChargeInput) (*models.Charge, error) {
	if in.Description == "" || in.Amount == 0 {
		return nil, validationErrorf("description and amount are required")
	}
	if in.Quantity <= 0 {
		in.Quantity = 1
	}
	if in.Category == "" {
		in.Category = "OTHER"
	}

	var charge models.Charge
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := withRowLock(tx).First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !user.CanAccessHotel(reservation.HotelID) {
			return ErrForbidden
		}
		if reservation.Status == models.ReservationCancelled || reservation.Status == models.ReservationCheckedOut {
			return validationErrorf("cannot add charges to completed reservations")
		}

		charge = models.Charge{
			ReservationID: reservationID,
			Description:   in.Description,
			Category:      in.Category,
			Amount:        in.Amount,
			Quantity:      in.Quantity,
		}
		if err := tx.Create(&charge).Error; err != nil {
			return err
		}

		return tx.Model(&models.Reservation{}).
			Where("id = ?", reservationID).
			Update("total_amount", gorm.Expr("total_amount + ?", charge.Total())).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &charge, nil
}

// ListCharges returns the folio lines for a reservation, newest first.
func (s *ReservationService) ListCharges(user models.AuthUser, reservationID uint) ([]models.Charge, error) {
	var reservation models.Reservation
	if err := s.DB.Select("id", "hotel_id").First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !user.CanAccessHotel(reservation.HotelID) {
		return nil, ErrForbidden
	}

	var charges []models.Charge
	if err := s.DB.Where("reservation_id = ?", reservationID).
		Order("created_at DESC").
		Find(&charges).Error; err != nil {
		return nil, err
	}
	return charges, nil
}

func (s *ReservationService) reload(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.
		Preload("Guest").
		Preload("Hotel").
		Preload("Rooms.Room.RoomType").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	if reservation.Rooms == nil {
		reservation.Rooms = []models.ReservationRoom{}
	}
	return &reservation, nil
}
