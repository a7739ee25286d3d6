package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hotelchain-backend/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type RoomFilter struct {
	HotelID *uint
	Status  string
}

// List returns active rooms visible to the caller, ordered by floor and
// number.
func (s *RoomService) List(user models.AuthUser, filter RoomFilter) ([]models.Room, error) {
	q := s.DB.Model(&models.Room{}).Where("is_active = ?", true)

	if user.Role != models.RoleSuperAdmin {
		if user.HotelID == nil {
			return []models.Room{}, nil
		}
		q = q.Where("hotel_id = ?", *user.HotelID)
	} else if filter.HotelID != nil {
		q = q.Where("hotel_id = ?", *filter.HotelID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}

	var rooms []models.Room
	if err := q.Preload("RoomType").Order("floor ASC, number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

type CreateRoomInput struct {
	HotelID    uint
	RoomTypeID uint
	Number     string
	Floor      int
	Status     string
	Notes      string
}

func (s *RoomService) Create(user models.AuthUser, in CreateRoomInput) (*models.Room, error) {
	in.Number = strings.TrimSpace(in.Number)
	if in.Number == "" {
		return nil, validationErrorf("room number is required")
	}
	if !user.CanAccessHotel(in.HotelID) {
		return nil, ErrForbidden
	}

	var roomType models.RoomType
	if err := s.DB.Where("id = ? AND hotel_id = ?", in.RoomTypeID, in.HotelID).First(&roomType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationErrorf("room type %d not found for this hotel", in.RoomTypeID)
		}
		return nil, fmt.Errorf("db error checking room type: %w", err)
	}

	if in.Status == "" {
		in.Status = models.RoomAvailable
	}

	room := models.Room{
		HotelID:    in.HotelID,
		RoomTypeID: in.RoomTypeID,
		Number:     in.Number,
		Floor:      in.Floor,
		Status:     in.Status,
		Notes:      in.Notes,
		IsActive:   true,
	}
	if err := s.DB.Create(&room).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, ErrDuplicateRoom
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.DB.Preload("RoomType").First(&room, room.ID)
	return &room, nil
}

type UpdateRoomInput struct {
	Number     *string
	Floor      *int
	RoomTypeID *uint
	Status     *string
	Notes      *string
}

// Update edits room attributes. A manual status change is rejected while a
// non-terminal reservation holds the room; those transitions belong to the
// reservation lifecycle.
func (s *RoomService) Update(user models.AuthUser, id uint, in UpdateRoomInput) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !user.CanAccessHotel(room.HotelID) {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}

	if in.Number != nil {
		number := strings.TrimSpace(*in.Number)
		if number == "" {
			return nil, validationErrorf("room number is required")
		}
		if number != room.Number {
			var count int64
			s.DB.Model(&models.Room{}).
				Where("hotel_id = ? AND number = ? AND id <> ?", room.HotelID, number, id).
				Count(&count)
			if count > 0 {
				return nil, ErrDuplicateRoom
			}
			updates["number"] = number
		}
	}
	if in.Floor != nil {
		updates["floor"] = *in.Floor
	}
	if in.RoomTypeID != nil && *in.RoomTypeID != room.RoomTypeID {
		var roomType models.RoomType
		if err := s.DB.Where("id = ? AND hotel_id = ?", *in.RoomTypeID, room.HotelID).First(&roomType).Error; err != nil {
			return nil, validationErrorf("room type %d not found for this hotel", *in.RoomTypeID)
		}
		updates["room_type_id"] = *in.RoomTypeID
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	if in.Status != nil && *in.Status != room.Status {
		held, err := s.heldByOpenReservation(id)
		if err != nil {
			return nil, err
		}
		if held {
			return nil, validationErrorf("room status is managed by its open reservation")
		}
		updates["status"] = *in.Status
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return nil, ErrDuplicateRoom
			}
			return nil, fmt.Errorf("failed to update room: %w", err)
		}
	}

	s.DB.Preload("RoomType").First(&room, id)
	return &room, nil
}

// Deactivate soft-deletes a room. Blocked while any open reservation still
// claims it; history keeps the row either way.
func (s *RoomService) Deactivate(user models.AuthUser, id uint) error {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !user.CanAccessHotel(room.HotelID) {
		return ErrForbidden
	}

	held, err := s.heldByOpenReservation(id)
	if err != nil {
		return err
	}
	if held {
		return ErrRoomInUse
	}

	return s.DB.Model(&models.Room{}).Where("id = ?", id).Update("is_active", false).Error
}

func (s *RoomService) heldByOpenReservation(roomID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.ReservationRoom{}).
		Joins("JOIN reservations ON reservations.id = reservation_rooms.reservation_id").
		Where("reservation_rooms.room_id = ?", roomID).
		Where("reservations.status NOT IN ?", models.NonBlockingStatuses).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check open reservations: %w", err)
	}
	return count > 0, nil
}
