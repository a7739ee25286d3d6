package services

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotelchain-backend/models"
)

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) List(user models.AuthUser, hotelID *uint) ([]models.RoomType, error) {
	q := s.DB.Model(&models.RoomType{})

	if user.Role != models.RoleSuperAdmin {
		if user.HotelID == nil {
			return []models.RoomType{}, nil
		}
		q = q.Where("hotel_id = ?", *user.HotelID)
	} else if hotelID != nil {
		q = q.Where("hotel_id = ?", *hotelID)
	}

	var types []models.RoomType
	if err := q.Order("base_rate ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	return types, nil
}

type RoomTypeInput struct {
	HotelID      uint
	Name         string
	Description  string
	BaseRate     float64
	MaxOccupancy int
	Amenities    datatypes.JSON
}

func (s *RoomTypeService) Create(user models.AuthUser, in RoomTypeInput) (*models.RoomType, error) {
	if in.Name == "" {
		return nil, validationErrorf("name is required")
	}
	if in.BaseRate < 0 {
		return nil, validationErrorf("base rate cannot be negative")
	}
	if !user.CanAccessHotel(in.HotelID) {
		return nil, ErrForbidden
	}
	if in.MaxOccupancy <= 0 {
		in.MaxOccupancy = 2
	}

	roomType := models.RoomType{
		HotelID:      in.HotelID,
		Name:         in.Name,
		Description:  in.Description,
		BaseRate:     in.BaseRate,
		MaxOccupancy: in.MaxOccupancy,
		Amenities:    in.Amenities,
	}
	if err := s.DB.Create(&roomType).Error; err != nil {
		return nil, fmt.Errorf("failed to create room type: %w", err)
	}
	return &roomType, nil
}

func (s *RoomTypeService) Update(user models.AuthUser, id uint, in RoomTypeInput) (*models.RoomType, error) {
	var roomType models.RoomType
	if err := s.DB.First(&roomType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !user.CanAccessHotel(roomType.HotelID) {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if in.Name != "" {
		updates["name"] = in.Name
	}
	if in.Description != "" {
		updates["description"] = in.Description
	}
	if in.BaseRate > 0 {
		// Rate changes never touch existing reservations; those carry
		// rates snapshotted at booking time.
		updates["base_rate"] = in.BaseRate
	}
	if in.MaxOccupancy > 0 {
		updates["max_occupancy"] = in.MaxOccupancy
	}
	if in.Amenities != nil {
		updates["amenities"] = in.Amenities
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.RoomType{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update room type: %w", err)
		}
	}

	s.DB.First(&roomType, id)
	return &roomType, nil
}

// Delete removes a room type. Blocked while any room references it.
func (s *RoomTypeService) Delete(user models.AuthUser, id uint) error {
	var roomType models.RoomType
	if err := s.DB.First(&roomType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !user.CanAccessHotel(roomType.HotelID) {
		return ErrForbidden
	}

	var count int64
	if err := s.DB.Model(&models.Room{}).Where("room_type_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count rooms: %w", err)
	}
	if count > 0 {
		return ErrRoomTypeInUse
	}

	return s.DB.Delete(&models.RoomType{}, id).Error
}
