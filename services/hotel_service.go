package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotelchain-backend/models"
)

type HotelService struct {
	DB *gorm.DB
}

func NewHotelService(db *gorm.DB) *HotelService {
	return &HotelService{DB: db}
}

// List returns active hotels. Non-super admins only ever see their own.
func (s *HotelService) List(user models.AuthUser) ([]models.Hotel, error) {
	if user.Role != models.RoleSuperAdmin {
		if user.HotelID == nil {
			return []models.Hotel{}, nil
		}
		var hotel models.Hotel
		err := s.DB.Where("id = ? AND is_active = ?", *user.HotelID, true).First(&hotel).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []models.Hotel{}, nil
			}
			return nil, err
		}
		return []models.Hotel{hotel}, nil
	}

	var hotels []models.Hotel
	if err := s.DB.Where("is_active = ?", true).Order("name ASC").Find(&hotels).Error; err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	return hotels, nil
}

type HotelInput struct {
	Name        string
	Code        string
	Address     string
	City        string
	State       string
	Country     string
	ZipCode     string
	Phone       string
	Email       string
	Description string
}

func (s *HotelService) Create(user models.AuthUser, in HotelInput) (*models.Hotel, error) {
	if user.Role != models.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	if in.Name == "" || in.Code == "" {
		return nil, validationErrorf("name and code are required")
	}

	hotel := models.Hotel{
		Name:        in.Name,
		Code:        in.Code,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Country:     in.Country,
		ZipCode:     in.ZipCode,
		Phone:       in.Phone,
		Email:       in.Email,
		Description: in.Description,
		IsActive:    true,
	}
	if err := s.DB.Create(&hotel).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, ErrDuplicateHotelCode
		}
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}
	return &hotel, nil
}

func (s *HotelService) Update(user models.AuthUser, id uint, in HotelInput) (*models.Hotel, error) {
	if user.Role != models.RoleSuperAdmin {
		return nil, ErrForbidden
	}

	var hotel models.Hotel
	if err := s.DB.First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != "" {
		updates["name"] = in.Name
	}
	if in.Code != "" && in.Code != hotel.Code {
		updates["code"] = in.Code
	}
	if in.Address != "" {
		updates["address"] = in.Address
	}
	if in.City != "" {
		updates["city"] = in.City
	}
	if in.State != "" {
		updates["state"] = in.State
	}
	if in.Country != "" {
		updates["country"] = in.Country
	}
	if in.ZipCode != "" {
		updates["zip_code"] = in.ZipCode
	}
	if in.Phone != "" {
		updates["phone"] = in.Phone
	}
	if in.Email != "" {
		updates["email"] = in.Email
	}
	if in.Description != "" {
		updates["description"] = in.Description
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.Hotel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return nil, ErrDuplicateHotelCode
			}
			return nil, fmt.Errorf("failed to update hotel: %w", err)
		}
	}

	s.DB.First(&hotel, id)
	return &hotel, nil
}
