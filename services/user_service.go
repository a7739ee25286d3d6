package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotelchain-backend/models"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// List returns users visible to the caller: everyone for SUPER_ADMIN,
// own-hotel staff for HOTEL_ADMIN.
func (s *UserService) List(user models.AuthUser) ([]models.User, error) {
	q := s.DB.Model(&models.User{})
	if user.Role != models.RoleSuperAdmin {
		if user.HotelID == nil {
			return []models.User{}, nil
		}
		q = q.Where("hotel_id = ?", *user.HotelID)
	}

	var users []models.User
	if err := q.Preload("Hotel").Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(user models.AuthUser, id uint) (*models.User, error) {
	var target models.User
	if err := s.DB.Preload("Hotel").First(&target, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.Role == models.RoleHotelAdmin && !sameHotel(user.HotelID, target.HotelID) {
		return nil, ErrForbidden
	}
	return &target, nil
}

type UserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      models.Role
	HotelID   *uint
	IsActive  *bool
}

func (s *UserService) Create(user models.AuthUser, in UserInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" || in.Role == "" {
		return nil, validationErrorf("email, password, name and role are required")
	}
	if !in.Role.Valid() {
		return nil, validationErrorf("unknown role %q", in.Role)
	}
	// HOTEL_ADMIN can neither mint admins nor reach outside their hotel.
	if user.Role == models.RoleHotelAdmin {
		if in.Role == models.RoleSuperAdmin || in.Role == models.RoleHotelAdmin {
			return nil, ErrForbidden
		}
		in.HotelID = user.HotelID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hotelID := in.HotelID
	if in.Role == models.RoleSuperAdmin {
		hotelID = nil
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	target := models.User{
		Email:     in.Email,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Role:      in.Role,
		HotelID:   hotelID,
		IsActive:  active,
	}
	if err := s.DB.Create(&target).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.DB.Preload("Hotel").First(&target, target.ID)
	return &target, nil
}

func (s *UserService) Update(user models.AuthUser, id uint, in UserInput) (*models.User, error) {
	var target models.User
	if err := s.DB.First(&target, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if user.Role == models.RoleHotelAdmin {
		if !sameHotel(user.HotelID, target.HotelID) {
			return nil, ErrForbidden
		}
		if in.Role == models.RoleSuperAdmin || in.Role == models.RoleHotelAdmin {
			return nil, ErrForbidden
		}
	}

	updates := map[string]interface{}{}
	if in.Email != "" {
		email := strings.ToLower(strings.TrimSpace(in.Email))
		if email != target.Email {
			updates["email"] = email
		}
	}
	if in.FirstName != "" {
		updates["first_name"] = in.FirstName
	}
	if in.LastName != "" {
		updates["last_name"] = in.LastName
	}
	if in.Phone != "" {
		updates["phone"] = in.Phone
	}
	if in.Role != "" {
		if !in.Role.Valid() {
			return nil, validationErrorf("unknown role %q", in.Role)
		}
		updates["role"] = in.Role
		if in.Role == models.RoleSuperAdmin {
			updates["hotel_id"] = nil
		}
	}
	if in.HotelID != nil && in.Role != models.RoleSuperAdmin {
		updates["hotel_id"] = *in.HotelID
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return nil, ErrDuplicateEmail
			}
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	s.DB.Preload("Hotel").First(&target, id)
	return &target, nil
}

// Delete removes a user. Self-deletion is rejected, and HOTEL_ADMIN cannot
// remove admins or users outside their hotel.
func (s *UserService) Delete(user models.AuthUser, id uint) error {
	if id == user.ID {
		return validationErrorf("cannot delete your own account")
	}

	var target models.User
	if err := s.DB.First(&target, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if user.Role == models.RoleHotelAdmin {
		if !sameHotel(user.HotelID, target.HotelID) {
			return ErrForbidden
		}
		if target.Role == models.RoleSuperAdmin || target.Role == models.RoleHotelAdmin {
			return ErrForbidden
		}
	}

	return s.DB.Delete(&models.User{}, id).Error
}

func sameHotel(a, b *uint) bool {
	return a != nil && b != nil && *a == *b
}
