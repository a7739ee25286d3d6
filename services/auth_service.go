package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotelchain-backend/models"
)

// ErrInvalidCredentials is deliberately vague; signin never reveals whether
// the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Signup registers a user. The very first account becomes SUPER_ADMIN;
// everyone after that starts as STAFF until an admin promotes them.
func (s *AuthService) Signup(in SignupInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return nil, validationErrorf("email, password, first name and last name are required")
	}
	if len(in.Password) < 6 {
		return nil, validationErrorf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user models.User
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		role := models.RoleStaff
		if count == 0 {
			role = models.RoleSuperAdmin
		}

		now := time.Now()
		user = models.User{
			Email:     in.Email,
			Password:  string(hash),
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Phone:     in.Phone,
			Role:      role,
			IsActive:  true,
			LastLogin: &now,
		}
		if err := tx.Create(&user).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &user, nil
}

// Signin verifies credentials and stamps lastLogin.
func (s *AuthService) Signin(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, validationErrorf("email and password are required")
	}

	var user models.User
	if err := s.DB.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.DB.Model(&user).Update("last_login", now).Error; err == nil {
		user.LastLogin = &now
	}
	return &user, nil
}

// Me loads the caller's full profile with its hotel.
func (s *AuthService) Me(userID uint) (*models.User, error) {
	var user models.User
	if err := s.DB.Preload("Hotel").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
