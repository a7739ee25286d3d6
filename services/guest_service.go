package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotelchain-backend/models"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// List returns guests, optionally filtered by a search term across name,
// email, phone and document. Guests are system-wide, not hotel-scoped.
func (s *GuestService) List(search string) ([]models.Guest, error) {
	q := s.DB.Model(&models.Guest{})

	search = strings.TrimSpace(search)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ? OR document LIKE ?",
			like, like, like, "%"+search+"%", "%"+search+"%",
		)
	}

	var guests []models.Guest
	if err := q.Order("created_at DESC").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

type GuestInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Document     string
	DocumentType string
	Nationality  string
	Address      string
	City         string
	State        string
	Country      string
	BirthDate    *time.Time
	Notes        string
}

func (s *GuestService) Create(in GuestInput) (*models.Guest, error) {
	if in.FirstName == "" || in.LastName == "" || in.Document == "" {
		return nil, validationErrorf("first name, last name and document are required")
	}
	if in.DocumentType == "" {
		in.DocumentType = "PASSPORT"
	}

	guest := models.Guest{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		Document:     in.Document,
		DocumentType: in.DocumentType,
		Nationality:  in.Nationality,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		Country:      in.Country,
		BirthDate:    in.BirthDate,
		Notes:        in.Notes,
	}
	if err := s.DB.Create(&guest).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, ErrDuplicateDocument
		}
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return &guest, nil
}
