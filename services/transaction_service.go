package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotelchain-backend/models"
)

// TransactionService is the append-only financial ledger. Entries are never
// updated or deleted.
type TransactionService struct {
	DB *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{DB: db}
}

type TransactionFilter struct {
	HotelID       *uint
	Type          string
	ReservationID *uint
}

func (s *TransactionService) List(user models.AuthUser, filter TransactionFilter) ([]models.Transaction, error) {
	q := s.DB.Model(&models.Transaction{})

	if user.Role != models.RoleSuperAdmin {
		if user.HotelID == nil {
			return []models.Transaction{}, nil
		}
		q = q.Where("hotel_id = ?", *user.HotelID)
	} else if filter.HotelID != nil {
		q = q.Where("hotel_id = ?", *filter.HotelID)
	}
	if filter.Type != "" && filter.Type != "all" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.ReservationID != nil {
		q = q.Where("reservation_id = ?", *filter.ReservationID)
	}

	var transactions []models.Transaction
	err := q.
		Preload("Reservation.Guest").
		Order("created_at DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

type CreateTransactionInput struct {
	Amount        float64
	Type          string
	PaymentMethod string
	Reference     string
	Description   string
	ReservationID *uint
	HotelID       *uint
}

// Create appends a ledger entry. When linked to a reservation, the target
// hotel comes from the reservation and paidAmount moves by an in-place SQL
// increment (PAYMENT) or decrement (REFUND) inside the same transaction, so
// concurrent payments never lose updates.
func (s *TransactionService) Create(user models.AuthUser, in CreateTransactionInput) (*models.Transaction, error) {
	if in.Amount <= 0 {
		return nil, validationErrorf("amount must be positive")
	}
	switch in.Type {
	case models.TransactionPayment, models.TransactionRefund, models.TransactionAdjustment:
	default:
		return nil, validationErrorf("invalid transaction type %q", in.Type)
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = "CASH"
	}

	var transaction models.Transaction
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var targetHotelID uint

		if in.ReservationID != nil {
			var reservation models.Reservation
			if err := withRowLock(tx).First(&reservation, *in.ReservationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			targetHotelID = reservation.HotelID
		} else {
			if user.Role == models.RoleSuperAdmin {
				if in.HotelID == nil {
					return validationErrorf("hotel id is required")
				}
				targetHotelID = *in.HotelID
			} else {
				if user.HotelID == nil {
					return validationErrorf("hotel id is required")
				}
				targetHotelID = *user.HotelID
			}
		}

		if !user.CanAccessHotel(targetHotelID) {
			return ErrForbidden
		}

		transaction = models.Transaction{
			ReservationID: in.ReservationID,
			HotelID:       targetHotelID,
			Amount:        in.Amount,
			Type:          in.Type,
			PaymentMethod: in.PaymentMethod,
			PaymentStatus: models.PaymentStatusPaid,
			Reference:     in.Reference,
			Description:   in.Description,
			ProcessedByID: user.ID,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		if in.ReservationID != nil {
			switch in.Type {
			case models.TransactionPayment:
				return tx.Model(&models.Reservation{}).
					Where("id = ?", *in.ReservationID).
					Update("paid_amount", gorm.Expr("paid_amount + ?", in.Amount)).Error
			case models.TransactionRefund:
				return tx.Model(&models.Reservation{}).
					Where("id = ?", *in.ReservationID).
					Update("paid_amount", gorm.Expr("paid_amount - ?", in.Amount)).Error
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.DB.Preload("Reservation.Guest").First(&transaction, transaction.ID)
	return &transaction, nil
}
