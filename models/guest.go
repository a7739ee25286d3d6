package models

import (
	"time"

	"gorm.io/gorm"
)

type Guest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName    string     `gorm:"size:100;not null" json:"firstName"`
	LastName     string     `gorm:"size:100;not null" json:"lastName"`
	Email        string     `gorm:"size:150" json:"email,omitempty"`
	Phone        string     `gorm:"size:50" json:"phone,omitempty"`
	Document     string     `gorm:"uniqueIndex;size:64;not null" json:"document"`
	DocumentType string     `gorm:"size:20;default:PASSPORT" json:"documentType"`
	Nationality  string     `gorm:"size:100" json:"nationality,omitempty"`
	Address      string     `gorm:"size:255" json:"address,omitempty"`
	City         string     `gorm:"size:100" json:"city,omitempty"`
	State        string     `gorm:"size:100" json:"state,omitempty"`
	Country      string     `gorm:"size:100" json:"country,omitempty"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
