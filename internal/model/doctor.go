package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Doctor struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	FirstName       string          `json:"first_name" db:"first_name"`
	LastName        string          `json:"last_name" db:"last_name"`
	Email           string          `json:"email" db:"email"`
	Phone           string          `json:"phone" db:"phone"`
	LicenseNumber   string          `json:"license_number" db:"license_number"`
	Specialization  string          `json:"specialization" db:"specialization"`
	Qualification   string          `json:"qualification" db:"qualification"`
	ExperienceYears int             `json:"experience_years" db:"experience_years"`
	ConsultationFee decimal.Decimal `json:"consultation_fee" db:"consultation_fee"`
	Department      string          `json:"department" db:"department"`
	RoomNumber      string          `json:"room_number" db:"room_number"`
	AvailableDays   pq.StringArray  `json:"available_days" db:"available_days"`
	StartTime       string          `json:"start_time" db:"start_time"`
	EndTime         string          `json:"end_time" db:"end_time"`
	IsAvailable     bool            `json:"is_available" db:"is_available"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt       *time.Time      `json:"-" db:"deleted_at"`
}

func (d *Doctor) FullName() string {
	return fmt.Sprintf("%s %s", d.FirstName, d.LastName)
}

type CreateDoctorRequest struct {
	FirstName       string          `json:"first_name" binding:"required"`
	LastName        string          `json:"last_name" binding:"required"`
	Email           string          `json:"email" binding:"required,email"`
	Phone           string          `json:"phone" binding:"required"`
	LicenseNumber   string          `json:"license_number" binding:"required"`
	Specialization  string          `json:"specialization" binding:"required"`
	Qualification   string          `json:"qualification"`
	ExperienceYears int             `json:"experience_years"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Department      string          `json:"department"`
	RoomNumber      string          `json:"room_number"`
	AvailableDays   []string        `json:"available_days"`
	StartTime       string          `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime         string          `json:"end_time" binding:"omitempty,datetime=15:04"`
}

type UpdateDoctorRequest struct {
	Phone           *string          `json:"phone"`
	Specialization  *string          `json:"specialization"`
	Qualification   *string          `json:"qualification"`
	ExperienceYears *int             `json:"experience_years"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee"`
	Department      *string          `json:"department"`
	RoomNumber      *string          `json:"room_number"`
	AvailableDays   []string         `json:"available_days"`
	StartTime       *string          `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime         *string          `json:"end_time" binding:"omitempty,datetime=15:04"`
}
