package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type Patient struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	FirstName        string     `json:"first_name" db:"first_name"`
	LastName         string     `json:"last_name" db:"last_name"`
	Email            string     `json:"email" db:"email"`
	Phone            string     `json:"phone" db:"phone"`
	DateOfBirth      string     `json:"date_of_birth" db:"date_of_birth"`
	Gender           Gender     `json:"gender" db:"gender"`
	Address          string     `json:"address" db:"address"`
	BloodGroup       string     `json:"blood_group" db:"blood_group"`
	EmergencyContact string     `json:"emergency_contact" db:"emergency_contact"`
	MedicalHistory   string     `json:"medical_history" db:"medical_history"`
	Allergies        string     `json:"allergies" db:"allergies"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt        *time.Time `json:"-" db:"deleted_at"`
}

func (p *Patient) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}

type CreatePatientRequest struct {
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	Email            string `json:"email" binding:"omitempty,email"`
	Phone            string `json:"phone" binding:"required"`
	DateOfBirth      string `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender           Gender `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
	Address          string `json:"address"`
	BloodGroup       string `json:"blood_group"`
	EmergencyContact string `json:"emergency_contact"`
	MedicalHistory   string `json:"medical_history"`
	Allergies        string `json:"allergies"`
}

type UpdatePatientRequest struct {
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	BloodGroup       *string `json:"blood_group"`
	EmergencyContact *string `json:"emergency_contact"`
	MedicalHistory   *string `json:"medical_history"`
	Allergies        *string `json:"allergies"`
}
