package domain

import (
	"time"
)

type Specialization string

const (
	SpecializationCardiology  Specialization = "cardiology"
	SpecializationDermatology Specialization = "dermatology"
	SpecializationNeurology   Specialization = "neurology"
	SpecializationOrthopedics Specialization = "orthopedics"
	SpecializationPediatrics  Specialization = "pediatrics"
	SpecializationPsychiatry  Specialization = "psychiatry"
	SpecializationGeneral     Specialization = "general"
)

func (s Specialization) IsValid() bool {
	switch s {
	case SpecializationCardiology, SpecializationDermatology, SpecializationNeurology,
		SpecializationOrthopedics, SpecializationPediatrics, SpecializationPsychiatry,
		SpecializationGeneral:
		return true
	}
	return false
}

type DoctorProfile struct {
	ID                 int64          `json:"id"`
	UserID             int64          `json:"user_id"`
	Specialization     Specialization `json:"specialization"`
	LicenseNumber      string         `json:"license_number"`
	ExperienceYears    int            `json:"experience_years"`
	ConsultationFee    float64        `json:"consultation_fee"`
	Bio                string         `json:"bio,omitempty"`
	AvailableDays      []string       `json:"available_days"`
	AvailableTimeStart string         `json:"available_time_start"`
	AvailableTimeEnd   string         `json:"available_time_end"`
	IsAvailable        bool           `json:"is_available"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DoctorName         string         `json:"doctor_name,omitempty"`
}

type CreateDoctorProfileDTO struct {
	UserID             int64          `json:"user_id,omitempty"`
	Specialization     Specialization `json:"specialization" binding:"required,oneof=cardiology dermatology neurology orthopedics pediatrics psychiatry general"`
	LicenseNumber      string         `json:"license_number" binding:"required"`
	ExperienceYears    int            `json:"experience_years" binding:"min=0"`
	ConsultationFee    float64        `json:"consultation_fee" binding:"min=0"`
	Bio                string         `json:"bio"`
	AvailableDays      []string       `json:"available_days"`
	AvailableTimeStart string         `json:"available_time_start"`
	AvailableTimeEnd   string         `json:"available_time_end"`
}

type UpdateDoctorProfileDTO struct {
	Specialization  *Specialization `json:"specialization" binding:"omitempty,oneof=cardiology dermatology neurology orthopedics pediatrics psychiatry general"`
	ExperienceYears *int            `json:"experience_years" binding:"omitempty,min=0"`
	ConsultationFee *float64        `json:"consultation_fee" binding:"omitempty,min=0"`
	Bio             *string         `json:"bio"`
}

type DeclareAvailabilityDTO struct {
	AvailableDays      []string `json:"available_days" binding:"required"`
	AvailableTimeStart string   `json:"available_time_start" binding:"required"`
	AvailableTimeEnd   string   `json:"available_time_end" binding:"required"`
	IsAvailable        bool     `json:"is_available"`
}

type DoctorFilter struct {
	Specialization *Specialization `json:"specialization"`
	AvailableOnly  bool            `json:"available_only"`
	Limit          int             `json:"limit"`
	Offset         int             `json:"offset"`
}
