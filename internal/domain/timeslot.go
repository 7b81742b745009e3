package domain

import (
	"time"
)

type TimeSlot struct {
	ID         int64     `json:"id"`
	DoctorID   int64     `json:"doctor_id"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	IsBooked   bool      `json:"is_booked"`
	CreatedAt  time.Time `json:"created_at"`
	DoctorName string    `json:"doctor_name,omitempty"`
}

type CreateTimeSlotDTO struct {
	DoctorID  int64  `json:"doctor_id,omitempty"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type TimeSlotFilter struct {
	DoctorID      *int64     `json:"doctor_id"`
	Date          *time.Time `json:"date"`
	AvailableOnly bool       `json:"available_only"`
	Limit         int        `json:"limit"`
	Offset        int        `json:"offset"`
}
