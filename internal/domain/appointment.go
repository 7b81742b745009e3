package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Терминальные статусы: из них нет переходов.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

func (s AppointmentStatus) IsActive() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

type Appointment struct {
	ID          int64             `json:"id"`
	PatientID   int64             `json:"patient_id"`
	DoctorID    int64             `json:"doctor_id"`
	Date        time.Time         `json:"date"`
	Time        string            `json:"time"`
	Status      AppointmentStatus `json:"status"`
	Reason      string            `json:"reason,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	PatientName string            `json:"patient_name,omitempty"`
	DoctorName  string            `json:"doctor_name,omitempty"`
}

type CreateAppointmentDTO struct {
	DoctorID int64  `json:"doctor_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Reason   string `json:"reason"`
}

type CompleteAppointmentDTO struct {
	Notes string `json:"notes"`
}

type AppointmentFilter struct {
	PatientID  *int64             `json:"patient_id"`
	DoctorID   *int64             `json:"doctor_id"`
	Status     *AppointmentStatus `json:"status"`
	StartDate  *time.Time         `json:"start_date"`
	EndDate    *time.Time         `json:"end_date"`
	ActiveOnly bool               `json:"active_only"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}

type AppointmentStats struct {
	TotalAppointments     int `json:"total_appointments"`
	PendingAppointments   int `json:"pending_appointments"`
	ConfirmedAppointments int `json:"confirmed_appointments"`
	CompletedAppointments int `json:"completed_appointments"`
	CancelledAppointments int `json:"cancelled_appointments"`
}
