package domain

import (
	"time"
)

type MedicalRecord struct {
	ID            int64     `json:"id"`
	PatientID     int64     `json:"patient_id"`
	DoctorID      int64     `json:"doctor_id"`
	AppointmentID *int64    `json:"appointment_id"`
	Diagnosis     string    `json:"diagnosis"`
	Prescription  string    `json:"prescription,omitempty"`
	LabResults    string    `json:"lab_results,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Attachments   []string  `json:"attachments"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PatientName   string    `json:"patient_name,omitempty"`
	DoctorName    string    `json:"doctor_name,omitempty"`
}

type CreateMedicalRecordDTO struct {
	PatientID     int64  `json:"patient_id" binding:"required"`
	AppointmentID *int64 `json:"appointment_id"`
	Diagnosis     string `json:"diagnosis" binding:"required"`
	Prescription  string `json:"prescription"`
	LabResults    string `json:"lab_results"`
	Notes         string `json:"notes"`
}

type UpdateMedicalRecordDTO struct {
	Diagnosis    string `json:"diagnosis" binding:"required"`
	Prescription string `json:"prescription"`
	LabResults   string `json:"lab_results"`
	Notes        string `json:"notes"`
}

type MedicalRecordFilter struct {
	PatientID *int64 `json:"patient_id"`
	DoctorID  *int64 `json:"doctor_id"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}
