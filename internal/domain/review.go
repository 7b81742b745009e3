package domain

import (
	"time"
)

type Review struct {
	ID            int64     `json:"id"`
	PatientID     int64     `json:"patient_id"`
	DoctorID      int64     `json:"doctor_id"`
	AppointmentID int64     `json:"appointment_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PatientName   string    `json:"patient_name,omitempty"`
}

type CreateReviewDTO struct {
	AppointmentID int64  `json:"appointment_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment"`
}

type UpdateReviewDTO struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

type ReviewFilter struct {
	DoctorID  *int64 `json:"doctor_id"`
	PatientID *int64 `json:"patient_id"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}

type RatingDistribution struct {
	FiveStar  int `json:"5_star"`
	FourStar  int `json:"4_star"`
	ThreeStar int `json:"3_star"`
	TwoStar   int `json:"2_star"`
	OneStar   int `json:"1_star"`
}

type DoctorReviewStats struct {
	TotalReviews       int                `json:"total_reviews"`
	AverageRating      float64            `json:"average_rating"`
	RatingDistribution RatingDistribution `json:"rating_distribution"`
}
