package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"medbook/internal/domain"
)

type Repositories struct {
	User        UserRepository
	Auth        AuthRepository
	Doctor      DoctorRepository
	TimeSlot    TimeSlotRepository
	Appointment AppointmentRepository
	Record      MedicalRecordRepository
	Review      ReviewRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Auth:        NewAuthRepository(db),
		Doctor:      NewDoctorRepository(db),
		TimeSlot:    NewTimeSlotRepository(db),
		Appointment: NewAppointmentRepository(db),
		Record:      NewMedicalRecordRepository(db),
		Review:      NewReviewRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type DoctorRepository interface {
	Create(ctx context.Context, userID int64, doctor domain.CreateDoctorProfileDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.DoctorProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.DoctorProfile, error)
	Update(ctx context.Context, id int64, doctor domain.UpdateDoctorProfileDTO) error
	UpdateAvailability(ctx context.Context, id int64, dto domain.DeclareAvailabilityDTO) error
	List(ctx context.Context, filter domain.DoctorFilter) ([]domain.DoctorProfile, int, error)
}

type TimeSlotRepository interface {
	Create(ctx context.Context, doctorID int64, date string, startTime, endTime string) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	List(ctx context.Context, filter domain.TimeSlotFilter) ([]domain.TimeSlot, error)
	MarkBooked(ctx context.Context, id int64) error
	MarkReleased(ctx context.Context, id int64) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, patientID int64, dto domain.CreateAppointmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// UpdateStatus атомарно переводит прием из одного из статусов from в статус to.
	UpdateStatus(ctx context.Context, id int64, from []domain.AppointmentStatus, to domain.AppointmentStatus, notes *string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	Stats(ctx context.Context, filter domain.AppointmentFilter) (*domain.AppointmentStats, error)
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, doctorID int64, dto domain.CreateMedicalRecordDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error)
	Update(ctx context.Context, id int64, dto domain.UpdateMedicalRecordDTO) error
	AddAttachment(ctx context.Context, id int64, url string) error
	List(ctx context.Context, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, error)
	ListForDoctor(ctx context.Context, doctorID, doctorUserID int64, limit, offset int) ([]domain.MedicalRecord, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, patientID, doctorID int64, dto domain.CreateReviewDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Update(ctx context.Context, id int64, dto domain.UpdateReviewDTO) error
	List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error)
	DoctorStats(ctx context.Context, doctorID int64) (*domain.DoctorReviewStats, error)
}
