package service

import (
	"context"

	"go.uber.org/zap"

	"medbook/config"
	"medbook/internal/domain"
	"medbook/internal/repository"
	"medbook/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
}

type Services struct {
	User        UserService
	Auth        AuthService
	Doctor      DoctorService
	TimeSlot    TimeSlotService
	Appointment AppointmentService
	Record      MedicalRecordService
	Review      ReviewService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:        NewUserService(deps.Repos.User, deps.Logger),
		Auth:        NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Repos.Doctor, deps.Config.JWT, deps.Logger),
		Doctor:      NewDoctorService(deps.Repos.Doctor, deps.Repos.User, deps.Logger),
		TimeSlot:    NewTimeSlotService(deps.Repos.TimeSlot, deps.Repos.Doctor, deps.Logger),
		Appointment: NewAppointmentService(deps.Repos.Appointment, deps.Repos.Doctor, deps.Repos.User, deps.Logger),
		Record:      NewMedicalRecordService(deps.Repos.Record, deps.Repos.Appointment, deps.Repos.User, deps.FileStorage, deps.Logger),
		Review:      NewReviewService(deps.Repos.Review, deps.Repos.Appointment, deps.Logger),
	}
}

type UserService interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	RegisterDoctor(ctx context.Context, dto domain.RegisterDoctorRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type DoctorService interface {
	GetByID(ctx context.Context, id int64) (*domain.DoctorProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.DoctorProfile, error)
	Update(ctx context.Context, identity domain.Identity, id int64, dto domain.UpdateDoctorProfileDTO) error
	DeclareAvailability(ctx context.Context, identity domain.Identity, id int64, dto domain.DeclareAvailabilityDTO) error
	List(ctx context.Context, filter domain.DoctorFilter) ([]domain.DoctorProfile, int, error)
}

type TimeSlotService interface {
	Create(ctx context.Context, identity domain.Identity, dto domain.CreateTimeSlotDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	List(ctx context.Context, filter domain.TimeSlotFilter) ([]domain.TimeSlot, error)
}

type AppointmentService interface {
	Create(ctx context.Context, identity domain.Identity, dto domain.CreateAppointmentDTO) (int64, error)
	GetByID(ctx context.Context, identity domain.Identity, id int64) (*domain.Appointment, error)
	Confirm(ctx context.Context, identity domain.Identity, id int64) (*domain.Appointment, error)
	Complete(ctx context.Context, identity domain.Identity, id int64, dto domain.CompleteAppointmentDTO) (*domain.Appointment, error)
	Cancel(ctx context.Context, identity domain.Identity, id int64) (*domain.Appointment, error)
	List(ctx context.Context, identity domain.Identity, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
	ListUpcoming(ctx context.Context, identity domain.Identity) ([]domain.Appointment, error)
	Stats(ctx context.Context, identity domain.Identity) (*domain.AppointmentStats, error)
}

type MedicalRecordService interface {
	Create(ctx context.Context, identity domain.Identity, dto domain.CreateMedicalRecordDTO) (int64, error)
	GetByID(ctx context.Context, identity domain.Identity, id int64) (*domain.MedicalRecord, error)
	Update(ctx context.Context, identity domain.Identity, id int64, dto domain.UpdateMedicalRecordDTO) error
	UploadAttachment(ctx context.Context, identity domain.Identity, id int64, file []byte, filename string) (string, error)
	List(ctx context.Context, identity domain.Identity, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, error)
}

type ReviewService interface {
	Create(ctx context.Context, identity domain.Identity, dto domain.CreateReviewDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Update(ctx context.Context, identity domain.Identity, id int64, dto domain.UpdateReviewDTO) error
	List(ctx context.Context, identity domain.Identity, filter domain.ReviewFilter) ([]domain.Review, error)
	DoctorStats(ctx context.Context, doctorID int64) (*domain.DoctorReviewStats, error)
}
