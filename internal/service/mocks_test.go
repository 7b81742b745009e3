package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"medbook/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.CreateUserDTO) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) CreateSession(ctx context.Context, session domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockAuthRepository) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthRepository) DeleteSession(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAuthRepository) DeleteSessionsByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(ctx context.Context, userID int64, doctor domain.CreateDoctorProfileDTO) (int64, error) {
	args := m.Called(ctx, userID, doctor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDoctorRepository) GetByID(ctx context.Context, id int64) (*domain.DoctorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DoctorProfile), args.Error(1)
}

func (m *MockDoctorRepository) GetByUserID(ctx context.Context, userID int64) (*domain.DoctorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DoctorProfile), args.Error(1)
}

func (m *MockDoctorRepository) Update(ctx context.Context, id int64, doctor domain.UpdateDoctorProfileDTO) error {
	args := m.Called(ctx, id, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) UpdateAvailability(ctx context.Context, id int64, dto domain.DeclareAvailabilityDTO) error {
	args := m.Called(ctx, id, dto)
	return args.Error(0)
}

func (m *MockDoctorRepository) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.DoctorProfile, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DoctorProfile), args.Int(1), args.Error(2)
}

type MockTimeSlotRepository struct {
	mock.Mock
}

func (m *MockTimeSlotRepository) Create(ctx context.Context, doctorID int64, date string, startTime, endTime string) (int64, error) {
	args := m.Called(ctx, doctorID, date, startTime, endTime)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTimeSlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

func (m *MockTimeSlotRepository) List(ctx context.Context, filter domain.TimeSlotFilter) ([]domain.TimeSlot, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeSlot), args.Error(1)
}

func (m *MockTimeSlotRepository) MarkBooked(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTimeSlotRepository) MarkReleased(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, patientID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	args := m.Called(ctx, patientID, dto)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id int64, from []domain.AppointmentStatus, to domain.AppointmentStatus, notes *string) (*domain.Appointment, error) {
	args := m.Called(ctx, id, from, to, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockAppointmentRepository) Stats(ctx context.Context, filter domain.AppointmentFilter) (*domain.AppointmentStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppointmentStats), args.Error(1)
}

type MockMedicalRecordRepository struct {
	mock.Mock
}

func (m *MockMedicalRecordRepository) Create(ctx context.Context, doctorID int64, dto domain.CreateMedicalRecordDTO) (int64, error) {
	args := m.Called(ctx, doctorID, dto)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMedicalRecordRepository) GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MedicalRecord), args.Error(1)
}

func (m *MockMedicalRecordRepository) Update(ctx context.Context, id int64, dto domain.UpdateMedicalRecordDTO) error {
	args := m.Called(ctx, id, dto)
	return args.Error(0)
}

func (m *MockMedicalRecordRepository) AddAttachment(ctx context.Context, id int64, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

func (m *MockMedicalRecordRepository) List(ctx context.Context, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MedicalRecord), args.Error(1)
}

func (m *MockMedicalRecordRepository) ListForDoctor(ctx context.Context, doctorID, doctorUserID int64, limit, offset int) ([]domain.MedicalRecord, error) {
	args := m.Called(ctx, doctorID, doctorUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MedicalRecord), args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, patientID, doctorID int64, dto domain.CreateReviewDTO) (int64, error) {
	args := m.Called(ctx, patientID, doctorID, dto)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, id int64, dto domain.UpdateReviewDTO) error {
	args := m.Called(ctx, id, dto)
	return args.Error(0)
}

func (m *MockReviewRepository) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) DoctorStats(ctx context.Context, doctorID int64) (*domain.DoctorReviewStats, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DoctorReviewStats), args.Error(1)
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) UploadFile(ctx context.Context, data []byte, filename string) (string, error) {
	args := m.Called(ctx, data, filename)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteFile(ctx context.Context, fileURL string) error {
	args := m.Called(ctx, fileURL)
	return args.Error(0)
}

func (m *MockFileStorage) GetFile(ctx context.Context, fileURL string) ([]byte, error) {
	args := m.Called(ctx, fileURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFileStorage) GetPresignedURL(ctx context.Context, fileURL string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, fileURL, expiry)
	return args.String(0), args.Error(1)
}
