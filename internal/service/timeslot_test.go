package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

func newTestTimeSlotService() (*TimeSlotServiceImpl, *MockTimeSlotRepository, *MockDoctorRepository) {
	slotRepo := &MockTimeSlotRepository{}
	doctorRepo := &MockDoctorRepository{}
	svc := NewTimeSlotService(slotRepo, doctorRepo, zap.NewNop())
	return svc, slotRepo, doctorRepo
}

func TestTimeSlotCreate_DoctorUsesOwnProfile(t *testing.T) {
	svc, slotRepo, doctorRepo := newTestTimeSlotService()

	// Врач создает слот для себя, doctor_id из тела игнорируется.
	dto := domain.CreateTimeSlotDTO{DoctorID: 99, Date: "2030-05-15", StartTime: "10:00", EndTime: "11:00"}

	doctorRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.DoctorProfile{ID: 5}, nil)
	slotRepo.On("Create", mock.Anything, int64(5), "2030-05-15", "10:00", "11:00").
		Return(int64(7), nil)

	id, err := svc.Create(context.Background(), doctorIdentity(2, 5), dto)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), id)
	slotRepo.AssertExpectations(t)
}

func TestTimeSlotCreate_AdminForAnyDoctor(t *testing.T) {
	svc, slotRepo, doctorRepo := newTestTimeSlotService()

	dto := domain.CreateTimeSlotDTO{DoctorID: 3, Date: "2030-05-15", StartTime: "10:00", EndTime: "11:00"}

	doctorRepo.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.DoctorProfile{ID: 3}, nil)
	slotRepo.On("Create", mock.Anything, int64(3), "2030-05-15", "10:00", "11:00").
		Return(int64(8), nil)

	identity := domain.Identity{UserID: 1, Role: domain.UserRoleAdmin}
	id, err := svc.Create(context.Background(), identity, dto)

	assert.NoError(t, err)
	assert.Equal(t, int64(8), id)
}

func TestTimeSlotCreate_PatientForbidden(t *testing.T) {
	svc, slotRepo, _ := newTestTimeSlotService()

	dto := domain.CreateTimeSlotDTO{DoctorID: 3, Date: "2030-05-15", StartTime: "10:00", EndTime: "11:00"}

	_, err := svc.Create(context.Background(), patientIdentity(10), dto)

	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
	slotRepo.AssertNotCalled(t, "Create")
}

func TestTimeSlotCreate_StartAfterEnd(t *testing.T) {
	svc, slotRepo, doctorRepo := newTestTimeSlotService()

	dto := domain.CreateTimeSlotDTO{Date: "2030-05-15", StartTime: "12:00", EndTime: "11:00"}

	doctorRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.DoctorProfile{ID: 5}, nil)

	_, err := svc.Create(context.Background(), doctorIdentity(2, 5), dto)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	slotRepo.AssertNotCalled(t, "Create")
}

func TestTimeSlotCreate_BadTimeFormat(t *testing.T) {
	svc, slotRepo, doctorRepo := newTestTimeSlotService()

	dto := domain.CreateTimeSlotDTO{Date: "2030-05-15", StartTime: "10am", EndTime: "11:00"}

	doctorRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.DoctorProfile{ID: 5}, nil)

	_, err := svc.Create(context.Background(), doctorIdentity(2, 5), dto)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	slotRepo.AssertNotCalled(t, "Create")
}

func TestTimeSlotCreate_PastDate(t *testing.T) {
	svc, slotRepo, doctorRepo := newTestTimeSlotService()

	dto := domain.CreateTimeSlotDTO{Date: "2020-01-01", StartTime: "10:00", EndTime: "11:00"}

	doctorRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.DoctorProfile{ID: 5}, nil)

	_, err := svc.Create(context.Background(), doctorIdentity(2, 5), dto)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	slotRepo.AssertNotCalled(t, "Create")
}

func TestTimeSlotCreate_UnknownDoctor(t *testing.T) {
	svc, slotRepo, doctorRepo := newTestTimeSlotService()

	dto := domain.CreateTimeSlotDTO{DoctorID: 3, Date: "2030-05-15", StartTime: "10:00", EndTime: "11:00"}

	doctorRepo.On("GetByID", mock.Anything, int64(3)).
		Return(nil, domain.NewNotFoundError("врач не найден"))

	identity := domain.Identity{UserID: 1, Role: domain.UserRoleAdmin}
	_, err := svc.Create(context.Background(), identity, dto)

	var notFoundErr *domain.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	slotRepo.AssertNotCalled(t, "Create")
}

func TestTimeSlotList_ClampsLimit(t *testing.T) {
	svc, slotRepo, _ := newTestTimeSlotService()

	slotRepo.On("List", mock.Anything, mock.MatchedBy(func(filter domain.TimeSlotFilter) bool {
		return filter.Limit == 200
	})).Return([]domain.TimeSlot{}, nil)

	_, err := svc.List(context.Background(), domain.TimeSlotFilter{Limit: 1000})

	assert.NoError(t, err)
	slotRepo.AssertExpectations(t)
}
