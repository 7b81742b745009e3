package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

func newTestAppointmentService() (*AppointmentServiceImpl, *MockAppointmentRepository, *MockDoctorRepository) {
	appointmentRepo := &MockAppointmentRepository{}
	doctorRepo := &MockDoctorRepository{}
	userRepo := &MockUserRepository{}
	svc := NewAppointmentService(appointmentRepo, doctorRepo, userRepo, zap.NewNop())
	return svc, appointmentRepo, doctorRepo
}

func patientIdentity(userID int64) domain.Identity {
	return domain.Identity{UserID: userID, Role: domain.UserRolePatient}
}

func doctorIdentity(userID, doctorID int64) domain.Identity {
	return domain.Identity{UserID: userID, Role: domain.UserRoleDoctor, DoctorID: &doctorID}
}

func TestAppointmentCreate_Success(t *testing.T) {
	svc, appointmentRepo, doctorRepo := newTestAppointmentService()

	dto := domain.CreateAppointmentDTO{
		DoctorID: 5,
		Date:     "2030-05-15",
		Time:     "10:00",
		Reason:   "головная боль",
	}

	doctorRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.DoctorProfile{ID: 5, IsAvailable: true}, nil)
	appointmentRepo.On("Create", mock.Anything, int64(10), dto).
		Return(int64(42), nil)

	id, err := svc.Create(context.Background(), patientIdentity(10), dto)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
	appointmentRepo.AssertExpectations(t)
	doctorRepo.AssertExpectations(t)
}

func TestAppointmentCreate_OnlyPatients(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	dto := domain.CreateAppointmentDTO{DoctorID: 5, Date: "2030-05-15", Time: "10:00"}

	_, err := svc.Create(context.Background(), doctorIdentity(2, 5), dto)

	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
	appointmentRepo.AssertNotCalled(t, "Create")
}

func TestAppointmentCreate_PastDate(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	dto := domain.CreateAppointmentDTO{DoctorID: 5, Date: "2020-01-01", Time: "10:00"}

	_, err := svc.Create(context.Background(), patientIdentity(10), dto)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	appointmentRepo.AssertNotCalled(t, "Create")
}

func TestAppointmentCreate_BadDateFormat(t *testing.T) {
	svc, _, _ := newTestAppointmentService()

	dto := domain.CreateAppointmentDTO{DoctorID: 5, Date: "15.05.2030", Time: "10:00"}

	_, err := svc.Create(context.Background(), patientIdentity(10), dto)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAppointmentCreate_DoctorUnavailable(t *testing.T) {
	svc, appointmentRepo, doctorRepo := newTestAppointmentService()

	dto := domain.CreateAppointmentDTO{DoctorID: 5, Date: "2030-05-15", Time: "10:00"}

	doctorRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.DoctorProfile{ID: 5, IsAvailable: false}, nil)

	_, err := svc.Create(context.Background(), patientIdentity(10), dto)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	appointmentRepo.AssertNotCalled(t, "Create")
}

func TestAppointmentCreate_SlotConflict(t *testing.T) {
	svc, appointmentRepo, doctorRepo := newTestAppointmentService()

	dto := domain.CreateAppointmentDTO{DoctorID: 5, Date: "2030-05-15", Time: "10:00"}

	doctorRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.DoctorProfile{ID: 5, IsAvailable: true}, nil)
	appointmentRepo.On("Create", mock.Anything, int64(10), dto).
		Return(int64(0), domain.NewConflictError("выбранный слот времени уже занят"))

	_, err := svc.Create(context.Background(), patientIdentity(10), dto)

	var conflictErr *domain.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestAppointmentConfirm_ByAssignedDoctor(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	appointment := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusPending}
	confirmed := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusConfirmed}

	appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(appointment, nil)
	appointmentRepo.On("UpdateStatus", mock.Anything, int64(1),
		[]domain.AppointmentStatus{domain.AppointmentStatusPending},
		domain.AppointmentStatusConfirmed, (*string)(nil)).
		Return(confirmed, nil)

	result, err := svc.Confirm(context.Background(), doctorIdentity(2, 5), 1)

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusConfirmed, result.Status)
	appointmentRepo.AssertExpectations(t)
}

func TestAppointmentConfirm_PatientForbidden(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	appointment := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusPending}
	appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(appointment, nil)

	_, err := svc.Confirm(context.Background(), patientIdentity(10), 1)

	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
	appointmentRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestAppointmentConfirm_OtherDoctorForbidden(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	appointment := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusPending}
	appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(appointment, nil)

	_, err := svc.Confirm(context.Background(), doctorIdentity(3, 7), 1)

	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
	appointmentRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestAppointmentComplete_PassesNotes(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	appointment := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusConfirmed}
	completed := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusCompleted}

	appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(appointment, nil)
	appointmentRepo.On("UpdateStatus", mock.Anything, int64(1),
		[]domain.AppointmentStatus{domain.AppointmentStatusPending, domain.AppointmentStatusConfirmed},
		domain.AppointmentStatusCompleted,
		mock.MatchedBy(func(notes *string) bool {
			return notes != nil && *notes == "назначено лечение"
		})).
		Return(completed, nil)

	result, err := svc.Complete(context.Background(), doctorIdentity(2, 5), 1,
		domain.CompleteAppointmentDTO{Notes: "назначено лечение"})

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusCompleted, result.Status)
	appointmentRepo.AssertExpectations(t)
}

func TestAppointmentCancel_InvalidTransition(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	appointment := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusCompleted}

	appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(appointment, nil)
	appointmentRepo.On("UpdateStatus", mock.Anything, int64(1),
		[]domain.AppointmentStatus{domain.AppointmentStatusPending, domain.AppointmentStatusConfirmed},
		domain.AppointmentStatusCancelled, (*string)(nil)).
		Return(nil, domain.NewInvalidTransitionError("недопустимый переход статуса: completed -> cancelled"))

	_, err := svc.Cancel(context.Background(), patientIdentity(10), 1)

	var transitionErr *domain.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestAppointmentCancel_ByPatientOwner(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	appointment := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusPending}
	cancelled := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusCancelled}

	appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(appointment, nil)
	appointmentRepo.On("UpdateStatus", mock.Anything, int64(1),
		[]domain.AppointmentStatus{domain.AppointmentStatusPending, domain.AppointmentStatusConfirmed},
		domain.AppointmentStatusCancelled, (*string)(nil)).
		Return(cancelled, nil)

	result, err := svc.Cancel(context.Background(), patientIdentity(10), 1)

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusCancelled, result.Status)
}

func TestAppointmentGetByID_ForeignPatientForbidden(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	appointment := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusPending}
	appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(appointment, nil)

	_, err := svc.GetByID(context.Background(), patientIdentity(11), 1)

	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
}

func TestAppointmentGetByID_NotFound(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	appointmentRepo.On("GetByID", mock.Anything, int64(99)).
		Return(nil, domain.NewNotFoundError("прием не найден"))

	_, err := svc.GetByID(context.Background(), patientIdentity(10), 99)

	var notFoundErr *domain.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestAppointmentList_ScopedToPatient(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	matchPatientFilter := mock.MatchedBy(func(filter domain.AppointmentFilter) bool {
		return filter.PatientID != nil && *filter.PatientID == int64(10) && filter.Limit == 20
	})
	appointmentRepo.On("List", mock.Anything, matchPatientFilter).
		Return([]domain.Appointment{{ID: 1, PatientID: 10}}, nil)
	appointmentRepo.On("CountByFilter", mock.Anything, matchPatientFilter).
		Return(1, nil)

	appointments, total, err := svc.List(context.Background(), patientIdentity(10), domain.AppointmentFilter{})

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, appointments, 1)
	appointmentRepo.AssertExpectations(t)
}

func TestAppointmentList_ScopedToDoctor(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	matchDoctorFilter := mock.MatchedBy(func(filter domain.AppointmentFilter) bool {
		return filter.DoctorID != nil && *filter.DoctorID == int64(5) && filter.PatientID == nil
	})
	appointmentRepo.On("List", mock.Anything, matchDoctorFilter).
		Return([]domain.Appointment{}, nil)
	appointmentRepo.On("CountByFilter", mock.Anything, matchDoctorFilter).
		Return(0, nil)

	_, _, err := svc.List(context.Background(), doctorIdentity(2, 5), domain.AppointmentFilter{})

	assert.NoError(t, err)
	appointmentRepo.AssertExpectations(t)
}

func TestAppointmentList_DoctorWithoutProfile(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	identity := domain.Identity{UserID: 2, Role: domain.UserRoleDoctor}

	_, _, err := svc.List(context.Background(), identity, domain.AppointmentFilter{})

	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
	appointmentRepo.AssertNotCalled(t, "List")
}

func TestAppointmentListUpcoming_ActiveOnly(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	appointmentRepo.On("List", mock.Anything, mock.MatchedBy(func(filter domain.AppointmentFilter) bool {
		return filter.ActiveOnly && filter.StartDate != nil
	})).Return([]domain.Appointment{}, nil)

	_, err := svc.ListUpcoming(context.Background(), patientIdentity(10))

	assert.NoError(t, err)
	appointmentRepo.AssertExpectations(t)
}

func TestAppointmentStats_RepoError(t *testing.T) {
	svc, appointmentRepo, _ := newTestAppointmentService()

	appointmentRepo.On("Stats", mock.Anything, mock.Anything).
		Return(nil, errors.New("ошибка базы данных"))

	_, err := svc.Stats(context.Background(), patientIdentity(10))

	assert.Error(t, err)
}
