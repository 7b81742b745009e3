package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

func newTestRecordService() (*MedicalRecordServiceImpl, *MockMedicalRecordRepository, *MockAppointmentRepository, *MockUserRepository, *MockFileStorage) {
	recordRepo := &MockMedicalRecordRepository{}
	appointmentRepo := &MockAppointmentRepository{}
	userRepo := &MockUserRepository{}
	fileStorage := &MockFileStorage{}
	svc := NewMedicalRecordService(recordRepo, appointmentRepo, userRepo, fileStorage, zap.NewNop())
	return svc, recordRepo, appointmentRepo, userRepo, fileStorage
}

func TestRecordCreate_Success(t *testing.T) {
	svc, recordRepo, _, userRepo, _ := newTestRecordService()

	dto := domain.CreateMedicalRecordDTO{PatientID: 10, Diagnosis: "ОРВИ"}

	userRepo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.User{ID: 10, Role: domain.UserRolePatient}, nil)
	recordRepo.On("Create", mock.Anything, int64(5), dto).Return(int64(21), nil)

	id, err := svc.Create(context.Background(), doctorIdentity(2, 5), dto)

	assert.NoError(t, err)
	assert.Equal(t, int64(21), id)
	recordRepo.AssertExpectations(t)
}

func TestRecordCreate_OnlyDoctors(t *testing.T) {
	svc, recordRepo, _, _, _ := newTestRecordService()

	dto := domain.CreateMedicalRecordDTO{PatientID: 10, Diagnosis: "ОРВИ"}

	_, err := svc.Create(context.Background(), patientIdentity(10), dto)

	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
	recordRepo.AssertNotCalled(t, "Create")
}

func TestRecordCreate_EmptyDiagnosis(t *testing.T) {
	svc, recordRepo, _, _, _ := newTestRecordService()

	dto := domain.CreateMedicalRecordDTO{PatientID: 10, Diagnosis: "   "}

	_, err := svc.Create(context.Background(), doctorIdentity(2, 5), dto)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	recordRepo.AssertNotCalled(t, "Create")
}

func TestRecordCreate_AppointmentMismatch(t *testing.T) {
	svc, recordRepo, appointmentRepo, userRepo, _ := newTestRecordService()

	appointmentID := int64(1)
	dto := domain.CreateMedicalRecordDTO{PatientID: 10, AppointmentID: &appointmentID, Diagnosis: "ОРВИ"}

	userRepo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.User{ID: 10}, nil)
	appointmentRepo.On("GetByID", mock.Anything, appointmentID).
		Return(&domain.Appointment{ID: 1, PatientID: 10, DoctorID: 7}, nil)

	_, err := svc.Create(context.Background(), doctorIdentity(2, 5), dto)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	recordRepo.AssertNotCalled(t, "Create")
}

func TestRecordGetByID_PatientSeesOwn(t *testing.T) {
	svc, recordRepo, _, _, _ := newTestRecordService()

	record := &domain.MedicalRecord{ID: 21, PatientID: 10, DoctorID: 5}
	recordRepo.On("GetByID", mock.Anything, int64(21)).Return(record, nil)

	result, err := svc.GetByID(context.Background(), patientIdentity(10), 21)

	assert.NoError(t, err)
	assert.Equal(t, int64(21), result.ID)
}

func TestRecordGetByID_ForeignPatientForbidden(t *testing.T) {
	svc, recordRepo, _, _, _ := newTestRecordService()

	record := &domain.MedicalRecord{ID: 21, PatientID: 10, DoctorID: 5}
	recordRepo.On("GetByID", mock.Anything, int64(21)).Return(record, nil)

	_, err := svc.GetByID(context.Background(), patientIdentity(11), 21)

	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
}

func TestRecordUpdate_PatientForbidden(t *testing.T) {
	svc, recordRepo, _, _, _ := newTestRecordService()

	record := &domain.MedicalRecord{ID: 21, PatientID: 10, DoctorID: 5}
	recordRepo.On("GetByID", mock.Anything, int64(21)).Return(record, nil)

	err := svc.Update(context.Background(), patientIdentity(10), 21,
		domain.UpdateMedicalRecordDTO{Diagnosis: "уточненный диагноз"})

	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
	recordRepo.AssertNotCalled(t, "Update")
}

func TestRecordUploadAttachment_Success(t *testing.T) {
	svc, recordRepo, _, _, fileStorage := newTestRecordService()

	record := &domain.MedicalRecord{ID: 21, PatientID: 10, DoctorID: 5}
	file := []byte("%PDF-1.4")

	recordRepo.On("GetByID", mock.Anything, int64(21)).Return(record, nil)
	fileStorage.On("UploadFile", mock.Anything, file, "analysis.pdf").
		Return("http://localhost:9000/medbook/records/analysis.pdf", nil)
	recordRepo.On("AddAttachment", mock.Anything, int64(21),
		"http://localhost:9000/medbook/records/analysis.pdf").Return(nil)

	url, err := svc.UploadAttachment(context.Background(), doctorIdentity(2, 5), 21, file, "analysis.pdf")

	assert.NoError(t, err)
	assert.Contains(t, url, "analysis.pdf")
	recordRepo.AssertExpectations(t)
	fileStorage.AssertExpectations(t)
}

func TestRecordUploadAttachment_StorageNotConfigured(t *testing.T) {
	recordRepo := &MockMedicalRecordRepository{}
	appointmentRepo := &MockAppointmentRepository{}
	userRepo := &MockUserRepository{}
	svc := NewMedicalRecordService(recordRepo, appointmentRepo, userRepo, nil, zap.NewNop())

	_, err := svc.UploadAttachment(context.Background(), doctorIdentity(2, 5), 21, []byte("data"), "scan.png")

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	recordRepo.AssertNotCalled(t, "AddAttachment")
}

func TestRecordList_DoctorSeesOwnAndAsPatient(t *testing.T) {
	svc, recordRepo, _, _, _ := newTestRecordService()

	recordRepo.On("ListForDoctor", mock.Anything, int64(5), int64(2), 20, 0).
		Return([]domain.MedicalRecord{{ID: 21, DoctorID: 5}}, nil)

	records, err := svc.List(context.Background(), doctorIdentity(2, 5), domain.MedicalRecordFilter{})

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	recordRepo.AssertExpectations(t)
}

func TestRecordList_PatientScope(t *testing.T) {
	svc, recordRepo, _, _, _ := newTestRecordService()

	recordRepo.On("List", mock.Anything, mock.MatchedBy(func(filter domain.MedicalRecordFilter) bool {
		return filter.PatientID != nil && *filter.PatientID == int64(10) && filter.DoctorID == nil
	})).Return([]domain.MedicalRecord{}, nil)

	_, err := svc.List(context.Background(), patientIdentity(10), domain.MedicalRecordFilter{})

	assert.NoError(t, err)
	recordRepo.AssertExpectations(t)
}
