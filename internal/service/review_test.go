package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

func newTestReviewService() (*ReviewServiceImpl, *MockReviewRepository, *MockAppointmentRepository) {
	reviewRepo := &MockReviewRepository{}
	appointmentRepo := &MockAppointmentRepository{}
	svc := NewReviewService(reviewRepo, appointmentRepo, zap.NewNop())
	return svc, reviewRepo, appointmentRepo
}

func TestReviewCreate_Success(t *testing.T) {
	svc, reviewRepo, appointmentRepo := newTestReviewService()

	dto := domain.CreateReviewDTO{AppointmentID: 1, Rating: 5, Comment: "отличный врач"}
	appointment := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusCompleted}

	appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(appointment, nil)
	reviewRepo.On("Create", mock.Anything, int64(10), int64(5), dto).Return(int64(3), nil)

	id, err := svc.Create(context.Background(), patientIdentity(10), dto)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), id)
	reviewRepo.AssertExpectations(t)
}

func TestReviewCreate_SanitizesComment(t *testing.T) {
	svc, reviewRepo, appointmentRepo := newTestReviewService()

	dto := domain.CreateReviewDTO{AppointmentID: 1, Rating: 5, Comment: `хорошо <script>alert("1")</script>`}
	appointment := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusCompleted}

	appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(appointment, nil)
	reviewRepo.On("Create", mock.Anything, int64(10), int64(5),
		mock.MatchedBy(func(dto domain.CreateReviewDTO) bool {
			return !strings.ContainsAny(dto.Comment, `<>"`) && strings.Contains(dto.Comment, "хорошо")
		})).Return(int64(3), nil)

	_, err := svc.Create(context.Background(), patientIdentity(10), dto)

	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestReviewCreate_OnlyPatients(t *testing.T) {
	svc, reviewRepo, _ := newTestReviewService()

	dto := domain.CreateReviewDTO{AppointmentID: 1, Rating: 5}

	_, err := svc.Create(context.Background(), doctorIdentity(2, 5), dto)

	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
	reviewRepo.AssertNotCalled(t, "Create")
}

func TestReviewCreate_RatingOutOfRange(t *testing.T) {
	svc, reviewRepo, _ := newTestReviewService()

	for _, rating := range []int{0, 6, -1} {
		dto := domain.CreateReviewDTO{AppointmentID: 1, Rating: rating}

		_, err := svc.Create(context.Background(), patientIdentity(10), dto)

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	}
	reviewRepo.AssertNotCalled(t, "Create")
}

func TestReviewCreate_ForeignAppointment(t *testing.T) {
	svc, reviewRepo, appointmentRepo := newTestReviewService()

	dto := domain.CreateReviewDTO{AppointmentID: 1, Rating: 4}
	appointment := &domain.Appointment{ID: 1, PatientID: 11, DoctorID: 5, Status: domain.AppointmentStatusCompleted}

	appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(appointment, nil)

	_, err := svc.Create(context.Background(), patientIdentity(10), dto)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	reviewRepo.AssertNotCalled(t, "Create")
}

func TestReviewCreate_AppointmentNotCompleted(t *testing.T) {
	svc, reviewRepo, appointmentRepo := newTestReviewService()

	dto := domain.CreateReviewDTO{AppointmentID: 1, Rating: 4}
	appointment := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusConfirmed}

	appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(appointment, nil)

	_, err := svc.Create(context.Background(), patientIdentity(10), dto)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	reviewRepo.AssertNotCalled(t, "Create")
}

func TestReviewCreate_DuplicateConflict(t *testing.T) {
	svc, reviewRepo, appointmentRepo := newTestReviewService()

	dto := domain.CreateReviewDTO{AppointmentID: 1, Rating: 4}
	appointment := &domain.Appointment{ID: 1, PatientID: 10, DoctorID: 5, Status: domain.AppointmentStatusCompleted}

	appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(appointment, nil)
	reviewRepo.On("Create", mock.Anything, int64(10), int64(5), dto).
		Return(int64(0), domain.NewConflictError("отзыв на этот прием уже оставлен"))

	_, err := svc.Create(context.Background(), patientIdentity(10), dto)

	var conflictErr *domain.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestReviewUpdate_ByAuthor(t *testing.T) {
	svc, reviewRepo, _ := newTestReviewService()

	rating := 3
	dto := domain.UpdateReviewDTO{Rating: &rating}
	review := &domain.Review{ID: 3, PatientID: 10, DoctorID: 5, Rating: 5}

	reviewRepo.On("GetByID", mock.Anything, int64(3)).Return(review, nil)
	reviewRepo.On("Update", mock.Anything, int64(3), dto).Return(nil)

	err := svc.Update(context.Background(), patientIdentity(10), 3, dto)

	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestReviewUpdate_ForeignReviewForbidden(t *testing.T) {
	svc, reviewRepo, _ := newTestReviewService()

	review := &domain.Review{ID: 3, PatientID: 10, DoctorID: 5}
	reviewRepo.On("GetByID", mock.Anything, int64(3)).Return(review, nil)

	err := svc.Update(context.Background(), patientIdentity(11), 3, domain.UpdateReviewDTO{})

	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
	reviewRepo.AssertNotCalled(t, "Update")
}

func TestReviewUpdate_DoctorForbidden(t *testing.T) {
	svc, reviewRepo, _ := newTestReviewService()

	review := &domain.Review{ID: 3, PatientID: 10, DoctorID: 5}
	reviewRepo.On("GetByID", mock.Anything, int64(3)).Return(review, nil)

	err := svc.Update(context.Background(), doctorIdentity(2, 5), 3, domain.UpdateReviewDTO{})

	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
	reviewRepo.AssertNotCalled(t, "Update")
}

func TestReviewList_PatientSeesOwnByDefault(t *testing.T) {
	svc, reviewRepo, _ := newTestReviewService()

	reviewRepo.On("List", mock.Anything, mock.MatchedBy(func(filter domain.ReviewFilter) bool {
		return filter.PatientID != nil && *filter.PatientID == int64(10)
	})).Return([]domain.Review{}, nil)

	_, err := svc.List(context.Background(), patientIdentity(10), domain.ReviewFilter{})

	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestReviewList_DoctorFilterIsPublic(t *testing.T) {
	svc, reviewRepo, _ := newTestReviewService()

	doctorID := int64(5)
	reviewRepo.On("List", mock.Anything, mock.MatchedBy(func(filter domain.ReviewFilter) bool {
		return filter.DoctorID != nil && *filter.DoctorID == doctorID && filter.PatientID == nil
	})).Return([]domain.Review{}, nil)

	_, err := svc.List(context.Background(), patientIdentity(10), domain.ReviewFilter{DoctorID: &doctorID})

	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestReviewDoctorStats(t *testing.T) {
	svc, reviewRepo, _ := newTestReviewService()

	stats := &domain.DoctorReviewStats{
		TotalReviews:  4,
		AverageRating: 4.5,
		RatingDistribution: domain.RatingDistribution{
			FiveStar: 2,
			FourStar: 2,
		},
	}
	reviewRepo.On("DoctorStats", mock.Anything, int64(5)).Return(stats, nil)

	result, err := svc.DoctorStats(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, 4, result.TotalReviews)
	assert.InDelta(t, 4.5, result.AverageRating, 0.001)
}
