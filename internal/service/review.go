package service

import (
	"context"

	"go.uber.org/zap"

	"medbook/internal/domain"
	"medbook/internal/repository"
	"medbook/pkg/validator"
)

type ReviewServiceImpl struct {
	repo            repository.ReviewRepository
	appointmentRepo repository.AppointmentRepository
	logger          *zap.Logger
}

func NewReviewService(repo repository.ReviewRepository, appointmentRepo repository.AppointmentRepository, logger *zap.Logger) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

func (s *ReviewServiceImpl) Create(ctx context.Context, identity domain.Identity, dto domain.CreateReviewDTO) (int64, error) {
	if identity.Role != domain.UserRolePatient {
		return 0, domain.NewAuthorizationError("оставлять отзывы могут только пациенты")
	}

	if dto.Rating < 1 || dto.Rating > 5 {
		return 0, domain.NewValidationError("оценка должна быть от 1 до 5")
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, dto.AppointmentID)
	if err != nil {
		return 0, err
	}

	if appointment.PatientID != identity.UserID {
		return 0, domain.NewValidationError("отзыв можно оставить только на свой прием")
	}

	if appointment.Status != domain.AppointmentStatusCompleted {
		return 0, domain.NewValidationError("отзыв можно оставить только на завершенный прием")
	}

	// Комментарий попадает в публичную выдачу, поэтому очищается от разметки.
	dto.Comment = validator.SanitizeString(dto.Comment)

	id, err := s.repo.Create(ctx, identity.UserID, appointment.DoctorID, dto)
	if err != nil {
		s.logger.Error("ошибка создания отзыва",
			zap.Int64("patientId", identity.UserID),
			zap.Int64("appointmentId", dto.AppointmentID),
			zap.Error(err))
		return 0, err
	}

	s.logger.Info("создан отзыв",
		zap.Int64("reviewId", id),
		zap.Int64("doctorId", appointment.DoctorID),
		zap.Int("rating", dto.Rating))

	return id, nil
}

func (s *ReviewServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ReviewServiceImpl) Update(ctx context.Context, identity domain.Identity, id int64, dto domain.UpdateReviewDTO) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanMutateReview(identity, *review) {
		return domain.NewAuthorizationError("нет прав на изменение этого отзыва")
	}

	if dto.Rating != nil && (*dto.Rating < 1 || *dto.Rating > 5) {
		return domain.NewValidationError("оценка должна быть от 1 до 5")
	}

	if dto.Comment != nil {
		sanitized := validator.SanitizeString(*dto.Comment)
		dto.Comment = &sanitized
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления отзыва", zap.Int64("reviewId", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *ReviewServiceImpl) List(ctx context.Context, identity domain.Identity, filter domain.ReviewFilter) ([]domain.Review, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	// Пациент видит только свои отзывы, если не смотрит отзывы конкретного врача.
	if identity.Role == domain.UserRolePatient && filter.DoctorID == nil {
		filter.PatientID = &identity.UserID
	}

	return s.repo.List(ctx, filter)
}

func (s *ReviewServiceImpl) DoctorStats(ctx context.Context, doctorID int64) (*domain.DoctorReviewStats, error) {
	return s.repo.DoctorStats(ctx, doctorID)
}
