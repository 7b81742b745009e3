package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"medbook/internal/domain"
	"medbook/internal/repository"
)

type AppointmentServiceImpl struct {
	repo       repository.AppointmentRepository
	doctorRepo repository.DoctorRepository
	userRepo   repository.UserRepository
	logger     *zap.Logger
}

func NewAppointmentService(repo repository.AppointmentRepository, doctorRepo repository.DoctorRepository, userRepo repository.UserRepository, logger *zap.Logger) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (s *AppointmentServiceImpl) Create(ctx context.Context, identity domain.Identity, dto domain.CreateAppointmentDTO) (int64, error) {
	if identity.Role != domain.UserRolePatient {
		return 0, domain.NewAuthorizationError("записываться на прием могут только пациенты")
	}

	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return 0, domain.NewValidationError("неверный формат даты")
	}

	if !isValidTimeOfDay(dto.Time) {
		return 0, domain.NewValidationError("время должно быть в формате ЧЧ:ММ")
	}

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	if date.Before(today) || (date.Equal(today) && dto.Time <= now.Format(timeLayout)) {
		return 0, domain.NewValidationError("нельзя записаться на прием в прошлом")
	}

	doctor, err := s.doctorRepo.GetByID(ctx, dto.DoctorID)
	if err != nil {
		return 0, err
	}

	if !doctor.IsAvailable {
		return 0, domain.NewValidationError("врач сейчас не принимает пациентов")
	}

	id, err := s.repo.Create(ctx, identity.UserID, dto)
	if err != nil {
		s.logger.Error("ошибка создания приема",
			zap.Int64("patientId", identity.UserID),
			zap.Int64("doctorId", dto.DoctorID),
			zap.String("date", dto.Date),
			zap.String("time", dto.Time),
			zap.Error(err))
		return 0, err
	}

	s.logger.Info("создан прием",
		zap.Int64("appointmentId", id),
		zap.Int64("patientId", identity.UserID),
		zap.Int64("doctorId", dto.DoctorID))

	return id, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, identity domain.Identity, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanViewAppointment(identity, *appointment) {
		return nil, domain.NewAuthorizationError("нет прав на просмотр этого приема")
	}

	return appointment, nil
}

func (s *AppointmentServiceImpl) Confirm(ctx context.Context, identity domain.Identity, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanManageAppointment(identity, *appointment) {
		return nil, domain.NewAuthorizationError("нет прав на подтверждение этого приема")
	}

	updated, err := s.repo.UpdateStatus(ctx, id,
		[]domain.AppointmentStatus{domain.AppointmentStatusPending},
		domain.AppointmentStatusConfirmed, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info("прием подтвержден", zap.Int64("appointmentId", id))

	return updated, nil
}

func (s *AppointmentServiceImpl) Complete(ctx context.Context, identity domain.Identity, id int64, dto domain.CompleteAppointmentDTO) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanManageAppointment(identity, *appointment) {
		return nil, domain.NewAuthorizationError("нет прав на завершение этого приема")
	}

	var notes *string
	if dto.Notes != "" {
		notes = &dto.Notes
	}

	updated, err := s.repo.UpdateStatus(ctx, id,
		[]domain.AppointmentStatus{domain.AppointmentStatusPending, domain.AppointmentStatusConfirmed},
		domain.AppointmentStatusCompleted, notes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("прием завершен", zap.Int64("appointmentId", id))

	return updated, nil
}

func (s *AppointmentServiceImpl) Cancel(ctx context.Context, identity domain.Identity, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanCancelAppointment(identity, *appointment) {
		return nil, domain.NewAuthorizationError("нет прав на отмену этого приема")
	}

	updated, err := s.repo.UpdateStatus(ctx, id,
		[]domain.AppointmentStatus{domain.AppointmentStatusPending, domain.AppointmentStatusConfirmed},
		domain.AppointmentStatusCancelled, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info("прием отменен", zap.Int64("appointmentId", id))

	return updated, nil
}

// scopeFilter ограничивает фильтр данными вызывающего в зависимости от роли.
func scopeFilter(identity domain.Identity, filter domain.AppointmentFilter) (domain.AppointmentFilter, error) {
	switch identity.Role {
	case domain.UserRoleAdmin:
		return filter, nil
	case domain.UserRolePatient:
		filter.PatientID = &identity.UserID
		return filter, nil
	case domain.UserRoleDoctor:
		if identity.DoctorID == nil {
			return filter, domain.NewAuthorizationError("профиль врача не найден")
		}
		filter.DoctorID = identity.DoctorID
		return filter, nil
	}
	return filter, domain.NewAuthorizationError("неизвестная роль")
}

func (s *AppointmentServiceImpl) List(ctx context.Context, identity domain.Identity, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	filter, err := scopeFilter(identity, filter)
	if err != nil {
		return nil, 0, err
	}

	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, 0, domain.NewValidationError("недопустимый статус")
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

func (s *AppointmentServiceImpl) ListUpcoming(ctx context.Context, identity domain.Identity) ([]domain.Appointment, error) {
	filter, err := scopeFilter(identity, domain.AppointmentFilter{})
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	filter.StartDate = &today
	filter.ActiveOnly = true

	return s.repo.List(ctx, filter)
}

func (s *AppointmentServiceImpl) Stats(ctx context.Context, identity domain.Identity) (*domain.AppointmentStats, error) {
	filter, err := scopeFilter(identity, domain.AppointmentFilter{})
	if err != nil {
		return nil, err
	}

	return s.repo.Stats(ctx, filter)
}
