package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"medbook/internal/domain"
	"medbook/internal/repository"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func isValidTimeOfDay(value string) bool {
	_, err := time.Parse(timeLayout, value)
	return err == nil
}

func isValidWeekday(day string) bool {
	switch day {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}

type TimeSlotServiceImpl struct {
	repo       repository.TimeSlotRepository
	doctorRepo repository.DoctorRepository
	logger     *zap.Logger
}

func NewTimeSlotService(repo repository.TimeSlotRepository, doctorRepo repository.DoctorRepository, logger *zap.Logger) *TimeSlotServiceImpl {
	return &TimeSlotServiceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		logger:     logger,
	}
}

func (s *TimeSlotServiceImpl) Create(ctx context.Context, identity domain.Identity, dto domain.CreateTimeSlotDTO) (int64, error) {
	doctorID := dto.DoctorID
	if identity.Role == domain.UserRoleDoctor {
		if identity.DoctorID == nil {
			return 0, domain.NewAuthorizationError("профиль врача не найден")
		}
		doctorID = *identity.DoctorID
	} else if !identity.IsAdmin() {
		return 0, domain.NewAuthorizationError("создавать слоты могут только врачи и администраторы")
	}

	if doctorID == 0 {
		return 0, domain.NewValidationError("не указан врач")
	}

	if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
		return 0, err
	}

	if !isValidTimeOfDay(dto.StartTime) || !isValidTimeOfDay(dto.EndTime) {
		return 0, domain.NewValidationError("время должно быть в формате ЧЧ:ММ")
	}

	if dto.StartTime >= dto.EndTime {
		return 0, domain.NewValidationError("время начала должно быть раньше времени окончания")
	}

	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return 0, domain.NewValidationError("неверный формат даты")
	}

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	if date.Before(today) {
		return 0, domain.NewValidationError("нельзя создать слот в прошлом")
	}
	if date.Equal(today) && dto.StartTime <= now.Format(timeLayout) {
		return 0, domain.NewValidationError("нельзя создать слот в прошлом")
	}

	id, err := s.repo.Create(ctx, doctorID, dto.Date, dto.StartTime, dto.EndTime)
	if err != nil {
		s.logger.Error("ошибка создания слота",
			zap.Int64("doctorId", doctorID), zap.String("date", dto.Date), zap.Error(err))
		return 0, err
	}

	s.logger.Info("создан слот времени",
		zap.Int64("slotId", id), zap.Int64("doctorId", doctorID),
		zap.String("date", dto.Date), zap.String("startTime", dto.StartTime))

	return id, nil
}

func (s *TimeSlotServiceImpl) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TimeSlotServiceImpl) List(ctx context.Context, filter domain.TimeSlotFilter) ([]domain.TimeSlot, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.repo.List(ctx, filter)
}
