package service

import (
	"context"

	"go.uber.org/zap"

	"medbook/internal/domain"
	"medbook/internal/repository"
)

type DoctorServiceImpl struct {
	repo     repository.DoctorRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewDoctorService(repo repository.DoctorRepository, userRepo repository.UserRepository, logger *zap.Logger) *DoctorServiceImpl {
	return &DoctorServiceImpl{
		repo:     repo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *DoctorServiceImpl) GetByID(ctx context.Context, id int64) (*domain.DoctorProfile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorServiceImpl) GetByUserID(ctx context.Context, userID int64) (*domain.DoctorProfile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *DoctorServiceImpl) Update(ctx context.Context, identity domain.Identity, id int64, dto domain.UpdateDoctorProfileDTO) error {
	if !identity.IsAdmin() && !identity.IsDoctor(id) {
		return domain.NewAuthorizationError("нет прав на изменение этого профиля")
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления профиля врача", zap.Int64("doctorId", id), zap.Error(err))
		return err
	}

	return nil
}

// DeclareAvailability полностью заменяет расписание доступности врача.
func (s *DoctorServiceImpl) DeclareAvailability(ctx context.Context, identity domain.Identity, id int64, dto domain.DeclareAvailabilityDTO) error {
	if !identity.IsAdmin() && !identity.IsDoctor(id) {
		return domain.NewAuthorizationError("нет прав на изменение доступности этого врача")
	}

	for _, day := range dto.AvailableDays {
		if !isValidWeekday(day) {
			return domain.NewValidationError("недопустимый день недели: " + day)
		}
	}

	if !isValidTimeOfDay(dto.AvailableTimeStart) || !isValidTimeOfDay(dto.AvailableTimeEnd) {
		return domain.NewValidationError("время должно быть в формате ЧЧ:ММ")
	}

	if dto.AvailableTimeStart >= dto.AvailableTimeEnd {
		return domain.NewValidationError("время начала должно быть раньше времени окончания")
	}

	if err := s.repo.UpdateAvailability(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления доступности врача", zap.Int64("doctorId", id), zap.Error(err))
		return err
	}

	s.logger.Info("доступность врача обновлена",
		zap.Int64("doctorId", id), zap.Bool("isAvailable", dto.IsAvailable))

	return nil
}

func (s *DoctorServiceImpl) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.DoctorProfile, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if filter.Specialization != nil && !filter.Specialization.IsValid() {
		return nil, 0, domain.NewValidationError("недопустимая специализация")
	}

	return s.repo.List(ctx, filter)
}
