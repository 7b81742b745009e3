package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"medbook/internal/domain"
	"medbook/internal/repository"
	"medbook/pkg/auth"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления пользователя", zap.Int64("userId", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := auth.VerifyPassword(dto.OldPassword, user.PasswordHash)
	if err != nil || !ok {
		return domain.NewValidationError("неверный текущий пароль")
	}

	hashedPassword, err := auth.HashPassword(dto.NewPassword)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return errors.New("ошибка обновления пароля")
	}

	if err := s.repo.UpdatePassword(ctx, id, hashedPassword); err != nil {
		s.logger.Error("ошибка обновления пароля", zap.Int64("userId", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *UserServiceImpl) Deactivate(ctx context.Context, id int64) error {
	isActive := false
	if err := s.repo.Update(ctx, id, domain.UpdateUserDTO{IsActive: &isActive}); err != nil {
		s.logger.Error("ошибка деактивации пользователя", zap.Int64("userId", id), zap.Error(err))
		return err
	}

	s.logger.Info("пользователь деактивирован", zap.Int64("userId", id))

	return nil
}

func (s *UserServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.List(ctx, limit, offset)
}
