package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"medbook/internal/domain"
	"medbook/internal/repository"
	"medbook/internal/storage"
)

type MedicalRecordServiceImpl struct {
	repo            repository.MedicalRecordRepository
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	fileStorage     storage.FileStorage
	logger          *zap.Logger
}

func NewMedicalRecordService(repo repository.MedicalRecordRepository, appointmentRepo repository.AppointmentRepository, userRepo repository.UserRepository, fileStorage storage.FileStorage, logger *zap.Logger) *MedicalRecordServiceImpl {
	return &MedicalRecordServiceImpl{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		fileStorage:     fileStorage,
		logger:          logger,
	}
}

func (s *MedicalRecordServiceImpl) Create(ctx context.Context, identity domain.Identity, dto domain.CreateMedicalRecordDTO) (int64, error) {
	if identity.Role != domain.UserRoleDoctor {
		return 0, domain.NewAuthorizationError("создавать медицинские записи могут только врачи")
	}
	if identity.DoctorID == nil {
		return 0, domain.NewAuthorizationError("профиль врача не найден")
	}

	if strings.TrimSpace(dto.Diagnosis) == "" {
		return 0, domain.NewValidationError("диагноз не может быть пустым")
	}

	patient, err := s.userRepo.GetByID(ctx, dto.PatientID)
	if err != nil {
		return 0, err
	}

	if dto.AppointmentID != nil {
		appointment, err := s.appointmentRepo.GetByID(ctx, *dto.AppointmentID)
		if err != nil {
			return 0, err
		}
		if appointment.DoctorID != *identity.DoctorID || appointment.PatientID != patient.ID {
			return 0, domain.NewValidationError("прием не относится к этому врачу и пациенту")
		}
	}

	id, err := s.repo.Create(ctx, *identity.DoctorID, dto)
	if err != nil {
		s.logger.Error("ошибка создания медицинской записи",
			zap.Int64("doctorId", *identity.DoctorID),
			zap.Int64("patientId", dto.PatientID),
			zap.Error(err))
		return 0, err
	}

	s.logger.Info("создана медицинская запись",
		zap.Int64("recordId", id),
		zap.Int64("doctorId", *identity.DoctorID),
		zap.Int64("patientId", dto.PatientID))

	return id, nil
}

func (s *MedicalRecordServiceImpl) GetByID(ctx context.Context, identity domain.Identity, id int64) (*domain.MedicalRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanViewMedicalRecord(identity, *record) {
		return nil, domain.NewAuthorizationError("нет прав на просмотр этой записи")
	}

	return record, nil
}

func (s *MedicalRecordServiceImpl) Update(ctx context.Context, identity domain.Identity, id int64, dto domain.UpdateMedicalRecordDTO) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanMutateMedicalRecord(identity, *record) {
		return domain.NewAuthorizationError("нет прав на изменение этой записи")
	}

	if strings.TrimSpace(dto.Diagnosis) == "" {
		return domain.NewValidationError("диагноз не может быть пустым")
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления медицинской записи", zap.Int64("recordId", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *MedicalRecordServiceImpl) UploadAttachment(ctx context.Context, identity domain.Identity, id int64, file []byte, filename string) (string, error) {
	if s.fileStorage == nil {
		return "", domain.NewValidationError("хранилище файлов не настроено")
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !domain.CanMutateMedicalRecord(identity, *record) {
		return "", domain.NewAuthorizationError("нет прав на изменение этой записи")
	}

	url, err := s.fileStorage.UploadFile(ctx, file, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки вложения", zap.Int64("recordId", id), zap.Error(err))
		return "", domain.NewValidationError("не удалось загрузить файл")
	}

	if err := s.repo.AddAttachment(ctx, id, url); err != nil {
		s.logger.Error("ошибка сохранения вложения", zap.Int64("recordId", id), zap.Error(err))
		return "", err
	}

	s.logger.Info("добавлено вложение к медицинской записи",
		zap.Int64("recordId", id), zap.String("url", url))

	return url, nil
}

func (s *MedicalRecordServiceImpl) List(ctx context.Context, identity domain.Identity, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	switch identity.Role {
	case domain.UserRoleAdmin:
		return s.repo.List(ctx, filter)
	case domain.UserRolePatient:
		filter.PatientID = &identity.UserID
		filter.DoctorID = nil
		return s.repo.List(ctx, filter)
	case domain.UserRoleDoctor:
		if identity.DoctorID == nil {
			return nil, domain.NewAuthorizationError("профиль врача не найден")
		}
		return s.repo.ListForDoctor(ctx, *identity.DoctorID, identity.UserID, filter.Limit, filter.Offset)
	}

	return nil, domain.NewAuthorizationError("неизвестная роль")
}
