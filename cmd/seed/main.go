package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"medbook/config"
	"medbook/internal/domain"
	"medbook/internal/repository"
	"medbook/pkg/auth"
	"medbook/pkg/database"
	"medbook/pkg/logger"
)

const (
	seedDoctors  = 10
	seedPatients = 30
	seedSlotDays = 14
)

var specializations = []domain.Specialization{
	domain.SpecializationCardiology,
	domain.SpecializationDermatology,
	domain.SpecializationNeurology,
	domain.SpecializationOrthopedics,
	domain.SpecializationPediatrics,
	domain.SpecializationPsychiatry,
	domain.SpecializationGeneral,
}

// Наполняет базу демонстрационными врачами, пациентами и слотами.
func main() {
	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Не удалось загрузить конфигурацию", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	repos := repository.NewRepositories(db)

	passwordHash, err := auth.HashPassword("password123")
	if err != nil {
		log.Fatal("Ошибка хеширования пароля", zap.Error(err))
	}

	gofakeit.Seed(time.Now().UnixNano())

	for i := 0; i < seedDoctors; i++ {
		userID, err := repos.User.Create(ctx, domain.CreateUserDTO{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Email:     gofakeit.Email(),
			Phone:     gofakeit.Phone(),
			Password:  passwordHash,
			Role:      domain.UserRoleDoctor,
		})
		if err != nil {
			log.Warn("не удалось создать пользователя-врача", zap.Error(err))
			continue
		}

		doctorID, err := repos.Doctor.Create(ctx, userID, domain.CreateDoctorProfileDTO{
			Specialization:     specializations[rand.Intn(len(specializations))],
			LicenseNumber:      fmt.Sprintf("LIC-%06d", gofakeit.Number(100000, 999999)),
			ExperienceYears:    gofakeit.Number(1, 30),
			ConsultationFee:    float64(gofakeit.Number(30, 200)),
			Bio:                gofakeit.Sentence(12),
			AvailableDays:      []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			AvailableTimeStart: "09:00",
			AvailableTimeEnd:   "17:00",
		})
		if err != nil {
			log.Warn("не удалось создать профиль врача", zap.Error(err))
			continue
		}

		seedTimeSlots(ctx, repos, doctorID, log)
	}

	for i := 0; i < seedPatients; i++ {
		_, err := repos.User.Create(ctx, domain.CreateUserDTO{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Email:     gofakeit.Email(),
			Phone:     gofakeit.Phone(),
			Password:  passwordHash,
			Role:      domain.UserRolePatient,
		})
		if err != nil {
			log.Warn("не удалось создать пациента", zap.Error(err))
		}
	}

	log.Info("база заполнена демонстрационными данными",
		zap.Int("doctors", seedDoctors), zap.Int("patients", seedPatients))
}

func seedTimeSlots(ctx context.Context, repos *repository.Repositories, doctorID int64, log *zap.Logger) {
	hours := []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

	for day := 1; day <= seedSlotDays; day++ {
		date := time.Now().UTC().AddDate(0, 0, day)
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}

		for _, start := range hours {
			end, _ := time.Parse("15:04", start)
			_, err := repos.TimeSlot.Create(ctx, doctorID,
				date.Format("2006-01-02"), start, end.Add(time.Hour).Format("15:04"))
			if err != nil {
				log.Warn("не удалось создать слот", zap.Int64("doctorId", doctorID), zap.Error(err))
			}
		}
	}
}
