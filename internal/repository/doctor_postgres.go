package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"medbook/internal/domain"
)

type DoctorRepo struct {
	db *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) *DoctorRepo {
	return &DoctorRepo{
		db: db,
	}
}

func (r *DoctorRepo) Create(ctx context.Context, userID int64, dto domain.CreateDoctorProfileDTO) (int64, error) {
	query := `
		INSERT INTO doctor_profiles (
			user_id,
			specialization,
			license_number,
			experience_years,
			consultation_fee,
			bio,
			available_days,
			available_time_start,
			available_time_end,
			is_available,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id
	`

	days := dto.AvailableDays
	if days == nil {
		days = []string{}
	}

	start := dto.AvailableTimeStart
	if start == "" {
		start = "09:00"
	}
	end := dto.AvailableTimeEnd
	if end == "" {
		end = "17:00"
	}

	now := time.Now().UTC()
	var id int64
	err := r.db.QueryRow(ctx, query,
		userID,
		dto.Specialization,
		dto.LicenseNumber,
		dto.ExperienceYears,
		dto.ConsultationFee,
		dto.Bio,
		days,
		start,
		end,
		true,
		now,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.NewConflictError("профиль врача с таким номером лицензии уже существует")
		}
		return 0, fmt.Errorf("ошибка создания профиля врача: %w", err)
	}

	return id, nil
}

const doctorColumns = `
	d.id, d.user_id, d.specialization, d.license_number, d.experience_years,
	d.consultation_fee, d.bio, d.available_days, d.available_time_start,
	d.available_time_end, d.is_available, d.created_at, d.updated_at,
	u.first_name || ' ' || u.last_name AS doctor_name
`

func scanDoctor(row pgx.Row) (*domain.DoctorProfile, error) {
	var doctor domain.DoctorProfile
	err := row.Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.Specialization,
		&doctor.LicenseNumber,
		&doctor.ExperienceYears,
		&doctor.ConsultationFee,
		&doctor.Bio,
		&doctor.AvailableDays,
		&doctor.AvailableTimeStart,
		&doctor.AvailableTimeEnd,
		&doctor.IsAvailable,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
		&doctor.DoctorName,
	)
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id int64) (*domain.DoctorProfile, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctor_profiles d
		JOIN users u ON d.user_id = u.id
		WHERE d.id = $1
	`

	doctor, err := scanDoctor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("врач не найден")
		}
		return nil, fmt.Errorf("ошибка получения профиля врача: %w", err)
	}

	return doctor, nil
}

func (r *DoctorRepo) GetByUserID(ctx context.Context, userID int64) (*domain.DoctorProfile, error) {
	query := `
		SELECT ` + doctorColumns + `
		FROM doctor_profiles d
		JOIN users u ON d.user_id = u.id
		WHERE d.user_id = $1
	`

	doctor, err := scanDoctor(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("профиль врача не найден")
		}
		return nil, fmt.Errorf("ошибка получения профиля врача: %w", err)
	}

	return doctor, nil
}

func (r *DoctorRepo) Update(ctx context.Context, id int64, dto domain.UpdateDoctorProfileDTO) error {
	var setClauses []string
	var args []interface{}
	argIndex := 1

	if dto.Specialization != nil {
		setClauses = append(setClauses, fmt.Sprintf("specialization = $%d", argIndex))
		args = append(args, *dto.Specialization)
		argIndex++
	}

	if dto.ExperienceYears != nil {
		setClauses = append(setClauses, fmt.Sprintf("experience_years = $%d", argIndex))
		args = append(args, *dto.ExperienceYears)
		argIndex++
	}

	if dto.ConsultationFee != nil {
		setClauses = append(setClauses, fmt.Sprintf("consultation_fee = $%d", argIndex))
		args = append(args, *dto.ConsultationFee)
		argIndex++
	}

	if dto.Bio != nil {
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", argIndex))
		args = append(args, *dto.Bio)
		argIndex++
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now().UTC())
	argIndex++

	query := "UPDATE doctor_profiles SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d", argIndex)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления профиля врача: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("врач не найден")
	}

	return nil
}

func (r *DoctorRepo) UpdateAvailability(ctx context.Context, id int64, dto domain.DeclareAvailabilityDTO) error {
	query := `
		UPDATE doctor_profiles
		SET available_days = $2,
		    available_time_start = $3,
		    available_time_end = $4,
		    is_available = $5,
		    updated_at = $6
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		id,
		dto.AvailableDays,
		dto.AvailableTimeStart,
		dto.AvailableTimeEnd,
		dto.IsAvailable,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления доступности врача: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("врач не найден")
	}

	return nil
}

func (r *DoctorRepo) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.DoctorProfile, int, error) {
	baseQuery := `
		FROM doctor_profiles d
		JOIN users u ON d.user_id = u.id
	`

	var conditions []string
	var args []interface{}
	argCount := 1

	conditions = append(conditions, "u.is_active = TRUE")

	if filter.Specialization != nil {
		conditions = append(conditions, fmt.Sprintf("d.specialization = $%d", argCount))
		args = append(args, *filter.Specialization)
		argCount++
	}

	if filter.AvailableOnly {
		conditions = append(conditions, "d.is_available = TRUE")
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета врачей: %w", err)
	}

	query := "SELECT " + doctorColumns + baseQuery + whereClause + " ORDER BY d.id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	doctors := make([]domain.DoctorProfile, 0)
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования строки врача: %w", err)
		}
		doctors = append(doctors, *doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return doctors, total, nil
}
