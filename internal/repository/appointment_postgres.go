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

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

const appointmentColumns = `
	a.id, a.patient_id, a.doctor_id, a.appointment_date, a.appointment_time,
	a.status, a.reason, a.notes, a.created_at, a.updated_at,
	pu.first_name || ' ' || pu.last_name AS patient_name,
	du.first_name || ' ' || du.last_name AS doctor_name
`

const appointmentJoins = `
	FROM appointments a
	JOIN users pu ON a.patient_id = pu.id
	JOIN doctor_profiles d ON a.doctor_id = d.id
	JOIN users du ON d.user_id = du.id
`

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.Date,
		&appointment.Time,
		&appointment.Status,
		&appointment.Reason,
		&appointment.Notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
		&appointment.PatientName,
		&appointment.DoctorName,
	)
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepo) Create(ctx context.Context, patientID int64, dto domain.CreateAppointmentDTO) (int64, error) {
	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return 0, domain.NewValidationError("неверный формат даты")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	checkQuery := `
		SELECT COUNT(*)
		FROM appointments
		WHERE doctor_id = $1
		AND appointment_date = $2
		AND appointment_time = $3
		AND status IN ('pending', 'confirmed')
	`

	var count int
	err = tx.QueryRow(ctx, checkQuery, dto.DoctorID, date, dto.Time).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка проверки доступности слота: %w", err)
	}

	if count > 0 {
		return 0, domain.NewConflictError("выбранный слот времени уже занят")
	}

	query := `
		INSERT INTO appointments (patient_id, doctor_id, appointment_date, appointment_time, status, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`

	now := time.Now().UTC()
	var id int64
	err = tx.QueryRow(ctx, query,
		patientID,
		dto.DoctorID,
		date,
		dto.Time,
		domain.AppointmentStatusPending,
		dto.Reason,
		now,
	).Scan(&id)

	if err != nil {
		// Частичный уникальный индекс по активным статусам закрывает гонку
		// двух одновременных create: ровно один INSERT проходит.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.NewConflictError("выбранный слот времени уже занят")
		}
		return 0, fmt.Errorf("ошибка создания приема: %w", err)
	}

	// Прием можно создать и без объявленного слота, тогда бронировать нечего.
	var slotID int64
	err = tx.QueryRow(ctx,
		`SELECT id FROM time_slots WHERE doctor_id = $1 AND date = $2 AND start_time = $3`,
		dto.DoctorID, date, dto.Time).Scan(&slotID)
	switch {
	case err == nil:
		if err := markSlotBooked(ctx, tx, slotID); err != nil {
			return 0, err
		}
	case !errors.Is(err, pgx.ErrNoRows):
		return 0, fmt.Errorf("ошибка поиска слота: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := `SELECT` + appointmentColumns + appointmentJoins + `WHERE a.id = $1`

	appointment, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("прием не найден")
		}
		return nil, fmt.Errorf("ошибка получения приема: %w", err)
	}

	return appointment, nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, from []domain.AppointmentStatus, to domain.AppointmentStatus, notes *string) (*domain.Appointment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	fromStatuses := make([]string, 0, len(from))
	for _, status := range from {
		fromStatuses = append(fromStatuses, string(status))
	}

	// Проверка статуса и запись выполняются одним UPDATE: параллельные
	// переходы по одному приему сериализуются, проигравший получает 0 строк.
	query := `
		UPDATE appointments
		SET status = $2, notes = COALESCE($3, notes), updated_at = $4
		WHERE id = $1 AND status = ANY($5)
		RETURNING id, patient_id, doctor_id, appointment_date, appointment_time, status, reason, notes, created_at, updated_at
	`

	var appointment domain.Appointment
	err = tx.QueryRow(ctx, query, id, to, notes, time.Now().UTC(), fromStatuses).Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.Date,
		&appointment.Time,
		&appointment.Status,
		&appointment.Reason,
		&appointment.Notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var currentStatus domain.AppointmentStatus
			err = tx.QueryRow(ctx, `SELECT status FROM appointments WHERE id = $1`, id).Scan(&currentStatus)
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.NewNotFoundError("прием не найден")
			}
			if err != nil {
				return nil, fmt.Errorf("ошибка получения статуса приема: %w", err)
			}
			return nil, domain.NewInvalidTransitionError(
				fmt.Sprintf("недопустимый переход статуса: %s -> %s", currentStatus, to))
		}
		return nil, fmt.Errorf("ошибка обновления статуса приема: %w", err)
	}

	if to == domain.AppointmentStatusCancelled {
		var slotID int64
		err = tx.QueryRow(ctx,
			`SELECT id FROM time_slots WHERE doctor_id = $1 AND date = $2 AND start_time = $3`,
			appointment.DoctorID, appointment.Date, appointment.Time).Scan(&slotID)
		switch {
		case err == nil:
			if err := markSlotReleased(ctx, tx, slotID); err != nil {
				return nil, err
			}
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("ошибка поиска слота: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return &appointment, nil
}

func appointmentConditions(filter domain.AppointmentFilter, args []interface{}) ([]string, []interface{}) {
	var conditions []string
	argCount := len(args) + 1

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("a.patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("a.doctor_id = $%d", argCount))
		args = append(args, *filter.DoctorID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_date >= $%d", argCount))
		args = append(args, *filter.StartDate)
		argCount++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_date <= $%d", argCount))
		args = append(args, *filter.EndDate)
		argCount++
	}

	if filter.ActiveOnly {
		conditions = append(conditions, "a.status IN ('pending', 'confirmed')")
	}

	return conditions, args
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	query := `SELECT` + appointmentColumns + appointmentJoins

	conditions, args := appointmentConditions(filter, nil)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if filter.ActiveOnly {
		query += " ORDER BY a.appointment_date, a.appointment_time"
	} else {
		query += " ORDER BY a.appointment_date DESC, a.appointment_time DESC"
	}

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки приема: %w", err)
		}
		appointments = append(appointments, *appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return appointments, nil
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	query := `SELECT COUNT(*)` + appointmentJoins

	conditions, args := appointmentConditions(filter, nil)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета приемов: %w", err)
	}

	return count, nil
}

func (r *AppointmentRepo) Stats(ctx context.Context, filter domain.AppointmentFilter) (*domain.AppointmentStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE a.status = 'pending'),
		       COUNT(*) FILTER (WHERE a.status = 'confirmed'),
		       COUNT(*) FILTER (WHERE a.status = 'completed'),
		       COUNT(*) FILTER (WHERE a.status = 'cancelled')
	` + appointmentJoins

	conditions, args := appointmentConditions(filter, nil)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var stats domain.AppointmentStats
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&stats.TotalAppointments,
		&stats.PendingAppointments,
		&stats.ConfirmedAppointments,
		&stats.CompletedAppointments,
		&stats.CancelledAppointments,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения статистики приемов: %w", err)
	}

	return &stats, nil
}
