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

type TimeSlotRepo struct {
	db *pgxpool.Pool
}

func NewTimeSlotRepository(db *pgxpool.Pool) *TimeSlotRepo {
	return &TimeSlotRepo{
		db: db,
	}
}

func (r *TimeSlotRepo) Create(ctx context.Context, doctorID int64, date string, startTime, endTime string) (int64, error) {
	parsedDate, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, domain.NewValidationError("неверный формат даты")
	}

	query := `
		INSERT INTO time_slots (doctor_id, date, start_time, end_time, is_booked, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING id
	`

	var id int64
	err = r.db.QueryRow(ctx, query, doctorID, parsedDate, startTime, endTime, time.Now().UTC()).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.NewConflictError("слот на это время уже существует")
		}
		return 0, fmt.Errorf("ошибка создания слота: %w", err)
	}

	return id, nil
}

func (r *TimeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	query := `
		SELECT t.id, t.doctor_id, t.date, t.start_time, t.end_time, t.is_booked, t.created_at,
		       du.first_name || ' ' || du.last_name AS doctor_name
		FROM time_slots t
		JOIN doctor_profiles d ON t.doctor_id = d.id
		JOIN users du ON d.user_id = du.id
		WHERE t.id = $1
	`

	var slot domain.TimeSlot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.DoctorID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
		&slot.CreatedAt,
		&slot.DoctorName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("слот не найден")
		}
		return nil, fmt.Errorf("ошибка получения слота: %w", err)
	}

	return &slot, nil
}

func (r *TimeSlotRepo) List(ctx context.Context, filter domain.TimeSlotFilter) ([]domain.TimeSlot, error) {
	query := `
		SELECT t.id, t.doctor_id, t.date, t.start_time, t.end_time, t.is_booked, t.created_at,
		       du.first_name || ' ' || du.last_name AS doctor_name
		FROM time_slots t
		JOIN doctor_profiles d ON t.doctor_id = d.id
		JOIN users du ON d.user_id = du.id
	`

	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("t.doctor_id = $%d", argCount))
		args = append(args, *filter.DoctorID)
		argCount++
	}

	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("t.date = $%d", argCount))
		args = append(args, *filter.Date)
		argCount++
	}

	if filter.AvailableOnly {
		conditions = append(conditions, fmt.Sprintf("t.is_booked = FALSE AND t.date >= $%d", argCount))
		args = append(args, time.Now().UTC().Truncate(24*time.Hour))
		argCount++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY t.date, t.start_time"

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

	slots := make([]domain.TimeSlot, 0)
	for rows.Next() {
		var slot domain.TimeSlot
		if err := rows.Scan(
			&slot.ID,
			&slot.DoctorID,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.IsBooked,
			&slot.CreatedAt,
			&slot.DoctorName,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки слота: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return slots, nil
}

// slotQuerier покрывает и пул, и транзакцию: слот бронируется как отдельной
// операцией, так и внутри транзакции создания приема.
type slotQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func markSlotBooked(ctx context.Context, db slotQuerier, id int64) error {
	tag, err := db.Exec(ctx, `UPDATE time_slots SET is_booked = TRUE WHERE id = $1 AND is_booked = FALSE`, id)
	if err != nil {
		return fmt.Errorf("ошибка бронирования слота: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM time_slots WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("ошибка проверки слота: %w", err)
		}
		if !exists {
			return domain.NewNotFoundError("слот не найден")
		}
		return domain.NewConflictError("слот уже забронирован")
	}

	return nil
}

func markSlotReleased(ctx context.Context, db slotQuerier, id int64) error {
	tag, err := db.Exec(ctx, `UPDATE time_slots SET is_booked = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка освобождения слота: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("слот не найден")
	}

	return nil
}

func (r *TimeSlotRepo) MarkBooked(ctx context.Context, id int64) error {
	return markSlotBooked(ctx, r.db, id)
}

func (r *TimeSlotRepo) MarkReleased(ctx context.Context, id int64) error {
	return markSlotReleased(ctx, r.db, id)
}
