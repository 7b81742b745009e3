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

type ReviewRepo struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{
		db: db,
	}
}

const reviewColumns = `
	r.id, r.patient_id, r.doctor_id, r.appointment_id, r.rating, r.comment,
	r.created_at, r.updated_at,
	pu.first_name || ' ' || pu.last_name AS patient_name
`

const reviewJoins = `
	FROM reviews r
	JOIN users pu ON r.patient_id = pu.id
`

func scanReview(row pgx.Row) (*domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.PatientID,
		&review.DoctorID,
		&review.AppointmentID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.PatientName,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepo) Create(ctx context.Context, patientID, doctorID int64, dto domain.CreateReviewDTO) (int64, error) {
	query := `
		INSERT INTO reviews (patient_id, doctor_id, appointment_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`

	now := time.Now().UTC()
	var id int64
	err := r.db.QueryRow(ctx, query,
		patientID,
		doctorID,
		dto.AppointmentID,
		dto.Rating,
		dto.Comment,
		now,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.NewConflictError("отзыв на этот прием уже оставлен")
		}
		return 0, fmt.Errorf("ошибка создания отзыва: %w", err)
	}

	return id, nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := "SELECT " + reviewColumns + reviewJoins + " WHERE r.id = $1"

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("отзыв не найден")
		}
		return nil, fmt.Errorf("ошибка получения отзыва: %w", err)
	}

	return review, nil
}

func (r *ReviewRepo) Update(ctx context.Context, id int64, dto domain.UpdateReviewDTO) error {
	var setClauses []string
	var args []interface{}
	argIndex := 1

	if dto.Rating != nil {
		setClauses = append(setClauses, fmt.Sprintf("rating = $%d", argIndex))
		args = append(args, *dto.Rating)
		argIndex++
	}

	if dto.Comment != nil {
		setClauses = append(setClauses, fmt.Sprintf("comment = $%d", argIndex))
		args = append(args, *dto.Comment)
		argIndex++
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now().UTC())
	argIndex++

	query := "UPDATE reviews SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d", argIndex)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления отзыва: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("отзыв не найден")
	}

	return nil
}

func (r *ReviewRepo) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	query := "SELECT " + reviewColumns + reviewJoins

	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("r.doctor_id = $%d", argCount))
		args = append(args, *filter.DoctorID)
		argCount++
	}

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("r.patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY r.created_at DESC"

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

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки отзыва: %w", err)
		}
		reviews = append(reviews, *review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepo) DoctorStats(ctx context.Context, doctorID int64) (*domain.DoctorReviewStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(rating), 0),
			COUNT(*) FILTER (WHERE rating = 5),
			COUNT(*) FILTER (WHERE rating = 4),
			COUNT(*) FILTER (WHERE rating = 3),
			COUNT(*) FILTER (WHERE rating = 2),
			COUNT(*) FILTER (WHERE rating = 1)
		FROM reviews
		WHERE doctor_id = $1
	`

	var stats domain.DoctorReviewStats
	err := r.db.QueryRow(ctx, query, doctorID).Scan(
		&stats.TotalReviews,
		&stats.AverageRating,
		&stats.RatingDistribution.FiveStar,
		&stats.RatingDistribution.FourStar,
		&stats.RatingDistribution.ThreeStar,
		&stats.RatingDistribution.TwoStar,
		&stats.RatingDistribution.OneStar,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения статистики отзывов: %w", err)
	}

	return &stats, nil
}
