package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medbook/internal/domain"
)

type MedicalRecordRepo struct {
	db *pgxpool.Pool
}

func NewMedicalRecordRepository(db *pgxpool.Pool) *MedicalRecordRepo {
	return &MedicalRecordRepo{
		db: db,
	}
}

const recordColumns = `
	m.id, m.patient_id, m.doctor_id, m.appointment_id, m.diagnosis, m.prescription,
	m.lab_results, m.notes, m.attachments, m.created_at, m.updated_at,
	pu.first_name || ' ' || pu.last_name AS patient_name,
	du.first_name || ' ' || du.last_name AS doctor_name
`

const recordJoins = `
	FROM medical_records m
	JOIN users pu ON m.patient_id = pu.id
	JOIN doctor_profiles d ON m.doctor_id = d.id
	JOIN users du ON d.user_id = du.id
`

func scanRecord(row pgx.Row) (*domain.MedicalRecord, error) {
	var record domain.MedicalRecord
	err := row.Scan(
		&record.ID,
		&record.PatientID,
		&record.DoctorID,
		&record.AppointmentID,
		&record.Diagnosis,
		&record.Prescription,
		&record.LabResults,
		&record.Notes,
		&record.Attachments,
		&record.CreatedAt,
		&record.UpdatedAt,
		&record.PatientName,
		&record.DoctorName,
	)
	if err != nil {
		return nil, err
	}
	if record.Attachments == nil {
		record.Attachments = []string{}
	}
	return &record, nil
}

func (r *MedicalRecordRepo) Create(ctx context.Context, doctorID int64, dto domain.CreateMedicalRecordDTO) (int64, error) {
	query := `
		INSERT INTO medical_records (
			patient_id,
			doctor_id,
			appointment_id,
			diagnosis,
			prescription,
			lab_results,
			notes,
			attachments,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	now := time.Now().UTC()
	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.PatientID,
		doctorID,
		dto.AppointmentID,
		dto.Diagnosis,
		dto.Prescription,
		dto.LabResults,
		dto.Notes,
		[]string{},
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("ошибка создания медицинской записи: %w", err)
	}

	return id, nil
}

func (r *MedicalRecordRepo) GetByID(ctx context.Context, id int64) (*domain.MedicalRecord, error) {
	query := "SELECT " + recordColumns + recordJoins + " WHERE m.id = $1"

	record, err := scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("медицинская запись не найдена")
		}
		return nil, fmt.Errorf("ошибка получения медицинской записи: %w", err)
	}

	return record, nil
}

func (r *MedicalRecordRepo) Update(ctx context.Context, id int64, dto domain.UpdateMedicalRecordDTO) error {
	query := `
		UPDATE medical_records
		SET diagnosis = $2,
		    prescription = $3,
		    lab_results = $4,
		    notes = $5,
		    updated_at = $6
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		id,
		dto.Diagnosis,
		dto.Prescription,
		dto.LabResults,
		dto.Notes,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления медицинской записи: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("медицинская запись не найдена")
	}

	return nil
}

func (r *MedicalRecordRepo) AddAttachment(ctx context.Context, id int64, url string) error {
	query := `
		UPDATE medical_records
		SET attachments = attachments || to_jsonb($2::text),
		    updated_at = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, url, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ошибка добавления вложения: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("медицинская запись не найдена")
	}

	return nil
}

func (r *MedicalRecordRepo) List(ctx context.Context, filter domain.MedicalRecordFilter) ([]domain.MedicalRecord, error) {
	query := "SELECT " + recordColumns + recordJoins

	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("m.patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("m.doctor_id = $%d", argCount))
		args = append(args, *filter.DoctorID)
		argCount++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY m.created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	return r.queryRecords(ctx, query, args...)
}

// ListForDoctor возвращает записи, созданные врачом, и записи, где врач сам пациент.
func (r *MedicalRecordRepo) ListForDoctor(ctx context.Context, doctorID, doctorUserID int64, limit, offset int) ([]domain.MedicalRecord, error) {
	query := "SELECT " + recordColumns + recordJoins +
		" WHERE m.doctor_id = $1 OR m.patient_id = $2 ORDER BY m.created_at DESC"

	args := []interface{}{doctorID, doctorUserID}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", offset)
	}

	return r.queryRecords(ctx, query, args...)
}

func (r *MedicalRecordRepo) queryRecords(ctx context.Context, query string, args ...interface{}) ([]domain.MedicalRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	records := make([]domain.MedicalRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки медицинской записи: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return records, nil
}
