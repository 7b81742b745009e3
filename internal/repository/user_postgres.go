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

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

func (r *UserRepo) Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error) {
	var id int64
	query := `
		INSERT INTO users (first_name, last_name, middle_name, email, phone, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	now := time.Now().UTC()
	err := r.db.QueryRow(
		ctx,
		query,
		dto.FirstName,
		dto.LastName,
		dto.MiddleName,
		dto.Email,
		dto.Phone,
		dto.Password,
		dto.Role,
		true,
		now,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, domain.NewConflictError("пользователь с таким email или телефоном уже существует")
		}
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return id, nil
}

const userColumns = `id, first_name, last_name, middle_name, email, phone, password_hash, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.MiddleName,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1"

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("пользователь не найден")
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = $1"

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("пользователь не найден")
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE phone = $1"

	user, err := scanUser(r.db.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("пользователь не найден")
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	var setClauses []string
	args := []interface{}{id}
	argIndex := 2

	if dto.FirstName != nil {
		setClauses = append(setClauses, fmt.Sprintf("first_name = $%d", argIndex))
		args = append(args, *dto.FirstName)
		argIndex++
	}

	if dto.LastName != nil {
		setClauses = append(setClauses, fmt.Sprintf("last_name = $%d", argIndex))
		args = append(args, *dto.LastName)
		argIndex++
	}

	if dto.MiddleName != nil {
		setClauses = append(setClauses, fmt.Sprintf("middle_name = $%d", argIndex))
		args = append(args, *dto.MiddleName)
		argIndex++
	}

	if dto.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argIndex))
		args = append(args, *dto.Email)
		argIndex++
	}

	if dto.Phone != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", argIndex))
		args = append(args, *dto.Phone)
		argIndex++
	}

	if dto.IsActive != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_active = $%d", argIndex))
		args = append(args, *dto.IsActive)
		argIndex++
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now().UTC())

	query := "UPDATE users SET " + strings.Join(setClauses, ", ") + " WHERE id = $1"

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.NewConflictError("пользователь с таким email или телефоном уже существует")
		}
		return fmt.Errorf("ошибка обновления пользователя: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("пользователь не найден")
	}

	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, updated_at = $2
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, passwordHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления пароля: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("пользователь не найден")
	}

	return nil
}

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY id LIMIT $1 OFFSET $2"

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса списка пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения данных пользователя: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обработки результатов: %w", err)
	}

	return users, nil
}
