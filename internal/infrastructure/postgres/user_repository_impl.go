package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
	"github.com/oksasatya/fittrack-api/pkg/apperr"
)

var errEmailTaken = apperr.Conflict("email already registered")

const userColumns = `id::text, email, password_hash, first_name, last_name, role, is_active,
	date_of_birth, gender, height_cm::float8, weight_kg::float8, created_at, updated_at, last_login_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.IsActive,
		&u.DateOfBirth, &u.Gender, &u.HeightCm, &u.WeightKg, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt); err != nil {
		return nil, err
	}
	r, err := entity.ParseRole(role)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("user %s: %w", u.ID, err))
	}
	u.Role = r
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.Email = entity.NormalizeEmail(u.Email)
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, role, is_active,
			date_of_birth, gender, height_cm, weight_kg)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id::text, created_at, updated_at
	`, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role.String(), u.IsActive,
		u.DateOfBirth, u.Gender, u.HeightCm, u.WeightKg)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return errEmailTaken
		}
		return translate(err, "create user", "user")
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		return nil, translate(err, "get user", "user")
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, apperr.NotFound("user not found")
	}
	return r.getOne(ctx, `id = $1`, id)
}

func (r *UserRepository) GetActiveByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, apperr.NotFound("user not found")
	}
	return r.getOne(ctx, `id = $1 AND is_active = TRUE`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `lower(email) = $1`, entity.NormalizeEmail(email))
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *entity.User) error {
	u.Email = entity.NormalizeEmail(u.Email)
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, date_of_birth = $4, gender = $5,
			height_cm = $6, weight_kg = $7, updated_at = now()
		WHERE id = $8
		RETURNING updated_at
	`, u.FirstName, u.LastName, u.Email, u.DateOfBirth, u.Gender, u.HeightCm, u.WeightKg, u.ID)
	if err := row.Scan(&u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return errEmailTaken
		}
		return translate(err, "update profile", "user")
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id)
	return translate(err, "touch last login", "user")
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id string, active bool, role entity.Role) error {
	if !validID(id) {
		return apperr.NotFound("user not found")
	}
	res, err := r.db.Exec(ctx, `
		UPDATE users SET is_active = $1, role = $2, updated_at = now() WHERE id = $3
	`, active, role.String(), id)
	if err != nil {
		return translate(err, "update status", "user")
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// Delete removes a non-administrator user; the role predicate keeps the
// administrator guard intact even if the role changed after the caller's check.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return apperr.NotFound("user not found")
	}
	res, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1 AND role <> 'admin'`, id)
	if err != nil {
		return translate(err, "delete user", "user")
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) ListWithTotals(ctx context.Context) ([]entity.UserWithTotals, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id::text, u.email, u.password_hash, u.first_name, u.last_name, u.role, u.is_active,
			u.date_of_birth, u.gender, u.height_cm::float8, u.weight_kg::float8, u.created_at, u.updated_at,
			u.last_login_at, COALESCE(us.total_workouts, 0), COALESCE(us.total_calories, 0)
		FROM users u
		LEFT JOIN user_stats us ON us.user_id = u.id
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, translate(err, "list users", "user")
	}
	defer rows.Close()

	out := make([]entity.UserWithTotals, 0)
	for rows.Next() {
		var (
			ut   entity.UserWithTotals
			role string
		)
		u := &ut.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.IsActive,
			&u.DateOfBirth, &u.Gender, &u.HeightCm, &u.WeightKg, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
			&ut.TotalWorkouts, &ut.TotalCalories); err != nil {
			return nil, translate(err, "scan user", "user")
		}
		if u.Role, err = entity.ParseRole(role); err != nil {
			return nil, apperr.Internal(fmt.Errorf("user %s: %w", u.ID, err))
		}
		out = append(out, ut)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list users", "user")
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
