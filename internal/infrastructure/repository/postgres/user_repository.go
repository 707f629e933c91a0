package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, email, password_hash, role, name, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, user.ID, user.Email, user.PasswordHash, string(user.Role), user.Name, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, role, name, created_at FROM users WHERE id = $1
`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, role, name, created_at FROM users WHERE email = $1
`, email))
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &role, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "fetch user", err)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Role = domain.Role(role)
	return &user, nil
}

func (r *UserRepository) UpdateName(ctx context.Context, id, name string) error {
	return r.updateOne(ctx, `UPDATE users SET name = $2 WHERE id = $1`, "update name", id, name)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateOne(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, "update password", id, passwordHash)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.updateOne(ctx, `DELETE FROM users WHERE id = $1`, "delete user", id)
}

func (r *UserRepository) updateOne(ctx context.Context, query, op string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if countDeleted(result) == 0 {
		return domain.WrapError(domain.ErrNotFound, op, sql.ErrNoRows)
	}
	return nil
}

func (r *UserRepository) ListWithStats(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT u.id, u.email, u.role, u.name, u.created_at,
	(SELECT COUNT(*) FROM analyses a WHERE a.user_id = u.id),
	(SELECT COUNT(*) FROM reports r WHERE r.user_id = u.id)
FROM users u
ORDER BY u.created_at
`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []domain.UserAccount
	for rows.Next() {
		var account domain.UserAccount
		var role string
		if err := rows.Scan(&account.ID, &account.Email, &role, &account.Name, &account.CreatedAt,
			&account.TotalAnalyses, &account.TotalReports); err != nil {
			return nil, fmt.Errorf("scan user account: %w", err)
		}
		account.Role = domain.Role(role)
		out = append(out, account)
	}
	return out, rows.Err()
}

func (r *UserRepository) ProfileByID(ctx context.Context, id string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT u.id, u.email, u.role, u.name, u.created_at,
	(SELECT COUNT(*) FROM analyses a WHERE a.user_id = u.id),
	(SELECT COUNT(*) FROM reports r WHERE r.user_id = u.id),
	COALESCE((SELECT MAX(h.created_at) FROM history h WHERE h.user_id = u.id), u.created_at)
FROM users u
WHERE u.id = $1
`, id)

	var profile domain.Profile
	var role string
	err := row.Scan(&profile.ID, &profile.Email, &role, &profile.Name, &profile.CreatedAt,
		&profile.TotalAnalyses, &profile.TotalReports, &profile.LastActivity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "fetch profile", err)
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	profile.Role = domain.Role(role)
	return &profile, nil
}
