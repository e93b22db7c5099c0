package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pixelforge/nexus/internal/nexus/domain"
	"github.com/pixelforge/nexus/internal/nexus/store"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, username, email, password_hash, role_id,
	mfa_enabled, mfa_secret, mfa_temp_secret, created_at, updated_at`

func (r *usersRepo) scanUser(row *sql.Row) (domain.User, error) {
	var (
		u          domain.User
		secret     sql.NullString
		tempSecret sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.RoleID,
		&u.MFAEnabled, &secret, &tempSecret, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.MFASecret = mapNullStringPtr(secret)
	u.MFATempSecret = mapNullStringPtr(tempSecret)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, role_id,
			mfa_enabled, mfa_secret, mfa_temp_secret, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.RoleID,
		u.MFAEnabled, mapOptionalString(u.MFASecret), mapOptionalString(u.MFATempSecret),
		now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) SetMFATempSecret(ctx context.Context, userID string, secret string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET mfa_temp_secret = ?, updated_at = ? WHERE id = ?`,
		secret, time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// PromoteMFASecret is the single atomic step of MFA confirmation: the guard
// on mfa_temp_secret means only one of two racing confirmations applies.
func (r *usersRepo) PromoteMFASecret(ctx context.Context, userID string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users
		 SET mfa_secret = mfa_temp_secret,
		     mfa_temp_secret = NULL,
		     mfa_enabled = 1,
		     updated_at = ?
		 WHERE id = ? AND mfa_temp_secret IS NOT NULL`,
		time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
