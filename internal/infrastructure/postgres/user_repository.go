package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/user"
)

type userRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r *userRow) toEntity() *user.User {
	return &user.User{
		ID: r.ID, Name: r.Name, Email: r.Email,
		PasswordHash: r.PasswordHash, Role: user.Role(r.Role), CreatedAt: r.CreatedAt,
	}
}

type UserRepository struct{ db *sqlx.DB }

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `INSERT INTO users (name, email, password_hash, role, created_at) VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash, string(u.Role)).Scan(&u.ID, &u.CreatedAt); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyUsed
		}
		return fmt.Errorf("ユーザー作成に失敗: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var row userRow
	query := `SELECT id, name, email, password_hash, role, created_at FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("ユーザー取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var row userRow
	query := `SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = $1`
	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("ユーザー取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

var _ user.Repository = (*UserRepository)(nil)
