package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/review"
)

type ReviewRepository struct{ db *sqlx.DB }

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	query := `INSERT INTO reviews (reservation_id, user_id, rating, comment, created_at) VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, query, rv.ReservationID, rv.UserID, rv.Rating, rv.Comment).Scan(&rv.ID, &rv.CreatedAt); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return review.ErrReviewAlreadyExists
		}
		return fmt.Errorf("レビュー作成に失敗: %w", err)
	}
	return nil
}

func (r *ReviewRepository) GetByReservationID(ctx context.Context, reservationID string) (*review.Review, error) {
	var rv review.Review
	query := `SELECT id, reservation_id, user_id, rating, comment, created_at FROM reviews WHERE reservation_id = $1`
	err := r.db.QueryRowContext(ctx, query, reservationID).
		Scan(&rv.ID, &rv.ReservationID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, review.ErrReviewNotFound
		}
		return nil, fmt.Errorf("レビュー取得に失敗: %w", err)
	}
	return &rv, nil
}

func (r *ReviewRepository) ListAll(ctx context.Context, limit, offset int) ([]*review.Review, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, reservation_id, user_id, rating, comment, created_at FROM reviews ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("レビュー一覧取得に失敗: %w", err)
	}
	defer rows.Close()
	var result []*review.Review
	for rows.Next() {
		var rv review.Review
		if err := rows.Scan(&rv.ID, &rv.ReservationID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &rv)
	}
	return result, rows.Err()
}

var _ review.Repository = (*ReviewRepository)(nil)
