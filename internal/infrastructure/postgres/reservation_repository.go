package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/reservation"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/txn"
)

type reservationRow struct {
	ID           string     `db:"id"`
	UserID       string     `db:"user_id"`
	PackageID    string     `db:"package_id"`
	Name         string     `db:"name"`
	Date         time.Time  `db:"date"`
	TimeOptionID string     `db:"time_option_id"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type ReservationRepository struct{ db *sqlx.DB }

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, user_id, package_id, name, date, time_option_id, status, created_at, updated_at, deleted_at`

func (r *ReservationRepository) Create(ctx context.Context, tx txn.Tx, res *reservation.Reservation) error {
	query := `INSERT INTO reservations (user_id, package_id, name, date, time_option_id, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	sqlxTx := UnwrapTx(tx)
	if err := sqlxTx.QueryRowContext(ctx, query, res.UserID, res.PackageID, res.Name, res.Date, res.TimeOptionID, string(res.Status), res.CreatedAt, res.UpdatedAt).Scan(&res.ID); err != nil {
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	for _, addonID := range res.AddonIDs {
		if _, err := sqlxTx.ExecContext(ctx, `INSERT INTO reservation_addons (reservation_id, addon_id) VALUES ($1, $2)`, res.ID, addonID); err != nil {
			return fmt.Errorf("予約オプション関連付けに失敗: %w", err)
		}
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	var row reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	addonIDs, err := r.getAddonIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.toEntity(&row, addonIDs), nil
}

func (r *ReservationRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *ReservationRepository) GetByDate(ctx context.Context, date string) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE date = $1 AND deleted_at IS NULL ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &rows, query, date); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *ReservationRepository) GetAll(ctx context.Context, limit, offset int) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE deleted_at IS NULL ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *ReservationRepository) Update(ctx context.Context, tx txn.Tx, res *reservation.Reservation) error {
	query := `UPDATE reservations SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := UnwrapTx(tx).ExecContext(ctx, query, string(res.Status), res.UpdatedAt, res.ID)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return reservation.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) SoftDelete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE reservations SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("予約削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return reservation.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) GetUnpaidPending(ctx context.Context, olderThan time.Duration) ([]*reservation.Reservation, error) {
	// valid な支払いが1件もないまま期限を過ぎた保留中予約
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations r
		WHERE r.status = 'pending' AND r.deleted_at IS NULL AND r.created_at < $1
		AND NOT EXISTS (
			SELECT 1 FROM transactions t
			JOIN transaction_details d ON d.transaction_id = t.id
			WHERE t.reservation_id = r.id AND d.status = 'valid'
		)`
	cutoff := time.Now().Add(-olderThan)
	if err := r.db.SelectContext(ctx, &rows, query, cutoff); err != nil {
		return nil, fmt.Errorf("未払い予約取得に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *ReservationRepository) getAddonIDs(ctx context.Context, reservationID string) ([]string, error) {
	var addonIDs []string
	if err := r.db.SelectContext(ctx, &addonIDs, `SELECT addon_id FROM reservation_addons WHERE reservation_id = $1`, reservationID); err != nil {
		return nil, fmt.Errorf("オプションID取得に失敗: %w", err)
	}
	return addonIDs, nil
}

func (r *ReservationRepository) toEntities(ctx context.Context, rows []reservationRow) ([]*reservation.Reservation, error) {
	result := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		addonIDs, err := r.getAddonIDs(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		result[i] = r.toEntity(&row, addonIDs)
	}
	return result, nil
}

func (r *ReservationRepository) toEntity(row *reservationRow, addonIDs []string) *reservation.Reservation {
	return &reservation.Reservation{
		ID: row.ID, UserID: row.UserID, PackageID: row.PackageID,
		AddonIDs: addonIDs, Name: row.Name,
		Date:         row.Date.Format(reservation.DateLayout),
		TimeOptionID: row.TimeOptionID,
		Status:       reservation.Status(row.Status),
		CreatedAt:    row.CreatedAt, UpdatedAt: row.UpdatedAt, DeletedAt: row.DeletedAt,
	}
}

var _ reservation.Repository = (*ReservationRepository)(nil)
