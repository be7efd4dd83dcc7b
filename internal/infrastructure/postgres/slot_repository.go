package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/slot"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/txn"
)

// SlotRepository は slot_claims テーブルによる時間枠アロケーター
// UNIQUE(date, time_option_id) 制約が直列化ポイントであり、
// 同一キーへの同時INSERTは高々1件しか成功しない
type SlotRepository struct{ db *sqlx.DB }

func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) Claim(ctx context.Context, tx txn.Tx, c *slot.Claim) error {
	query := `INSERT INTO slot_claims (date, time_option_id, reservation_id) VALUES ($1, $2, $3)`
	if _, err := UnwrapTx(tx).ExecContext(ctx, query, c.Date, c.TimeOptionID, c.ReservationID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return slot.ErrSlotUnavailable
		}
		return fmt.Errorf("時間枠の占有に失敗: %w", err)
	}
	return nil
}

func (r *SlotRepository) Release(ctx context.Context, tx txn.Tx, date, timeOptionID string) error {
	// 既に解放済みでも成功扱い（冪等）
	query := `DELETE FROM slot_claims WHERE date = $1 AND time_option_id = $2`
	if _, err := UnwrapTx(tx).ExecContext(ctx, query, date, timeOptionID); err != nil {
		return fmt.Errorf("時間枠の解放に失敗: %w", err)
	}
	return nil
}

func (r *SlotRepository) Occupied(ctx context.Context, date string) ([]string, error) {
	var ids []string
	query := `SELECT sc.time_option_id FROM slot_claims sc JOIN time_options t ON t.id = sc.time_option_id WHERE sc.date = $1 ORDER BY t.start_time`
	if err := r.db.SelectContext(ctx, &ids, query, date); err != nil {
		return nil, fmt.Errorf("占有済み時間枠の取得に失敗: %w", err)
	}
	return ids, nil
}

var _ slot.Allocator = (*SlotRepository)(nil)
