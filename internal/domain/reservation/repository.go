package reservation

import (
	"context"
	"time"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/txn"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	Create(ctx context.Context, tx txn.Tx, r *Reservation) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Reservation, error)

	// GetByUserID はユーザーIDから予約一覧を取得する
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*Reservation, error)

	// GetByDate は指定日の予約一覧を取得する
	GetByDate(ctx context.Context, date string) ([]*Reservation, error)

	// GetAll は予約一覧を取得する
	GetAll(ctx context.Context, limit, offset int) ([]*Reservation, error)

	// Update は予約の状態を更新する（トランザクション必須）
	Update(ctx context.Context, tx txn.Tx, r *Reservation) error

	// SoftDelete は予約に削除マーカーを付ける
	SoftDelete(ctx context.Context, id string) error

	// GetUnpaidPending は支払い期限を過ぎた保留中の予約を取得する
	GetUnpaidPending(ctx context.Context, olderThan time.Duration) ([]*Reservation, error)
}
