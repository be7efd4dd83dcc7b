package review

import (
	"context"
	"errors"
	"time"
)

// Review は完了済み予約に対するレビューを表す
type Review struct {
	ID            string
	ReservationID string
	UserID        string
	Rating        int
	Comment       string
	CreatedAt     time.Time
}

// Review ドメインのエラー定義
var (
	ErrReviewNotFound      = errors.New("レビューが見つかりません")
	ErrReviewAlreadyExists = errors.New("この予約のレビューは既に存在します")
	ErrReviewNotAllowed    = errors.New("完了済みの予約のみレビューできます")
	ErrInvalidRating       = errors.New("評価は1から5の間である必要があります")
)

// Validate はレビューの検証を行う
func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// Repository はレビューリポジトリのインターフェース
type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByReservationID(ctx context.Context, reservationID string) (*Review, error)
	ListAll(ctx context.Context, limit, offset int) ([]*Review, error)
}
