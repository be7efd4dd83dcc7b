package reservation

import "errors"

// Reservation ドメインのエラー定義
var (
	ErrReservationNotFound         = errors.New("予約が見つかりません")
	ErrReservationNotPending       = errors.New("予約は保留中ではありません")
	ErrReservationAlreadyCanceled  = errors.New("予約は既にキャンセルされています")
	ErrReservationAlreadyCompleted = errors.New("予約は既に完了しています")
	ErrUserIDRequired              = errors.New("ユーザーIDは必須です")
	ErrPackageIDRequired           = errors.New("パッケージIDは必須です")
	ErrDateRequired                = errors.New("予約日は必須です")
	ErrInvalidDate                 = errors.New("予約日の形式が不正です")
	ErrTimeOptionIDRequired        = errors.New("時間枠IDは必須です")
)
