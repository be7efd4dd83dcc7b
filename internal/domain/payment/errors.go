package payment

import "errors"

// Payment ドメインのエラー定義
var (
	ErrTransactionNotFound      = errors.New("取引が見つかりません")
	ErrTransactionAlreadyExists = errors.New("この予約の取引は既に存在します")
	ErrTransactionPaidOff       = errors.New("取引は既に完済されています")
	ErrDetailNotFound           = errors.New("支払い明細が見つかりません")
	ErrDetailAlreadyDecided     = errors.New("支払い明細は既に判定済みです")
	ErrInvalidVerdict           = errors.New("不正な判定値です")
	ErrReservationIDRequired    = errors.New("予約IDは必須です")
	ErrInvalidAmount            = errors.New("金額は正の値である必要があります")
	ErrProofURLRequired         = errors.New("支払い証明のURLは必須です")
)
