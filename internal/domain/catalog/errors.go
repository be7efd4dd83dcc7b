package catalog

import "errors"

// Catalog ドメインのエラー定義
var (
	ErrCategoryNotFound   = errors.New("カテゴリが見つかりません")
	ErrPackageNotFound    = errors.New("パッケージが見つかりません")
	ErrAddonNotFound      = errors.New("オプションが見つかりません")
	ErrTimeOptionNotFound = errors.New("時間枠が見つかりません")
	ErrNameRequired       = errors.New("名前は必須です")
	ErrCategoryIDRequired = errors.New("カテゴリIDは必須です")
	ErrInvalidPrice       = errors.New("価格は0以上である必要があります")
	ErrTimeRangeRequired  = errors.New("開始時刻と終了時刻は必須です")
)
