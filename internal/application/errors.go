package application

import "errors"

// アプリケーション層のエラー定義
var (
	ErrPermissionDenied = errors.New("この操作を行う権限がありません")
	ErrSlotContention   = errors.New("この時間枠は他のユーザーが処理中です")
)
