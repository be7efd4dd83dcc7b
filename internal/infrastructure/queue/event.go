// Package queue はメッセージブローカーで交換されるイベント定義と
// パブリッシャーを提供する。配送失敗はログに記録して呼び出し元へ
// 返すが、リクエスト本体の処理は中断しない。
package queue

// ReservationCreatedEvent は予約作成時に発行される
type ReservationCreatedEvent struct {
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	PackageID     string `json:"package_id"`
	Date          string `json:"date"`
	TimeOptionID  string `json:"time_option_id"`
	TotalAmount   int    `json:"total_amount"`
	CreatedAt     string `json:"created_at"`
}

// PaymentCompletedEvent は取引が完済に到達したときに発行される
// 下流の通知コンシューマーが本体DBを参照せずに処理できる情報を持つ
type PaymentCompletedEvent struct {
	TransactionID string `json:"transaction_id"`
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	TotalAmount   int    `json:"total_amount"`
	CompletedAt   string `json:"completed_at"`
}

// ReservationCanceledEvent は予約キャンセル時に発行される
type ReservationCanceledEvent struct {
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	Date          string `json:"date"`
	TimeOptionID  string `json:"time_option_id"`
	CanceledAt    string `json:"canceled_at"`
}
