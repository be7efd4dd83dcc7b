package reservation

import "time"

// DateLayout は予約日付のフォーマット
const DateLayout = "2006-01-02"

// Status は予約の状態を表す
type Status string

const (
	StatusPending  Status = "pending"
	StatusSuccess  Status = "success"
	StatusCanceled Status = "canceled"
)

// Reservation は予約エンティティを表す
type Reservation struct {
	ID           string
	UserID       string
	PackageID    string
	AddonIDs     []string
	Name         string
	Date         string // YYYY-MM-DD
	TimeOptionID string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// NewReservation は新しい予約を作成する
func NewReservation(userID, packageID, name, date, timeOptionID string, addonIDs []string) *Reservation {
	now := time.Now()
	return &Reservation{
		UserID:       userID,
		PackageID:    packageID,
		AddonIDs:     addonIDs,
		Name:         name,
		Date:         date,
		TimeOptionID: timeOptionID,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsPending は予約が保留中かを返す
func (r *Reservation) IsPending() bool {
	return r.Status == StatusPending
}

// MarkSuccess は予約を完了状態にする
// 支払い完了時にのみライフサイクル調整層から呼ばれる
func (r *Reservation) MarkSuccess() error {
	if r.Status != StatusPending {
		return ErrReservationNotPending
	}
	r.Status = StatusSuccess
	r.UpdatedAt = time.Now()
	return nil
}

// Cancel は予約をキャンセルする
// キャンセル済み予約の再キャンセルはエラー（no-opにはしない）
func (r *Reservation) Cancel() error {
	if r.Status == StatusCanceled {
		return ErrReservationAlreadyCanceled
	}
	if r.Status == StatusSuccess {
		return ErrReservationAlreadyCompleted
	}
	r.Status = StatusCanceled
	r.UpdatedAt = time.Now()
	return nil
}

// Validate は予約の検証を行う
func (r *Reservation) Validate() error {
	if r.UserID == "" {
		return ErrUserIDRequired
	}
	if r.PackageID == "" {
		return ErrPackageIDRequired
	}
	if r.Date == "" {
		return ErrDateRequired
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return ErrInvalidDate
	}
	if r.TimeOptionID == "" {
		return ErrTimeOptionIDRequired
	}
	return nil
}
