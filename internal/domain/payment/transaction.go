package payment

import "time"

// Status は取引ヘッダーの状態を表す
// 明細行の状態から DeriveStatus で導出される純粋な値であり、
// paid_off への直接設定は MarkPaidOff（スタッフによる強制完了）のみ
type Status string

const (
	StatusPending       Status = "pending"
	StatusPartiallyPaid Status = "partially_paid"
	StatusValid         Status = "valid"
	StatusInvalid       Status = "invalid"
	StatusPaidOff       Status = "paid_off"
)

// DetailStatus は支払い明細行の状態を表す
type DetailStatus string

const (
	DetailStatusSubmitted DetailStatus = "submitted"
	DetailStatusValid     DetailStatus = "valid"
	DetailStatusInvalid   DetailStatus = "invalid"
)

// Transaction は予約1件に対する取引ヘッダーを表す
type Transaction struct {
	ID            string
	ReservationID string
	TotalAmount   int
	Status        Status
	Details       []*Detail
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Detail は支払い証明1件の明細行を表す
// 明細は追記専用で、invalid 判定後も顧客は新しい行として再提出できる
type Detail struct {
	ID            string
	TransactionID string
	Amount        int
	ProofURL      string
	Status        DetailStatus
	ReviewerID    *string
	DecidedAt     *time.Time
	CreatedAt     time.Time
}

// NewTransaction は新しい取引ヘッダーを作成する
func NewTransaction(reservationID string, totalAmount int) *Transaction {
	now := time.Now()
	return &Transaction{
		ReservationID: reservationID,
		TotalAmount:   totalAmount,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate は取引ヘッダーの検証を行う
func (t *Transaction) Validate() error {
	if t.ReservationID == "" {
		return ErrReservationIDRequired
	}
	if t.TotalAmount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// IsPaidOff は取引が完済済みかを返す
func (t *Transaction) IsPaidOff() bool {
	return t.Status == StatusPaidOff
}

// FindDetail はIDから明細行を探す
func (t *Transaction) FindDetail(detailID string) (*Detail, error) {
	for _, d := range t.Details {
		if d.ID == detailID {
			return d, nil
		}
	}
	return nil, ErrDetailNotFound
}

// SubmitProof は支払い証明を新しい明細行として追加する
// 完済済みヘッダーへの提出はエラー
func (t *Transaction) SubmitProof(amount int, proofURL string) (*Detail, error) {
	if t.IsPaidOff() {
		return nil, ErrTransactionPaidOff
	}
	d := &Detail{
		TransactionID: t.ID,
		Amount:        amount,
		ProofURL:      proofURL,
		Status:        DetailStatusSubmitted,
		CreatedAt:     time.Now(),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	t.Details = append(t.Details, d)
	t.Recalculate()
	return d, nil
}

// Recalculate は明細行からヘッダー状態を再導出する
func (t *Transaction) Recalculate() {
	t.Status = DeriveStatus(t.Details, t.TotalAmount)
	t.UpdatedAt = time.Now()
}

// MarkPaidOff は明細の合計に関わらず取引を強制完了する（現金決済等）
func (t *Transaction) MarkPaidOff() error {
	if t.IsPaidOff() {
		return ErrTransactionPaidOff
	}
	t.Status = StatusPaidOff
	t.UpdatedAt = time.Now()
	return nil
}

// Validate は明細行の検証を行う
func (d *Detail) Validate() error {
	if d.Amount <= 0 {
		return ErrInvalidAmount
	}
	if d.ProofURL == "" {
		return ErrProofURLRequired
	}
	return nil
}

// Decide は明細行に判定を記録する
// 判定できるのは submitted 状態の行のみで、判定済みの行は不変
func (d *Detail) Decide(verdict DetailStatus, reviewerID string) error {
	if d.Status != DetailStatusSubmitted {
		return ErrDetailAlreadyDecided
	}
	if verdict != DetailStatusValid && verdict != DetailStatusInvalid {
		return ErrInvalidVerdict
	}
	now := time.Now()
	d.Status = verdict
	d.ReviewerID = &reviewerID
	d.DecidedAt = &now
	return nil
}

// DeriveStatus は明細行の状態からヘッダー状態を導出する純粋関数
//
//  1. valid な明細の合計 >= 合意金額     → paid_off
//  2. valid な明細が1件以上（合計未満）  → valid
//  3. 最新の判定が invalid で valid なし → invalid
//  4. 判定待ちの submitted 行あり        → partially_paid
//  5. それ以外（明細なし）               → pending
func DeriveStatus(details []*Detail, totalAmount int) Status {
	validSum := 0
	hasSubmitted := false
	var lastVerdict DetailStatus
	var lastDecidedAt time.Time

	for _, d := range details {
		switch d.Status {
		case DetailStatusValid:
			validSum += d.Amount
		case DetailStatusSubmitted:
			hasSubmitted = true
		}
		if d.DecidedAt != nil && d.DecidedAt.After(lastDecidedAt) {
			lastDecidedAt = *d.DecidedAt
			lastVerdict = d.Status
		}
	}

	switch {
	case validSum >= totalAmount:
		return StatusPaidOff
	case validSum > 0:
		return StatusValid
	case lastVerdict == DetailStatusInvalid:
		return StatusInvalid
	case hasSubmitted:
		return StatusPartiallyPaid
	default:
		return StatusPending
	}
}
