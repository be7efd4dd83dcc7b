package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/payment"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/txn"
)

type transactionRow struct {
	ID            string    `db:"id"`
	ReservationID string    `db:"reservation_id"`
	TotalAmount   int       `db:"total_amount"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type detailRow struct {
	ID            string     `db:"id"`
	TransactionID string     `db:"transaction_id"`
	Amount        int        `db:"amount"`
	ProofURL      string     `db:"proof_url"`
	Status        string     `db:"status"`
	ReviewerID    *string    `db:"reviewer_id"`
	DecidedAt     *time.Time `db:"decided_at"`
	CreatedAt     time.Time  `db:"created_at"`
}

type PaymentRepository struct{ db *sqlx.DB }

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) CreateHeader(ctx context.Context, tx txn.Tx, t *payment.Transaction) error {
	query := `INSERT INTO transactions (reservation_id, total_amount, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := UnwrapTx(tx).QueryRowContext(ctx, query, t.ReservationID, t.TotalAmount, string(t.Status), t.CreatedAt, t.UpdatedAt).Scan(&t.ID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return payment.ErrTransactionAlreadyExists
		}
		return fmt.Errorf("取引作成に失敗: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*payment.Transaction, error) {
	var row transactionRow
	query := `SELECT id, reservation_id, total_amount, status, created_at, updated_at FROM transactions WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("取引取得に失敗: %w", err)
	}
	return r.loadDetails(ctx, r.db, &row)
}

// GetByIDForUpdate はヘッダー行を FOR UPDATE でロックして取得する
// 同一取引への並行する判定はこのロックで直列化される
func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, tx txn.Tx, id string) (*payment.Transaction, error) {
	var row transactionRow
	query := `SELECT id, reservation_id, total_amount, status, created_at, updated_at FROM transactions WHERE id = $1 FOR UPDATE`
	if err := UnwrapTx(tx).GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("取引取得に失敗: %w", err)
	}
	return r.loadDetails(ctx, UnwrapTx(tx), &row)
}

func (r *PaymentRepository) GetByReservationID(ctx context.Context, reservationID string) (*payment.Transaction, error) {
	var row transactionRow
	query := `SELECT id, reservation_id, total_amount, status, created_at, updated_at FROM transactions WHERE reservation_id = $1`
	if err := r.db.GetContext(ctx, &row, query, reservationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("取引取得に失敗: %w", err)
	}
	return r.loadDetails(ctx, r.db, &row)
}

func (r *PaymentRepository) GetAll(ctx context.Context, limit, offset int) ([]*payment.Transaction, error) {
	var rows []transactionRow
	query := `SELECT id, reservation_id, total_amount, status, created_at, updated_at FROM transactions ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("取引一覧取得に失敗: %w", err)
	}
	result := make([]*payment.Transaction, len(rows))
	for i, row := range rows {
		t, err := r.loadDetails(ctx, r.db, &row)
		if err != nil {
			return nil, err
		}
		result[i] = t
	}
	return result, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, tx txn.Tx, t *payment.Transaction) error {
	query := `UPDATE transactions SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := UnwrapTx(tx).ExecContext(ctx, query, string(t.Status), t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("取引更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return payment.ErrTransactionNotFound
	}
	return nil
}

func (r *PaymentRepository) CreateDetail(ctx context.Context, tx txn.Tx, d *payment.Detail) error {
	query := `INSERT INTO transaction_details (transaction_id, amount, proof_url, status, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := UnwrapTx(tx).QueryRowContext(ctx, query, d.TransactionID, d.Amount, d.ProofURL, string(d.Status), d.CreatedAt).Scan(&d.ID); err != nil {
		return fmt.Errorf("支払い明細作成に失敗: %w", err)
	}
	return nil
}

func (r *PaymentRepository) UpdateDetail(ctx context.Context, tx txn.Tx, d *payment.Detail) error {
	// 判定は submitted の行にしか記録できない（判定済み行は不変）
	query := `UPDATE transaction_details SET status = $1, reviewer_id = $2, decided_at = $3 WHERE id = $4 AND status = 'submitted'`
	result, err := UnwrapTx(tx).ExecContext(ctx, query, string(d.Status), d.ReviewerID, d.DecidedAt, d.ID)
	if err != nil {
		return fmt.Errorf("支払い明細更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return payment.ErrDetailAlreadyDecided
	}
	return nil
}

// detailQueryer は *sqlx.DB と *sqlx.Tx の共通部分
type detailQueryer interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func (r *PaymentRepository) loadDetails(ctx context.Context, q detailQueryer, row *transactionRow) (*payment.Transaction, error) {
	var detailRows []detailRow
	query := `SELECT id, transaction_id, amount, proof_url, status, reviewer_id, decided_at, created_at FROM transaction_details WHERE transaction_id = $1 ORDER BY created_at`
	if err := q.SelectContext(ctx, &detailRows, query, row.ID); err != nil {
		return nil, fmt.Errorf("支払い明細取得に失敗: %w", err)
	}
	details := make([]*payment.Detail, len(detailRows))
	for i, d := range detailRows {
		details[i] = &payment.Detail{
			ID: d.ID, TransactionID: d.TransactionID, Amount: d.Amount,
			ProofURL: d.ProofURL, Status: payment.DetailStatus(d.Status),
			ReviewerID: d.ReviewerID, DecidedAt: d.DecidedAt, CreatedAt: d.CreatedAt,
		}
	}
	return &payment.Transaction{
		ID: row.ID, ReservationID: row.ReservationID,
		TotalAmount: row.TotalAmount, Status: payment.Status(row.Status),
		Details:   details,
		CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}, nil
}

var _ payment.Repository = (*PaymentRepository)(nil)
