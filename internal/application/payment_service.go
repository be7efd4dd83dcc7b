package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/payment"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/reservation"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/txn"
	"github.com/novastellaa/BE-Infokus-Studio/internal/infrastructure/queue"
	"github.com/novastellaa/BE-Infokus-Studio/internal/pkg/logger"
	"github.com/novastellaa/BE-Infokus-Studio/internal/pkg/metrics"
)

// PaymentService は取引台帳とライフサイクルの調整を担当する
// 明細への判定 → ヘッダー状態の再導出 → 予約完了への連鎖を
// 1つの明示的なパイプラインとして実行する唯一の場所
type PaymentService struct {
	txManager       txn.Manager
	paymentRepo     payment.Repository
	reservationRepo reservation.Repository
	publisher       EventPublisher
}

func NewPaymentService(
	tm txn.Manager,
	pr payment.Repository,
	rr reservation.Repository,
	pub EventPublisher,
) *PaymentService {
	return &PaymentService{
		txManager:       tm,
		paymentRepo:     pr,
		reservationRepo: rr,
		publisher:       pub,
	}
}

// OpenTransaction は予約に対する取引ヘッダーを作成する
// 通常は予約作成と同一トランザクションで開かれるため、
// 2回目の呼び出しは ErrTransactionAlreadyExists となる
func (s *PaymentService) OpenTransaction(ctx context.Context, reservationID string, totalAmount int) (*payment.Transaction, error) {
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !res.IsPending() {
		return nil, reservation.ErrReservationNotPending
	}

	trans := payment.NewTransaction(reservationID, totalAmount)
	if err := trans.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.paymentRepo.CreateHeader(ctx, tx, trans); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}
	return trans, nil
}

// SubmitProof は支払い証明を新しい明細行として追記する
func (s *PaymentService) SubmitProof(ctx context.Context, transactionID string, amount int, proofURL, actorID string, isAdmin bool) (*payment.Transaction, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	// ヘッダー行をロックして読む。並行する判定・提出と状態の導出が
	// 互いの書き込みを見落とさないようにする
	trans, err := s.paymentRepo.GetByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	res, err := s.reservationRepo.GetByID(ctx, trans.ReservationID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && res.UserID != actorID {
		return nil, ErrPermissionDenied
	}

	detail, err := trans.SubmitProof(amount, proofURL)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.CreateDetail(ctx, tx, detail); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.UpdateStatus(ctx, tx, trans); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}
	return trans, nil
}

// SetValid は明細行を承認し、ヘッダー状態を再導出する
// 完済に到達した場合は同一トランザクションで予約を完了状態にする
func (s *PaymentService) SetValid(ctx context.Context, transactionID, detailID, reviewerID string) (*payment.Transaction, error) {
	return s.decide(ctx, transactionID, detailID, reviewerID, payment.DetailStatusValid)
}

// SetInvalid は明細行を却下し、ヘッダー状態を再導出する
func (s *PaymentService) SetInvalid(ctx context.Context, transactionID, detailID, reviewerID string) (*payment.Transaction, error) {
	return s.decide(ctx, transactionID, detailID, reviewerID, payment.DetailStatusInvalid)
}

func (s *PaymentService) decide(ctx context.Context, transactionID, detailID, reviewerID string, verdict payment.DetailStatus) (*payment.Transaction, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	// ヘッダー行をロックして読み直す。別の明細への並行判定とは
	// ここで直列化され、導出は常に確定済みの全明細を見る
	trans, err := s.paymentRepo.GetByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	detail, err := trans.FindDetail(detailID)
	if err != nil {
		return nil, err
	}
	res, err := s.reservationRepo.GetByID(ctx, trans.ReservationID)
	if err != nil {
		return nil, err
	}
	// キャンセル済み予約の取引には判定を記録しない
	if res.Status == reservation.StatusCanceled {
		return nil, reservation.ErrReservationNotPending
	}

	if err := detail.Decide(verdict, reviewerID); err != nil {
		return nil, err
	}
	trans.Recalculate()

	if err := s.paymentRepo.UpdateDetail(ctx, tx, detail); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.UpdateStatus(ctx, tx, trans); err != nil {
		return nil, err
	}

	paidOff := trans.IsPaidOff()
	if paidOff && res.IsPending() {
		if err := res.MarkSuccess(); err != nil {
			return nil, err
		}
		if err := s.reservationRepo.Update(ctx, tx, res); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.countVerdict(string(verdict))
	if paidOff {
		s.publishCompleted(ctx, trans, res)
	}
	return trans, nil
}

// MarkPaidOff は明細の合計に関わらず取引を強制完了する（現金決済等）
// 予約の完了も同一トランザクションで連鎖させる
func (s *PaymentService) MarkPaidOff(ctx context.Context, transactionID, reviewerID string) (*payment.Transaction, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	trans, err := s.paymentRepo.GetByIDForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	res, err := s.reservationRepo.GetByID(ctx, trans.ReservationID)
	if err != nil {
		return nil, err
	}
	if res.Status == reservation.StatusCanceled {
		return nil, reservation.ErrReservationNotPending
	}
	if err := trans.MarkPaidOff(); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.UpdateStatus(ctx, tx, trans); err != nil {
		return nil, err
	}
	if res.IsPending() {
		if err := res.MarkSuccess(); err != nil {
			return nil, err
		}
		if err := s.reservationRepo.Update(ctx, tx, res); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.countVerdict("paid_off")
	s.publishCompleted(ctx, trans, res)
	logger.Info("取引を強制完了",
		zap.String("transaction_id", trans.ID),
		zap.String("reviewer_id", reviewerID))
	return trans, nil
}

// GetTransaction は取引を取得する。金額や証明URLを含むため、
// 予約の所有者か管理者にしか見せない
func (s *PaymentService) GetTransaction(ctx context.Context, id, actorID string, isAdmin bool) (*payment.Transaction, error) {
	trans, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		res, err := s.reservationRepo.GetByID(ctx, trans.ReservationID)
		if err != nil {
			return nil, err
		}
		if res.UserID != actorID {
			return nil, ErrPermissionDenied
		}
	}
	return trans, nil
}

// GetTransactionByReservation は予約に紐づく取引を取得する
// 閲覧権限は GetTransaction と同じ
func (s *PaymentService) GetTransactionByReservation(ctx context.Context, reservationID, actorID string, isAdmin bool) (*payment.Transaction, error) {
	if !isAdmin {
		res, err := s.reservationRepo.GetByID(ctx, reservationID)
		if err != nil {
			return nil, err
		}
		if res.UserID != actorID {
			return nil, ErrPermissionDenied
		}
	}
	return s.paymentRepo.GetByReservationID(ctx, reservationID)
}

func (s *PaymentService) GetAllTransactions(ctx context.Context, limit, offset int) ([]*payment.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.paymentRepo.GetAll(ctx, limit, offset)
}

// CanReview は完了済み予約（予約 success かつ取引 paid_off）の
// 所有者のみレビューを作成できるかを返す
func (s *PaymentService) CanReview(ctx context.Context, reservationID, userID string) (bool, error) {
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return false, err
	}
	if res.UserID != userID || res.Status != reservation.StatusSuccess {
		return false, nil
	}
	trans, err := s.paymentRepo.GetByReservationID(ctx, reservationID)
	if err != nil {
		return false, err
	}
	return trans.IsPaidOff(), nil
}

func (s *PaymentService) publishCompleted(ctx context.Context, trans *payment.Transaction, res *reservation.Reservation) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishPaymentCompleted(ctx, queue.PaymentCompletedEvent{
		TransactionID: trans.ID,
		ReservationID: trans.ReservationID,
		UserID:        res.UserID,
		TotalAmount:   trans.TotalAmount,
		CompletedAt:   time.Now().Format(time.RFC3339),
	}); err != nil {
		logger.Warn("支払い完了イベントの発行に失敗", zap.Error(err))
	}
}

func (s *PaymentService) countVerdict(verdict string) {
	if m := metrics.Get(); m != nil {
		m.PaymentVerdictsTotal.WithLabelValues(verdict).Inc()
	}
}
