package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/catalog"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/payment"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/reservation"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/slot"
	"github.com/novastellaa/BE-Infokus-Studio/internal/domain/txn"
	"github.com/novastellaa/BE-Infokus-Studio/internal/infrastructure/queue"
	redislock "github.com/novastellaa/BE-Infokus-Studio/internal/infrastructure/redis"
	"github.com/novastellaa/BE-Infokus-Studio/internal/pkg/logger"
	"github.com/novastellaa/BE-Infokus-Studio/internal/pkg/metrics"
)

// EventPublisher はドメインイベントの発行インターフェース
// 発行失敗はリクエストを失敗させない（ログのみ）
type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, ev queue.ReservationCreatedEvent) error
	PublishReservationCanceled(ctx context.Context, ev queue.ReservationCanceledEvent) error
	PublishPaymentCompleted(ctx context.Context, ev queue.PaymentCompletedEvent) error
}

// SlotCache は占有済み時間枠一覧のキャッシュインターフェース
type SlotCache interface {
	Get(ctx context.Context, date string) ([]string, error)
	Set(ctx context.Context, date string, ids []string, ttl time.Duration) error
	Invalidate(ctx context.Context, date string) error
}

const occupiedCacheTTL = time.Minute

type ReservationService struct {
	txManager       txn.Manager
	reservationRepo reservation.Repository
	paymentRepo     payment.Repository
	allocator       slot.Allocator
	catalogRepo     catalog.Repository
	lockManager     *redislock.LockManager
	slotCache       SlotCache
	publisher       EventPublisher
}

func NewReservationService(
	tm txn.Manager,
	rr reservation.Repository,
	pr payment.Repository,
	al slot.Allocator,
	cr catalog.Repository,
	lm *redislock.LockManager,
	sc SlotCache,
	pub EventPublisher,
) *ReservationService {
	return &ReservationService{
		txManager:       tm,
		reservationRepo: rr,
		paymentRepo:     pr,
		allocator:       al,
		catalogRepo:     cr,
		lockManager:     lm,
		slotCache:       sc,
		publisher:       pub,
	}
}

type CreateReservationInput struct {
	UserID       string
	PackageID    string
	AddonIDs     []string
	Name         string
	Date         string
	TimeOptionID string
}

// CreateReservation は予約と取引ヘッダーを単一のDBトランザクションで作成する
// どちらか一方だけが観測されることはない
func (s *ReservationService) CreateReservation(ctx context.Context, input CreateReservationInput) (*reservation.Reservation, *payment.Transaction, error) {
	res := reservation.NewReservation(input.UserID, input.PackageID, input.Name, input.Date, input.TimeOptionID, input.AddonIDs)
	if err := res.Validate(); err != nil {
		return nil, nil, err
	}

	// カタログ参照の解決と合計金額の算出
	totalAmount, err := s.resolveTotal(ctx, input.PackageID, input.TimeOptionID, input.AddonIDs)
	if err != nil {
		return nil, nil, err
	}

	// 分散ロックで同一枠への同時リクエストを直列化
	// 最終的な守りは slot_claims のユニーク制約
	if s.lockManager != nil {
		lock, err := s.lockManager.AcquireLockWithRetry(ctx, slot.LockKey(input.Date, input.TimeOptionID), 10*time.Second, 3, 100*time.Millisecond)
		if err != nil {
			if errors.Is(err, redislock.ErrLockNotAcquired) {
				s.countReservation("lock_failed")
				return nil, nil, ErrSlotContention
			}
			return nil, nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		defer lock.Release(ctx)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.reservationRepo.Create(ctx, tx, res); err != nil {
		return nil, nil, err
	}
	if err := s.allocator.Claim(ctx, tx, &slot.Claim{
		Date:          res.Date,
		TimeOptionID:  res.TimeOptionID,
		ReservationID: res.ID,
	}); err != nil {
		if errors.Is(err, slot.ErrSlotUnavailable) {
			s.countReservation("conflict")
		}
		return nil, nil, err
	}

	trans := payment.NewTransaction(res.ID, totalAmount)
	if err := trans.Validate(); err != nil {
		return nil, nil, err
	}
	if err := s.paymentRepo.CreateHeader(ctx, tx, trans); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.countReservation("created")
	s.invalidateOccupied(ctx, res.Date)
	s.publishCreated(ctx, res, trans)
	return res, trans, nil
}

// resolveTotal はカタログ参照を解決し合計金額を返す
// 参照先が存在しない場合は各ドメインの NotFound をそのまま返す
func (s *ReservationService) resolveTotal(ctx context.Context, packageID, timeOptionID string, addonIDs []string) (int, error) {
	pkg, err := s.catalogRepo.GetPackage(ctx, packageID)
	if err != nil {
		return 0, err
	}
	if _, err := s.catalogRepo.GetTimeOption(ctx, timeOptionID); err != nil {
		return 0, err
	}
	total := pkg.Price
	for _, id := range addonIDs {
		addon, err := s.catalogRepo.GetAddon(ctx, id)
		if err != nil {
			return 0, err
		}
		total += addon.Price
	}
	return total, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (*reservation.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, id)
}

func (s *ReservationService) GetUserReservations(ctx context.Context, userID string, limit, offset int) ([]*reservation.Reservation, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.reservationRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *ReservationService) GetReservationsByDate(ctx context.Context, date string) ([]*reservation.Reservation, error) {
	return s.reservationRepo.GetByDate(ctx, date)
}

func (s *ReservationService) GetAllReservations(ctx context.Context, limit, offset int) ([]*reservation.Reservation, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.reservationRepo.GetAll(ctx, limit, offset)
}

// GetOccupiedSlots は指定日の占有済み時間枠ID一覧を返す
// 結果整合で十分なためキャッシュを前置する
func (s *ReservationService) GetOccupiedSlots(ctx context.Context, date string) ([]string, error) {
	if _, err := time.Parse(reservation.DateLayout, date); err != nil {
		return nil, reservation.ErrInvalidDate
	}
	if s.slotCache != nil {
		if ids, err := s.slotCache.Get(ctx, date); err == nil {
			return ids, nil
		}
	}
	ids, err := s.allocator.Occupied(ctx, date)
	if err != nil {
		return nil, err
	}
	if s.slotCache != nil {
		if err := s.slotCache.Set(ctx, date, ids, occupiedCacheTTL); err != nil {
			logger.Warn("占有枠キャッシュの保存に失敗", zap.Error(err))
		}
	}
	return ids, nil
}

// CancelReservation は予約をキャンセルし、時間枠を同一トランザクションで解放する
func (s *ReservationService) CancelReservation(ctx context.Context, id, actorID string, isAdmin bool) (*reservation.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && res.UserID != actorID {
		return nil, ErrPermissionDenied
	}
	if err := res.Cancel(); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.reservationRepo.Update(ctx, tx, res); err != nil {
		return nil, err
	}
	if err := s.allocator.Release(ctx, tx, res.Date, res.TimeOptionID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.countReservation("canceled")
	s.invalidateOccupied(ctx, res.Date)
	if s.publisher != nil {
		if err := s.publisher.PublishReservationCanceled(ctx, queue.ReservationCanceledEvent{
			ReservationID: res.ID,
			UserID:        res.UserID,
			Date:          res.Date,
			TimeOptionID:  res.TimeOptionID,
			CanceledAt:    time.Now().Format(time.RFC3339),
		}); err != nil {
			logger.Warn("キャンセルイベントの発行に失敗", zap.Error(err))
		}
	}
	return res, nil
}

// DeleteReservation は予約に削除マーカーを付ける（管理者のみ）
func (s *ReservationService) DeleteReservation(ctx context.Context, id string) error {
	return s.reservationRepo.SoftDelete(ctx, id)
}

// CancelUnpaidReservations は支払い期限を過ぎた保留中予約をキャンセルする
// 未払い期限のポリシーはワーカー（外部タイマー）側が持つ
func (s *ReservationService) CancelUnpaidReservations(ctx context.Context, olderThan time.Duration) (int, error) {
	expired, err := s.reservationRepo.GetUnpaidPending(ctx, olderThan)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, res := range expired {
		if _, err := s.CancelReservation(ctx, res.ID, res.UserID, true); err != nil {
			logger.Error("未払い予約のキャンセルに失敗",
				zap.String("reservation_id", res.ID), zap.Error(err))
			continue
		}
		count++
	}
	return count, nil
}

func (s *ReservationService) publishCreated(ctx context.Context, res *reservation.Reservation, trans *payment.Transaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishReservationCreated(ctx, queue.ReservationCreatedEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		PackageID:     res.PackageID,
		Date:          res.Date,
		TimeOptionID:  res.TimeOptionID,
		TotalAmount:   trans.TotalAmount,
		CreatedAt:     res.CreatedAt.Format(time.RFC3339),
	}); err != nil {
		logger.Warn("予約作成イベントの発行に失敗", zap.Error(err))
	}
}

func (s *ReservationService) invalidateOccupied(ctx context.Context, date string) {
	if s.slotCache == nil {
		return
	}
	if err := s.slotCache.Invalidate(ctx, date); err != nil {
		logger.Warn("占有枠キャッシュの無効化に失敗", zap.Error(err))
	}
}

func (s *ReservationService) countReservation(status string) {
	if m := metrics.Get(); m != nil {
		m.ReservationsTotal.WithLabelValues(status).Inc()
	}
}
