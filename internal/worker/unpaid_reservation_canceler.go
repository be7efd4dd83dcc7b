package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/novastellaa/BE-Infokus-Studio/internal/pkg/logger"
)

// UnpaidCanceler は未払い予約をキャンセルするインターフェース
type UnpaidCanceler interface {
	CancelUnpaidReservations(ctx context.Context, olderThan time.Duration) (int, error)
}

// UnpaidReservationCanceler は支払い期限を過ぎた保留中予約を
// 定期的にキャンセルするワーカー
type UnpaidReservationCanceler struct {
	reservationService UnpaidCanceler
	interval           time.Duration
	paymentWindow      time.Duration
	stopCh             chan struct{}
	doneCh             chan struct{}
}

// NewUnpaidReservationCanceler は新しいキャンセラーを作成
func NewUnpaidReservationCanceler(
	rs UnpaidCanceler,
	interval time.Duration,
	paymentWindow time.Duration,
) *UnpaidReservationCanceler {
	return &UnpaidReservationCanceler{
		reservationService: rs,
		interval:           interval,
		paymentWindow:      paymentWindow,
		stopCh:             make(chan struct{}),
		doneCh:             make(chan struct{}),
	}
}

// Start はキャンセラーを開始
func (c *UnpaidReservationCanceler) Start(ctx context.Context) {
	logger.Info("未払い予約キャンセラー開始",
		zap.Duration("interval", c.interval),
		zap.Duration("payment_window", c.paymentWindow),
	)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("未払い予約キャンセラー停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("未払い予約キャンセラー停止（シグナル受信）")
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

// Stop はキャンセラーを停止
func (c *UnpaidReservationCanceler) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// sweep は期限超過の未払い予約をキャンセル
func (c *UnpaidReservationCanceler) sweep(ctx context.Context) {
	log := logger.Get()
	log.Debug("未払い予約のスイープ開始")

	count, err := c.reservationService.CancelUnpaidReservations(ctx, c.paymentWindow)
	if err != nil {
		log.Error("未払い予約のスイープ失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("未払い予約をキャンセル", zap.Int("count", count))
	} else {
		log.Debug("期限超過の未払い予約なし")
	}
}
